package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/pool-league/brackets"
	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
	"golang.org/x/sync/errgroup"
)

// CompletionRule names how the engine decides the regular season is over.
type CompletionRule string

const (
	// CompletionRuleAllComplete requires every scheduled regular match to
	// have a recorded result. The default.
	CompletionRuleAllComplete CompletionRule = "all_complete"
	// CompletionRuleRoundsThreshold counts completed matches in units of
	// full rounds and tolerates stragglers: playoffs may start while a few
	// regular matches are still unplayed.
	CompletionRuleRoundsThreshold CompletionRule = "rounds_threshold"
)

// SeedResult reports whether seeding actually created the bracket. Created
// is false when the playoffs were already generated.
type SeedResult struct {
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// SeriesState is the derived view of one best-of series: wins per side
// counted from completed game rows sharing the series key.
type SeriesState struct {
	SeriesKey    string              `json:"series_key"`
	Round        models.PlayoffRound `json:"round"`
	TeamAID      int                 `json:"team_a_id"`
	TeamBID      int                 `json:"team_b_id"`
	TeamAName    string              `json:"team_a_name"`
	TeamBName    string              `json:"team_b_name"`
	TeamAWins    int                 `json:"team_a_wins"`
	TeamBWins    int                 `json:"team_b_wins"`
	BestOf       int                 `json:"best_of"`
	NeededWins   int                 `json:"needed_wins"`
	WinnerTeamID *int                `json:"winner_team_id,omitempty"`
	Games        []*models.Match     `json:"games"`
}

// Decided reports whether either side has reached the needed win count.
func (st *SeriesState) Decided() bool {
	return st.WinnerTeamID != nil
}

// PlayoffService drives the 8-team single-elimination bracket. Mutating
// methods other than ForceStartPlayoffs expect the caller to already hold
// the season's lock; MatchService chains into them while scoring.
type PlayoffService interface {
	IsRegularSeasonComplete(ctx context.Context, seasonID int) (bool, error)
	SeedPlayoffs(ctx context.Context, seasonID int) (*SeedResult, error)
	ForceStartPlayoffs(ctx context.Context, seasonID int) (*SeedResult, error)
	GetSeriesState(ctx context.Context, seasonID int, seriesKey string) (*SeriesState, error)
	GetBracket(ctx context.Context, seasonID int) ([]*SeriesState, error)
	AdvanceSeries(ctx context.Context, seasonID int, seriesKey string) error
	UpdatePlayoffProgression(ctx context.Context, seasonID int) error
}

type playoffService struct {
	seasonRepo     repositories.SeasonRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	standings      StandingsService
	completionRule CompletionRule
	locks          *SeasonLocker
	logger         *slog.Logger
}

func NewPlayoffService(
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	completionRule CompletionRule,
	locks *SeasonLocker,
	logger *slog.Logger,
) PlayoffService {
	if completionRule == "" {
		completionRule = CompletionRuleAllComplete
	}
	return &playoffService{
		seasonRepo:     seasonRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		standings:      standings,
		completionRule: completionRule,
		locks:          locks,
		logger:         logger,
	}
}

func (s *playoffService) IsRegularSeasonComplete(ctx context.Context, seasonID int) (bool, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return false, nil
		}
		return false, err
	}

	teamCount, err := s.teamRepo.CountBySeason(ctx, seasonID)
	if err != nil {
		return false, err
	}
	if teamCount < 2 {
		return false, nil
	}

	phase := models.MatchPhaseRegular
	status := models.MatchStatusComplete
	completed, err := s.matchRepo.CountBySeason(ctx, seasonID, repositories.ListMatchesFilter{
		Phase:  &phase,
		Status: &status,
	})
	if err != nil {
		return false, err
	}

	switch s.completionRule {
	case CompletionRuleRoundsThreshold:
		matchesPerRound := teamCount / 2
		return completed/matchesPerRound >= season.RegularRounds, nil
	default:
		total, err := s.matchRepo.CountBySeason(ctx, seasonID, repositories.ListMatchesFilter{Phase: &phase})
		if err != nil {
			return false, err
		}
		return total > 0 && completed == total, nil
	}
}

// SeedPlayoffs seeds the 8-team bracket from current standings and opens
// the playoffs. Caller must hold the season lock.
func (s *playoffService) SeedPlayoffs(ctx context.Context, seasonID int) (*SeedResult, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	if season.PlayoffsGenerated {
		return &SeedResult{Created: false, Message: "Playoffs already generated."}, nil
	}

	standings, err := s.standings.ComputeStandings(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if len(standings) < 8 {
		return nil, ErrPlayoffFieldTooSmall
	}

	seedIDs := make([]int, 8)
	for i := 0; i < 8; i++ {
		seedIDs[i] = standings[i].TeamID
	}
	teams, err := s.teamRepo.ListByIDs(ctx, seedIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	for _, tmpl := range brackets.QuarterfinalTemplates() {
		teamA := byID[seedIDs[tmpl.SeedA-1]]
		teamB := byID[seedIDs[tmpl.SeedB-1]]
		if teamA == nil || teamB == nil {
			return nil, fmt.Errorf("seeded team missing for series %s", tmpl.Key)
		}
		if err := s.createSeriesOpener(ctx, seasonID, tmpl.Round, tmpl.Key, tmpl.BestOf, teamA, teamB); err != nil {
			return nil, err
		}
	}

	if err := s.seasonRepo.SetPlayoffsGenerated(ctx, nil, seasonID, true); err != nil {
		return nil, err
	}
	if season.Status.CanTransitionTo(models.SeasonStatusPlayoffs) {
		if err := s.seasonRepo.UpdateStatus(ctx, nil, seasonID, models.SeasonStatusPlayoffs); err != nil {
			return nil, err
		}
	}

	s.logger.Info("playoff bracket seeded",
		slog.Int("season_id", seasonID),
		slog.String("top_seed", standings[0].TeamName))

	return &SeedResult{Created: true, Message: "Playoff bracket generated."}, nil
}

// ForceStartPlayoffs is the admin entry point: takes the season lock and
// seeds the bracket from whatever the standings currently say.
func (s *playoffService) ForceStartPlayoffs(ctx context.Context, seasonID int) (*SeedResult, error) {
	unlock := s.locks.Lock(seasonID)
	defer unlock()
	return s.SeedPlayoffs(ctx, seasonID)
}

// createSeriesOpener persists game 1 of a series unless the series already
// exists, which makes seeding and progression safely re-runnable.
func (s *playoffService) createSeriesOpener(
	ctx context.Context,
	seasonID int,
	round models.PlayoffRound,
	seriesKey string,
	bestOf int,
	teamA, teamB *models.Team,
) error {
	existing, err := s.matchRepo.CountBySeason(ctx, seasonID, repositories.ListMatchesFilter{SeriesKey: &seriesKey})
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	gameNumber := 1
	match := &models.Match{
		SeasonID:     seasonID,
		Phase:        models.MatchPhasePlayoffs,
		TeamAID:      teamA.ID,
		TeamBID:      teamB.ID,
		TeamAName:    teamA.Name,
		TeamBName:    teamB.Name,
		Status:       models.MatchStatusTBD,
		PlayoffRound: &round,
		SeriesKey:    &seriesKey,
		BestOf:       &bestOf,
		GameNumber:   &gameNumber,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return fmt.Errorf("failed to create series %s: %w", seriesKey, err)
	}
	return nil
}

func (s *playoffService) GetSeriesState(ctx context.Context, seasonID int, seriesKey string) (*SeriesState, error) {
	phase := models.MatchPhasePlayoffs
	games, err := s.matchRepo.ListBySeason(ctx, seasonID, repositories.ListMatchesFilter{
		Phase:     &phase,
		SeriesKey: &seriesKey,
	})
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrSeriesNotFound
	}

	opener := games[0]
	state := &SeriesState{
		SeriesKey: seriesKey,
		TeamAID:   opener.TeamAID,
		TeamBID:   opener.TeamBID,
		TeamAName: opener.TeamAName,
		TeamBName: opener.TeamBName,
		BestOf:    brackets.BestOfQuarterfinal,
		Games:     games,
	}
	if opener.PlayoffRound != nil {
		state.Round = *opener.PlayoffRound
	}
	if opener.BestOf != nil {
		state.BestOf = *opener.BestOf
	}
	state.NeededWins = brackets.NeededWins(state.BestOf)

	for _, g := range games {
		if !g.IsComplete() || g.WinnerTeamID == nil {
			continue
		}
		switch *g.WinnerTeamID {
		case state.TeamAID:
			state.TeamAWins++
		case state.TeamBID:
			state.TeamBWins++
		}
	}

	switch {
	case state.TeamAWins >= state.NeededWins:
		state.WinnerTeamID = &state.TeamAID
	case state.TeamBWins >= state.NeededWins:
		state.WinnerTeamID = &state.TeamBID
	}
	return state, nil
}

// GetBracket returns states for every materialized series, quarterfinals
// through finals.
func (s *playoffService) GetBracket(ctx context.Context, seasonID int) ([]*SeriesState, error) {
	keys := []string{
		brackets.SeriesQF1, brackets.SeriesQF2, brackets.SeriesQF3, brackets.SeriesQF4,
		brackets.SeriesSF1, brackets.SeriesSF2, brackets.SeriesF1,
	}
	states := make([]*SeriesState, 0, len(keys))
	for _, key := range keys {
		state, err := s.seriesStateOrNil(ctx, seasonID, key)
		if err != nil {
			return nil, err
		}
		if state != nil {
			states = append(states, state)
		}
	}
	return states, nil
}

// AdvanceSeries is called after a playoff game result lands: it either
// opens the next game of an undecided series or, once the series is
// decided, cascades the bracket forward. Caller must hold the season lock.
func (s *playoffService) AdvanceSeries(ctx context.Context, seasonID int, seriesKey string) error {
	state, err := s.GetSeriesState(ctx, seasonID, seriesKey)
	if err != nil {
		return err
	}

	if state.Decided() {
		return s.UpdatePlayoffProgression(ctx, seasonID)
	}

	if len(state.Games) >= state.BestOf {
		return nil
	}

	last := state.Games[len(state.Games)-1]
	if !last.IsComplete() {
		return nil
	}

	nextGame := len(state.Games) + 1
	match := &models.Match{
		SeasonID:     seasonID,
		Phase:        models.MatchPhasePlayoffs,
		TeamAID:      state.TeamAID,
		TeamBID:      state.TeamBID,
		TeamAName:    state.TeamAName,
		TeamBName:    state.TeamBName,
		Status:       models.MatchStatusTBD,
		PlayoffRound: last.PlayoffRound,
		SeriesKey:    &state.SeriesKey,
		BestOf:       last.BestOf,
		GameNumber:   &nextGame,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return fmt.Errorf("failed to open game %d of %s: %w", nextGame, seriesKey, err)
	}

	s.logger.Info("next series game opened",
		slog.Int("season_id", seasonID),
		slog.String("series", seriesKey),
		slog.Int("game", nextGame))
	return nil
}

// UpdatePlayoffProgression materializes each later-round series once both
// of its feeders are decided, and closes the season once the finals are.
// A feeder-winner change on an undecided series resets it in place. Caller
// must hold the season lock.
func (s *playoffService) UpdatePlayoffProgression(ctx context.Context, seasonID int) error {
	for _, prog := range brackets.ProgressionOrder() {
		if err := s.progressSeries(ctx, seasonID, prog); err != nil {
			return err
		}
	}

	finals, err := s.seriesStateOrNil(ctx, seasonID, brackets.SeriesF1)
	if err != nil {
		return err
	}
	if finals == nil || !finals.Decided() {
		return nil
	}

	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return err
	}
	if !season.Status.CanTransitionTo(models.SeasonStatusComplete) {
		return nil
	}
	if err := s.seasonRepo.UpdateStatus(ctx, nil, seasonID, models.SeasonStatusComplete); err != nil {
		return err
	}

	champion := finals.TeamAName
	if *finals.WinnerTeamID == finals.TeamBID {
		champion = finals.TeamBName
	}
	s.logger.Info("season complete",
		slog.Int("season_id", seasonID),
		slog.String("champion", champion))
	return nil
}

func (s *playoffService) progressSeries(ctx context.Context, seasonID int, prog brackets.Progression) error {
	var left, right *SeriesState
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		state, err := s.seriesStateOrNil(gctx, seasonID, prog.FeederA)
		left = state
		return err
	})
	g.Go(func() error {
		state, err := s.seriesStateOrNil(gctx, seasonID, prog.FeederB)
		right = state
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if left == nil || right == nil || !left.Decided() || !right.Decided() {
		return nil
	}

	teams, err := s.teamRepo.ListByIDs(ctx, []int{*left.WinnerTeamID, *right.WinnerTeamID})
	if err != nil {
		return err
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	teamA, teamB := byID[*left.WinnerTeamID], byID[*right.WinnerTeamID]
	if teamA == nil || teamB == nil {
		return fmt.Errorf("feeder winner missing for series %s", prog.Key)
	}

	existing, err := s.seriesStateOrNil(ctx, seasonID, prog.Key)
	if err != nil {
		return err
	}

	action := "noop"
	switch {
	case existing == nil:
		if err := s.createSeriesOpener(ctx, seasonID, prog.Round, prog.Key, prog.BestOf, teamA, teamB); err != nil {
			return err
		}
		action = "create"

	case existing.Decided():
		// A decided series never re-feeds.

	case existing.TeamAID != teamA.ID || existing.TeamBID != teamB.ID:
		if err := s.resetSeries(ctx, seasonID, existing, teamA, teamB); err != nil {
			return err
		}
		action = "reset"
	}

	if action != "noop" {
		s.logger.Info("playoff progression",
			slog.Int("season_id", seasonID),
			slog.String("series", prog.Key),
			slog.String("action", action),
			slog.String("team_a", teamA.Name),
			slog.String("team_b", teamB.Name))
	}
	return nil
}

// resetSeries re-points an undecided series at new feeder winners: game 1
// keeps its row (and any schedule) with scores and result cleared, later
// game rows are superseded.
func (s *playoffService) resetSeries(ctx context.Context, seasonID int, state *SeriesState, teamA, teamB *models.Team) error {
	opener := state.Games[0]
	opener.TeamAID = teamA.ID
	opener.TeamBID = teamB.ID
	opener.TeamAName = teamA.Name
	opener.TeamBName = teamB.Name
	opener.TeamAScore = nil
	opener.TeamBScore = nil
	opener.WinnerTeamID = nil
	opener.LoserTeamID = nil
	opener.CompletedAt = nil
	if opener.ScheduledAt != nil {
		opener.Status = models.MatchStatusScheduled
	} else {
		opener.Status = models.MatchStatusTBD
	}

	if err := s.matchRepo.Update(ctx, nil, opener); err != nil {
		return err
	}
	gameNumber := 1
	if opener.GameNumber != nil {
		gameNumber = *opener.GameNumber
	}
	return s.matchRepo.DeleteSeriesGamesAfter(ctx, nil, seasonID, state.SeriesKey, gameNumber)
}

func (s *playoffService) seriesStateOrNil(ctx context.Context, seasonID int, seriesKey string) (*SeriesState, error) {
	state, err := s.GetSeriesState(ctx, seasonID, seriesKey)
	if err != nil {
		if errors.Is(err, ErrSeriesNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}
