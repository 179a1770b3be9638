package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
)

type SubmitScoreInput struct {
	MatchID    int
	WinnerName string
	// Explicit scores are optional: omit both for 1-0 winner-designation
	// scoring. When provided they must agree with the named winner.
	TeamAScore *int
	TeamBScore *int
}

// FillResult reports how many match results the random filler recorded.
type FillResult struct {
	Updated int    `json:"updated"`
	Message string `json:"message"`
}

type MatchService interface {
	SubmitMatchScore(ctx context.Context, input SubmitScoreInput) (*models.Match, error)
	UpdateMatchSchedule(ctx context.Context, matchID int, scheduledAt *time.Time, location *string) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, seasonID int, phase *models.MatchPhase) ([]*models.Match, error)
	FillRandomResults(ctx context.Context, seasonID int) (*FillResult, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	playoffs  PlayoffService
	locks     *SeasonLocker
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	playoffs PlayoffService,
	locks *SeasonLocker,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		playoffs:  playoffs,
		locks:     locks,
		logger:    logger,
	}
}

// SubmitMatchScore records one result: a regular-season match, or one game
// of a playoff series. Completing the last regular match seeds the
// playoffs; completing a playoff game advances its series.
func (s *matchService) SubmitMatchScore(ctx context.Context, input SubmitScoreInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	unlock := s.locks.Lock(match.SeasonID)
	defer unlock()

	// Re-read under the lock: the match may have been scored meanwhile.
	match, err = s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if match.IsComplete() {
		return nil, ErrMatchAlreadyComplete
	}

	if input.WinnerName == "" {
		return nil, ErrWinnerRequired
	}

	var winnerID, loserID int
	switch input.WinnerName {
	case match.TeamAName:
		winnerID, loserID = match.TeamAID, match.TeamBID
	case match.TeamBName:
		winnerID, loserID = match.TeamBID, match.TeamAID
	default:
		return nil, ErrWinnerUnknownTeam
	}

	isPlayoff := match.Phase == models.MatchPhasePlayoffs
	if isPlayoff {
		if match.SeriesKey == nil {
			return nil, fmt.Errorf("playoff match %d has no series key", match.ID)
		}
		state, err := s.playoffs.GetSeriesState(ctx, match.SeasonID, *match.SeriesKey)
		if err != nil {
			return nil, err
		}
		if state.Decided() {
			return nil, ErrSeriesAlreadyDecided
		}
	}

	scoreA, scoreB, err := resolveScores(input, winnerID == match.TeamAID, isPlayoff)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	match.TeamAScore = &scoreA
	match.TeamBScore = &scoreB
	match.WinnerTeamID = &winnerID
	match.LoserTeamID = &loserID
	match.Status = models.MatchStatusComplete
	match.CompletedAt = &now
	if match.ScheduledAt == nil {
		match.ScheduledAt = &now
	}

	if err := s.matchRepo.Update(ctx, nil, match); err != nil {
		return nil, err
	}

	if isPlayoff {
		if err := s.playoffs.AdvanceSeries(ctx, match.SeasonID, *match.SeriesKey); err != nil {
			return nil, err
		}
		return match, nil
	}

	done, err := s.playoffs.IsRegularSeasonComplete(ctx, match.SeasonID)
	if err != nil {
		return nil, err
	}
	if done {
		if _, err := s.playoffs.SeedPlayoffs(ctx, match.SeasonID); err != nil {
			// A field too small for the bracket keeps playing out the
			// regular season; the recorded score stands either way.
			if errors.Is(err, ErrPlayoffFieldTooSmall) {
				s.logger.Warn("regular season complete but playoff field too small",
					slog.Int("season_id", match.SeasonID))
				return match, nil
			}
			return nil, err
		}
	}
	return match, nil
}

// resolveScores validates explicit scores against the named winner, or
// falls back to 1-0 when none were given.
func resolveScores(input SubmitScoreInput, winnerIsTeamA, isPlayoff bool) (int, int, error) {
	if input.TeamAScore == nil && input.TeamBScore == nil {
		if winnerIsTeamA {
			return 1, 0, nil
		}
		return 0, 1, nil
	}
	if input.TeamAScore == nil || input.TeamBScore == nil {
		return 0, 0, ErrScoresIncomplete
	}

	scoreA, scoreB := *input.TeamAScore, *input.TeamBScore
	if scoreA < 0 || scoreB < 0 {
		return 0, 0, ErrNegativeScore
	}
	if scoreA == scoreB {
		if isPlayoff {
			return 0, 0, ErrSeriesTied
		}
		return 0, 0, ErrTiedResult
	}
	if winnerIsTeamA != (scoreA > scoreB) {
		return 0, 0, ErrWinnerScoreMismatch
	}
	return scoreA, scoreB, nil
}

// UpdateMatchSchedule sets or clears when and where a match is played. A
// completed match keeps its status; otherwise the status tracks whether
// any schedule detail remains.
func (s *matchService) UpdateMatchSchedule(ctx context.Context, matchID int, scheduledAt *time.Time, location *string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	unlock := s.locks.Lock(match.SeasonID)
	defer unlock()

	match.ScheduledAt = scheduledAt
	if location != nil {
		if *location == "" {
			match.Location = nil
		} else {
			match.Location = location
		}
	}

	if match.Status != models.MatchStatusComplete {
		if match.ScheduledAt != nil || match.Location != nil {
			match.Status = models.MatchStatusScheduled
		} else {
			match.Status = models.MatchStatusTBD
		}
	}

	if err := s.matchRepo.Update(ctx, nil, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, seasonID int, phase *models.MatchPhase) ([]*models.Match, error) {
	return s.matchRepo.ListBySeason(ctx, seasonID, repositories.ListMatchesFilter{Phase: phase})
}

// FillRandomResults records a random winner for every incomplete regular
// match. Development helper for exercising a full season quickly.
func (s *matchService) FillRandomResults(ctx context.Context, seasonID int) (*FillResult, error) {
	phase := models.MatchPhaseRegular
	matches, err := s.matchRepo.ListBySeason(ctx, seasonID, repositories.ListMatchesFilter{Phase: &phase})
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, m := range matches {
		if m.IsComplete() {
			continue
		}
		winner := m.TeamAName
		if rand.Intn(2) == 1 {
			winner = m.TeamBName
		}
		if _, err := s.SubmitMatchScore(ctx, SubmitScoreInput{MatchID: m.ID, WinnerName: winner}); err != nil {
			return nil, fmt.Errorf("failed to fill result for match %d: %w", m.ID, err)
		}
		updated++
	}

	if updated == 0 {
		return &FillResult{Updated: 0, Message: "No incomplete matches to fill."}, nil
	}
	return &FillResult{
		Updated: updated,
		Message: fmt.Sprintf("Filled %d random match results.", updated),
	}, nil
}
