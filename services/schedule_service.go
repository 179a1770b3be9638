package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/pool-league/brackets"
	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
)

// ScheduleResult reports what schedule generation did. Created is zero when
// the schedule already existed.
type ScheduleResult struct {
	Created int    `json:"created"`
	Message string `json:"message"`
}

type ScheduleService interface {
	GenerateRegularSchedule(ctx context.Context, seasonID int) (*ScheduleResult, error)
}

type scheduleService struct {
	db         *sql.DB
	seasonRepo repositories.SeasonRepository
	teamRepo   repositories.TeamRepository
	matchRepo  repositories.MatchRepository
	generator  *brackets.RoundRobinGenerator
	locks      *SeasonLocker
	logger     *slog.Logger
}

func NewScheduleService(
	db *sql.DB,
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	locks *SeasonLocker,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		db:         db,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		generator:  brackets.NewRoundRobinGenerator(),
		locks:      locks,
		logger:     logger,
	}
}

// GenerateRegularSchedule builds the full round-robin fixture list for a
// season and opens the regular season. Idempotent: a season with regular
// matches already on file gets a zero-effect result, not an error.
func (s *scheduleService) GenerateRegularSchedule(ctx context.Context, seasonID int) (*ScheduleResult, error) {
	unlock := s.locks.Lock(seasonID)
	defer unlock()

	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	phase := models.MatchPhaseRegular
	existing, err := s.matchRepo.CountBySeason(ctx, seasonID, repositories.ListMatchesFilter{Phase: &phase})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return &ScheduleResult{Created: 0, Message: "Regular season schedule already exists."}, nil
	}

	if season.Status != models.SeasonStatusSignup {
		return nil, ErrRegularAlreadyBegun
	}

	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 4 {
		return nil, ErrTeamCountTooSmall
	}
	if len(teams)%2 != 0 {
		return nil, ErrTeamCountOdd
	}

	rounds, err := s.generator.Generate(teams, season.RegularRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to build round pairings: %w", err)
	}

	matches := make([]*models.Match, 0, season.RegularRounds*len(teams)/2)
	for _, round := range rounds {
		roundNumber := round.Number
		for _, pairing := range round.Pairings {
			matches = append(matches, &models.Match{
				SeasonID:  seasonID,
				Phase:     models.MatchPhaseRegular,
				Week:      round.Week,
				Round:     &roundNumber,
				TeamAID:   pairing.TeamA.ID,
				TeamBID:   pairing.TeamB.ID,
				TeamAName: pairing.TeamA.Name,
				TeamBName: pairing.TeamB.Name,
				Status:    models.MatchStatusTBD,
			})
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.InsertMany(ctx, tx, matches); err != nil {
		return nil, err
	}
	if err := s.seasonRepo.UpdateStatus(ctx, tx, seasonID, models.SeasonStatusRegular); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule: %w", err)
	}

	s.logger.Info("regular season schedule generated",
		slog.Int("season_id", seasonID),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)))

	return &ScheduleResult{
		Created: len(matches),
		Message: "Regular season schedule generated.",
	}, nil
}
