package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/pool-league/models"
)

var ErrMatchNotFound = errors.New("match not found")

// ListMatchesFilter narrows ListBySeason / CountBySeason. Nil fields are
// ignored.
type ListMatchesFilter struct {
	Phase     *models.MatchPhase
	Status    *models.MatchStatus
	SeriesKey *string
	Week      *int
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	InsertMany(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListBySeason(ctx context.Context, seasonID int, filter ListMatchesFilter) ([]*models.Match, error)
	CountBySeason(ctx context.Context, seasonID int, filter ListMatchesFilter) (int, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	DeleteSeriesGamesAfter(ctx context.Context, exec SQLExecutor, seasonID int, seriesKey string, gameNumber int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, season_id, phase, week, round, team_a_id, team_b_id,
	team_a_name, team_b_name, status, scheduled_at, location,
	team_a_score, team_b_score, winner_team_id, loser_team_id, completed_at,
	playoff_round, series_key, best_of, game_number, created_at`

func scanMatch(row interface{ Scan(dest ...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID, &m.SeasonID, &m.Phase, &m.Week, &m.Round, &m.TeamAID, &m.TeamBID,
		&m.TeamAName, &m.TeamBName, &m.Status, &m.ScheduledAt, &m.Location,
		&m.TeamAScore, &m.TeamBScore, &m.WinnerTeamID, &m.LoserTeamID, &m.CompletedAt,
		&m.PlayoffRound, &m.SeriesKey, &m.BestOf, &m.GameNumber, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (
			season_id, phase, week, round, team_a_id, team_b_id,
			team_a_name, team_b_name, status, scheduled_at, location,
			team_a_score, team_b_score, winner_team_id, loser_team_id, completed_at,
			playoff_round, series_key, best_of, game_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at`

	return executor.QueryRowContext(ctx, query,
		m.SeasonID, m.Phase, m.Week, m.Round, m.TeamAID, m.TeamBID,
		m.TeamAName, m.TeamBName, m.Status, m.ScheduledAt, m.Location,
		m.TeamAScore, m.TeamBScore, m.WinnerTeamID, m.LoserTeamID, m.CompletedAt,
		m.PlayoffRound, m.SeriesKey, m.BestOf, m.GameNumber,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *postgresMatchRepository) InsertMany(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	for _, m := range matches {
		if err := r.Create(ctx, exec, m); err != nil {
			return fmt.Errorf("failed to insert match (%s vs %s): %w", m.TeamAName, m.TeamBName, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func buildMatchFilter(seasonID int, filter ListMatchesFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(" WHERE season_id = $1")
	args := []interface{}{seasonID}

	if filter.Phase != nil {
		args = append(args, *filter.Phase)
		fmt.Fprintf(&sb, " AND phase = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.SeriesKey != nil {
		args = append(args, *filter.SeriesKey)
		fmt.Fprintf(&sb, " AND series_key = $%d", len(args))
	}
	if filter.Week != nil {
		args = append(args, *filter.Week)
		fmt.Fprintf(&sb, " AND week = $%d", len(args))
	}
	return sb.String(), args
}

func (r *postgresMatchRepository) ListBySeason(ctx context.Context, seasonID int, filter ListMatchesFilter) ([]*models.Match, error) {
	where, args := buildMatchFilter(seasonID, filter)
	query := `SELECT` + matchColumns + ` FROM matches` + where +
		` ORDER BY phase, week, COALESCE(round, 0), COALESCE(series_key, ''), COALESCE(game_number, 0), id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) CountBySeason(ctx context.Context, seasonID int, filter ListMatchesFilter) (int, error) {
	where, args := buildMatchFilter(seasonID, filter)
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`+where, args...).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches SET
			team_a_id = $1, team_b_id = $2, team_a_name = $3, team_b_name = $4,
			status = $5, scheduled_at = $6, location = $7,
			team_a_score = $8, team_b_score = $9,
			winner_team_id = $10, loser_team_id = $11, completed_at = $12
		WHERE id = $13`

	result, err := executor.ExecContext(ctx, query,
		m.TeamAID, m.TeamBID, m.TeamAName, m.TeamBName,
		m.Status, m.ScheduledAt, m.Location,
		m.TeamAScore, m.TeamBScore,
		m.WinnerTeamID, m.LoserTeamID, m.CompletedAt,
		m.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// DeleteSeriesGamesAfter supersedes the game rows of a playoff series past
// the given game number. Only the series re-feed path uses this.
func (r *postgresMatchRepository) DeleteSeriesGamesAfter(ctx context.Context, exec SQLExecutor, seasonID int, seriesKey string, gameNumber int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM matches WHERE season_id = $1 AND series_key = $2 AND game_number > $3`
	_, err := executor.ExecContext(ctx, query, seasonID, seriesKey, gameNumber)
	return err
}
