package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pool-league/models"
	"github.com/lib/pq"
)

var (
	ErrSeasonNotFound = errors.New("season not found")
	ErrSeasonConflict = errors.New("season already exists for this year and period")
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id int) (*models.Season, error)
	FindByDescriptor(ctx context.Context, desc models.SeasonDescriptor) (*models.Season, error)
	List(ctx context.Context) ([]*models.Season, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.SeasonStatus) error
	SetPlayoffsGenerated(ctx context.Context, exec SQLExecutor, id int, generated bool) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const seasonColumns = `
	id, year, period, status, regular_weeks, regular_rounds,
	playoffs_generated, season_name, start_date, week_gap_days, created_at`

func scanSeason(row interface{ Scan(dest ...interface{}) error }) (*models.Season, error) {
	s := &models.Season{}
	err := row.Scan(
		&s.ID, &s.Year, &s.Period, &s.Status, &s.RegularWeeks, &s.RegularRounds,
		&s.PlayoffsGenerated, &s.SeasonName, &s.StartDate, &s.WeekGapDays, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresSeasonRepository) Create(ctx context.Context, s *models.Season) error {
	query := `
		INSERT INTO seasons (
			year, period, status, regular_weeks, regular_rounds,
			playoffs_generated, season_name, start_date, week_gap_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		s.Year, s.Period, s.Status, s.RegularWeeks, s.RegularRounds,
		s.PlayoffsGenerated, s.SeasonName, s.StartDate, s.WeekGapDays,
	).Scan(&s.ID, &s.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrSeasonConflict
	}
	return err
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id int) (*models.Season, error) {
	query := `SELECT` + seasonColumns + ` FROM seasons WHERE id = $1`
	return scanSeason(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSeasonRepository) FindByDescriptor(ctx context.Context, desc models.SeasonDescriptor) (*models.Season, error) {
	query := `SELECT` + seasonColumns + ` FROM seasons WHERE year = $1 AND period = $2`
	return scanSeason(r.db.QueryRowContext(ctx, query, desc.Year, desc.Period))
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]*models.Season, error) {
	query := `SELECT` + seasonColumns + ` FROM seasons ORDER BY year DESC, period DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]*models.Season, 0)
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *postgresSeasonRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.SeasonStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE seasons SET status = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) SetPlayoffsGenerated(ctx context.Context, exec SQLExecutor, id int, generated bool) error {
	executor := r.getExecutor(exec)
	query := `UPDATE seasons SET playoffs_generated = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, generated, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}
