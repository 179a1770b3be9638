package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pool-league/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict for this season")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error)
	ListByIDs(ctx context.Context, ids []int) ([]*models.Team, error)
	FindByName(ctx context.Context, seasonID int, name string) (*models.Team, error)
	FindByPlayer(ctx context.Context, seasonID int, playerID int) (*models.Team, error)
	CountBySeason(ctx context.Context, seasonID int) (int, error)
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `
	id, season_id, name, player_a_id, player_b_id,
	player_a_name, player_b_name, logo_key, created_at`

func scanTeam(row interface{ Scan(dest ...interface{}) error }) (*models.Team, error) {
	t := &models.Team{}
	err := row.Scan(
		&t.ID, &t.SeasonID, &t.Name, &t.PlayerAID, &t.PlayerBID,
		&t.PlayerAName, &t.PlayerBName, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (
			season_id, name, player_a_id, player_b_id, player_a_name, player_b_name
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.SeasonID, t.Name, t.PlayerAID, t.PlayerBID, t.PlayerAName, t.PlayerBName,
	).Scan(&t.ID, &t.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrTeamNameConflict
	}
	return err
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE id = $1`
	return scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) ListBySeason(ctx context.Context, seasonID int) ([]*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE season_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTeams(rows)
}

func (r *postgresTeamRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTeams(rows)
}

func (r *postgresTeamRepository) FindByName(ctx context.Context, seasonID int, name string) (*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE season_id = $1 AND name = $2`
	return scanTeam(r.db.QueryRowContext(ctx, query, seasonID, name))
}

func (r *postgresTeamRepository) FindByPlayer(ctx context.Context, seasonID int, playerID int) (*models.Team, error) {
	query := `SELECT` + teamColumns + `
		FROM teams
		WHERE season_id = $1 AND (player_a_id = $2 OR player_b_id = $2)`
	return scanTeam(r.db.QueryRowContext(ctx, query, seasonID, playerID))
}

func (r *postgresTeamRepository) CountBySeason(ctx context.Context, seasonID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE season_id = $1`, seasonID).Scan(&count)
	return count, err
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func collectTeams(rows *sql.Rows) ([]*models.Team, error) {
	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
