package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
	"github.com/Dosada05/pool-league/storage"
)

// TeamNameSeparator joins the two player names when no team name is given.
const TeamNameSeparator = " | "

type CreateTeamInput struct {
	SeasonID  int    `json:"season_id"`
	PlayerAID int    `json:"player_a_id"`
	PlayerBID int    `json:"player_b_id"`
	Name      string `json:"name"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, seasonID int) ([]*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	seasonRepo repositories.SeasonRepository
	uploader   storage.FileUploader
	locks      *SeasonLocker
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	seasonRepo repositories.SeasonRepository,
	uploader storage.FileUploader,
	locks *SeasonLocker,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		seasonRepo: seasonRepo,
		uploader:   uploader,
		locks:      locks,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	unlock := s.locks.Lock(input.SeasonID)
	defer unlock()

	season, err := s.seasonRepo.GetByID(ctx, input.SeasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	if season.Status != models.SeasonStatusSignup {
		return nil, ErrSignupClosed
	}

	if input.PlayerAID == 0 || input.PlayerBID == 0 {
		return nil, ErrTeamPlayersRequired
	}
	if input.PlayerAID == input.PlayerBID {
		return nil, ErrTeamSamePlayer
	}

	// ListByIDs sorts by name, which fixes the stored A/B order.
	players, err := s.playerRepo.ListByIDs(ctx, []int{input.PlayerAID, input.PlayerBID})
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	if len(players) != 2 {
		return nil, ErrPlayerNotFound
	}

	for _, p := range players {
		_, err := s.teamRepo.FindByPlayer(ctx, input.SeasonID, p.ID)
		if err == nil {
			return nil, ErrPlayerAlreadyOnTeam
		}
		if !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, err
		}
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = players[0].Name + TeamNameSeparator + players[1].Name
	}

	if _, err := s.teamRepo.FindByName(ctx, input.SeasonID, name); err == nil {
		return nil, ErrTeamNameTaken
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return nil, err
	}

	team := &models.Team{
		SeasonID:    input.SeasonID,
		Name:        name,
		PlayerAID:   players[0].ID,
		PlayerBID:   players[1].ID,
		PlayerAName: players[0].Name,
		PlayerBName: players[1].Name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to create team %q: %w", name, err)
	}

	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, seasonID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		s.populateLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", team.ID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &result.Key); err != nil {
		return nil, err
	}
	team.LogoKey = &result.Key
	team.LogoURL = &result.Location
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}
