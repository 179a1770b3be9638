package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
)

const DefaultRegularWeeks = 4

type SeasonService interface {
	// GetOrCreateSeason resolves the season for a descriptor, creating a
	// fresh SIGNUP season if none exists yet. Callers compute the
	// descriptor once per request (models.CurrentSeasonDescriptor) and
	// pass it down.
	GetOrCreateSeason(ctx context.Context, desc models.SeasonDescriptor) (*models.Season, error)
	GetSeason(ctx context.Context, id int) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]*models.Season, error)
}

type seasonService struct {
	seasonRepo   repositories.SeasonRepository
	regularWeeks int
}

func NewSeasonService(seasonRepo repositories.SeasonRepository, regularWeeks int) SeasonService {
	if regularWeeks <= 0 {
		regularWeeks = DefaultRegularWeeks
	}
	return &seasonService{
		seasonRepo:   seasonRepo,
		regularWeeks: regularWeeks,
	}
}

func (s *seasonService) GetOrCreateSeason(ctx context.Context, desc models.SeasonDescriptor) (*models.Season, error) {
	season, err := s.seasonRepo.FindByDescriptor(ctx, desc)
	if err == nil {
		return season, nil
	}
	if !errors.Is(err, repositories.ErrSeasonNotFound) {
		return nil, fmt.Errorf("failed to look up season %d/%s: %w", desc.Year, desc.Period, err)
	}

	season = &models.Season{
		Year:          desc.Year,
		Period:        desc.Period,
		Status:        models.SeasonStatusSignup,
		RegularWeeks:  s.regularWeeks,
		RegularRounds: s.regularWeeks * 2,
	}
	err = s.seasonRepo.Create(ctx, season)
	if err == nil {
		return season, nil
	}
	// Lost a create race: someone else inserted the same descriptor.
	if errors.Is(err, repositories.ErrSeasonConflict) {
		return s.seasonRepo.FindByDescriptor(ctx, desc)
	}
	return nil, fmt.Errorf("failed to create season %d/%s: %w", desc.Year, desc.Period, err)
}

func (s *seasonService) GetSeason(ctx context.Context, id int) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (s *seasonService) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	return s.seasonRepo.List(ctx)
}
