package services

import (
	"context"
	"testing"

	"github.com/Dosada05/pool-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateSeasonCreatesSignupSeason(t *testing.T) {
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo, 4)

	desc := models.SeasonDescriptor{Year: 2026, Period: models.PeriodFirstHalf}
	season, err := svc.GetOrCreateSeason(context.Background(), desc)
	require.NoError(t, err)

	assert.NotZero(t, season.ID)
	assert.Equal(t, 2026, season.Year)
	assert.Equal(t, models.PeriodFirstHalf, season.Period)
	assert.Equal(t, models.SeasonStatusSignup, season.Status)
	assert.Equal(t, 4, season.RegularWeeks)
	assert.Equal(t, 8, season.RegularRounds)
	assert.False(t, season.PlayoffsGenerated)
}

func TestGetOrCreateSeasonReturnsExisting(t *testing.T) {
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo, 4)

	desc := models.SeasonDescriptor{Year: 2026, Period: models.PeriodSecondHalf}
	first, err := svc.GetOrCreateSeason(context.Background(), desc)
	require.NoError(t, err)

	second, err := svc.GetOrCreateSeason(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	seasons, err := svc.ListSeasons(context.Background())
	require.NoError(t, err)
	assert.Len(t, seasons, 1)
}

func TestGetOrCreateSeasonDistinctPeriods(t *testing.T) {
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo, 4)

	spring, err := svc.GetOrCreateSeason(context.Background(), models.SeasonDescriptor{Year: 2026, Period: models.PeriodFirstHalf})
	require.NoError(t, err)
	fall, err := svc.GetOrCreateSeason(context.Background(), models.SeasonDescriptor{Year: 2026, Period: models.PeriodSecondHalf})
	require.NoError(t, err)

	assert.NotEqual(t, spring.ID, fall.ID)
}

func TestNewSeasonServiceDefaultsWeeks(t *testing.T) {
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo, 0)

	season, err := svc.GetOrCreateSeason(context.Background(), models.SeasonDescriptor{Year: 2025, Period: models.PeriodFirstHalf})
	require.NoError(t, err)
	assert.Equal(t, DefaultRegularWeeks, season.RegularWeeks)
	assert.Equal(t, DefaultRegularWeeks*2, season.RegularRounds)
}

func TestGetSeasonNotFound(t *testing.T) {
	svc := NewSeasonService(newFakeSeasonRepo(), 4)

	_, err := svc.GetSeason(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}
