package brackets

import (
	"testing"

	"github.com/Dosada05/pool-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterfinalTemplates(t *testing.T) {
	templates := QuarterfinalTemplates()
	require.Len(t, templates, 4)

	bySeries := make(map[string]SeriesTemplate, len(templates))
	for _, tmpl := range templates {
		assert.Equal(t, models.PlayoffRoundQuarterfinal, tmpl.Round)
		assert.Equal(t, BestOfQuarterfinal, tmpl.BestOf)
		bySeries[tmpl.Key] = tmpl
	}

	assert.Equal(t, [2]int{1, 8}, [2]int{bySeries[SeriesQF1].SeedA, bySeries[SeriesQF1].SeedB})
	assert.Equal(t, [2]int{4, 5}, [2]int{bySeries[SeriesQF2].SeedA, bySeries[SeriesQF2].SeedB})
	assert.Equal(t, [2]int{3, 6}, [2]int{bySeries[SeriesQF3].SeedA, bySeries[SeriesQF3].SeedB})
	assert.Equal(t, [2]int{2, 7}, [2]int{bySeries[SeriesQF4].SeedA, bySeries[SeriesQF4].SeedB})

	// Each seed appears exactly once.
	seen := make(map[int]bool)
	for _, tmpl := range templates {
		assert.False(t, seen[tmpl.SeedA])
		assert.False(t, seen[tmpl.SeedB])
		seen[tmpl.SeedA] = true
		seen[tmpl.SeedB] = true
	}
	assert.Len(t, seen, 8)
}

func TestProgressionOrder(t *testing.T) {
	order := ProgressionOrder()
	require.Len(t, order, 3)

	sf1, sf2, final := order[0], order[1], order[2]

	assert.Equal(t, SeriesSF1, sf1.Key)
	assert.Equal(t, models.PlayoffRoundSemifinal, sf1.Round)
	assert.Equal(t, SeriesQF1, sf1.FeederA)
	assert.Equal(t, SeriesQF2, sf1.FeederB)

	assert.Equal(t, SeriesSF2, sf2.Key)
	assert.Equal(t, SeriesQF3, sf2.FeederA)
	assert.Equal(t, SeriesQF4, sf2.FeederB)

	assert.Equal(t, SeriesF1, final.Key)
	assert.Equal(t, models.PlayoffRoundFinal, final.Round)
	assert.Equal(t, BestOfFinal, final.BestOf)
	assert.Equal(t, SeriesSF1, final.FeederA)
	assert.Equal(t, SeriesSF2, final.FeederB)
}

func TestNeededWins(t *testing.T) {
	assert.Equal(t, 2, NeededWins(3))
	assert.Equal(t, 3, NeededWins(5))
	assert.Equal(t, 4, NeededWins(7))
	assert.Equal(t, 1, NeededWins(1))
}
