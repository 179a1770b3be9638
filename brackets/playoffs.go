package brackets

import "github.com/Dosada05/pool-league/models"

// Series keys are stable bracket coordinates shared by every game of a
// playoff series.
const (
	SeriesQF1 = "QF-1"
	SeriesQF2 = "QF-2"
	SeriesQF3 = "QF-3"
	SeriesQF4 = "QF-4"
	SeriesSF1 = "SF-1"
	SeriesSF2 = "SF-2"
	SeriesF1  = "F-1"
)

const (
	BestOfQuarterfinal = 3
	BestOfSemifinal    = 3
	BestOfFinal        = 5
)

// SeriesTemplate describes one first-round series of the 8-team bracket by
// the seeds that feed it.
type SeriesTemplate struct {
	Key    string
	Round  models.PlayoffRound
	BestOf int
	SeedA  int
	SeedB  int
}

// QuarterfinalTemplates returns the standard reseeding bracket: 1v8 and 4v5
// on one side, 3v6 and 2v7 on the other.
func QuarterfinalTemplates() []SeriesTemplate {
	return []SeriesTemplate{
		{Key: SeriesQF1, Round: models.PlayoffRoundQuarterfinal, BestOf: BestOfQuarterfinal, SeedA: 1, SeedB: 8},
		{Key: SeriesQF2, Round: models.PlayoffRoundQuarterfinal, BestOf: BestOfQuarterfinal, SeedA: 4, SeedB: 5},
		{Key: SeriesQF3, Round: models.PlayoffRoundQuarterfinal, BestOf: BestOfQuarterfinal, SeedA: 3, SeedB: 6},
		{Key: SeriesQF4, Round: models.PlayoffRoundQuarterfinal, BestOf: BestOfQuarterfinal, SeedA: 2, SeedB: 7},
	}
}

// Progression links a later-round series to the two series whose winners
// feed it.
type Progression struct {
	Key     string
	Round   models.PlayoffRound
	BestOf  int
	FeederA string
	FeederB string
}

// ProgressionOrder returns the later rounds in materialization order:
// semifinals before the final, so one pass can cascade a fresh result all
// the way up the bracket.
func ProgressionOrder() []Progression {
	return []Progression{
		{Key: SeriesSF1, Round: models.PlayoffRoundSemifinal, BestOf: BestOfSemifinal, FeederA: SeriesQF1, FeederB: SeriesQF2},
		{Key: SeriesSF2, Round: models.PlayoffRoundSemifinal, BestOf: BestOfSemifinal, FeederA: SeriesQF3, FeederB: SeriesQF4},
		{Key: SeriesF1, Round: models.PlayoffRoundFinal, BestOf: BestOfFinal, FeederA: SeriesSF1, FeederB: SeriesSF2},
	}
}

// NeededWins is the number of game wins that decides a best-of series.
func NeededWins(bestOf int) int {
	return bestOf/2 + 1
}
