package brackets

import (
	"fmt"

	"github.com/Dosada05/pool-league/models"
)

// Pairing is one scheduled meeting within a round. TeamA holds the
// home/break slot.
type Pairing struct {
	TeamA *models.Team
	TeamB *models.Team
}

// Round is a full perfect matching over the field: every team appears in
// exactly one pairing. Two rounds share a week.
type Round struct {
	Number   int
	Week     int
	Pairings []Pairing
}

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() *RoundRobinGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// Generate builds totalRounds rounds with the circle method: one team stays
// fixed while the rest rotate a position after every round, and round r
// pairs position i with position n-1-i. Over the first n-1 rounds every
// pair meets exactly once; rounds beyond n-1 wrap the rotation and repeat
// pairings. The teamA/teamB slot alternates with round parity so neither
// side of a rematch always breaks.
func (g *RoundRobinGenerator) Generate(teams []*models.Team, totalRounds int) ([]Round, error) {
	n := len(teams)
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("RoundRobinGenerator: an even number of teams is required (found %d)", n)
	}
	if totalRounds < 1 {
		return nil, fmt.Errorf("RoundRobinGenerator: totalRounds must be positive (got %d)", totalRounds)
	}

	positions := make([]*models.Team, n)
	copy(positions, teams)

	rounds := make([]Round, 0, totalRounds)
	for r := 1; r <= totalRounds; r++ {
		pairings := make([]Pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := positions[i], positions[n-1-i]
			if r%2 == 0 {
				a, b = b, a
			}
			pairings = append(pairings, Pairing{TeamA: a, TeamB: b})
		}
		rounds = append(rounds, Round{
			Number:   r,
			Week:     (r + 1) / 2,
			Pairings: pairings,
		})

		// Rotate everyone but positions[0] one step.
		last := positions[n-1]
		copy(positions[2:], positions[1:n-1])
		positions[1] = last
	}

	return rounds, nil
}
