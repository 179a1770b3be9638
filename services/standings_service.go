package services

import (
	"context"
	"sort"

	"github.com/Dosada05/pool-league/models"
	"github.com/Dosada05/pool-league/repositories"
)

type StandingsService interface {
	// ComputeStandings derives the ranked regular-season table from
	// completed matches. It is a pure read: same completed-match set,
	// same result, regardless of match order.
	ComputeStandings(ctx context.Context, seasonID int) ([]models.Standing, error)
}

type standingsService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
}

func NewStandingsService(teamRepo repositories.TeamRepository, matchRepo repositories.MatchRepository) StandingsService {
	return &standingsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

func (s *standingsService) ComputeStandings(ctx context.Context, seasonID int) ([]models.Standing, error) {
	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	phase := models.MatchPhaseRegular
	status := models.MatchStatusComplete
	completed, err := s.matchRepo.ListBySeason(ctx, seasonID, repositories.ListMatchesFilter{
		Phase:  &phase,
		Status: &status,
	})
	if err != nil {
		return nil, err
	}

	byTeam := make(map[int]*models.Standing, len(teams))
	standings := make([]models.Standing, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, models.Standing{
			TeamID:   team.ID,
			TeamName: team.Name,
			Players:  team.PlayerNames(),
		})
		byTeam[team.ID] = &standings[len(standings)-1]
	}

	for _, m := range completed {
		a, b := byTeam[m.TeamAID], byTeam[m.TeamBID]
		if a == nil || b == nil {
			continue
		}

		scoreA, scoreB := scoreOrZero(m.TeamAScore), scoreOrZero(m.TeamBScore)
		a.PointsFor += scoreA
		a.PointsAgainst += scoreB
		b.PointsFor += scoreB
		b.PointsAgainst += scoreA

		if m.WinnerTeamID == nil {
			continue
		}
		switch *m.WinnerTeamID {
		case m.TeamAID:
			a.Wins++
			b.Losses++
		case m.TeamBID:
			b.Wins++
			a.Losses++
		}
	}

	for i := range standings {
		entry := &standings[i]
		entry.PointDifferential = entry.PointsFor - entry.PointsAgainst
		if played := entry.Wins + entry.Losses; played > 0 {
			entry.WinPct = float64(entry.Wins) / float64(played)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return lessStanding(&standings[i], &standings[j], completed)
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings, nil
}

// lessStanding orders two rows by descending desirability: win percentage,
// total wins, head-to-head record between the pair, point differential,
// points for, then team name ascending as the deterministic last word.
func lessStanding(a, b *models.Standing, completed []*models.Match) bool {
	if a.WinPct != b.WinPct {
		return a.WinPct > b.WinPct
	}
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	winsA, winsB := headToHeadWins(completed, a.TeamID, b.TeamID)
	if winsA != winsB {
		return winsA > winsB
	}
	if a.PointDifferential != b.PointDifferential {
		return a.PointDifferential > b.PointDifferential
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	return a.TeamName < b.TeamName
}

// headToHeadWins counts wins in completed regular matches played between
// exactly this pair of teams.
func headToHeadWins(completed []*models.Match, teamAID, teamBID int) (int, int) {
	var winsA, winsB int
	for _, m := range completed {
		pair := (m.TeamAID == teamAID && m.TeamBID == teamBID) ||
			(m.TeamAID == teamBID && m.TeamBID == teamAID)
		if !pair || m.WinnerTeamID == nil {
			continue
		}
		switch *m.WinnerTeamID {
		case teamAID:
			winsA++
		case teamBID:
			winsB++
		}
	}
	return winsA, winsB
}

func scoreOrZero(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}
