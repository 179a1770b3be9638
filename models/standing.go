package models

// Standing is one ranked row of the regular-season table. Standings are
// derived from completed regular matches on demand and never persisted.
type Standing struct {
	TeamID            int      `json:"team_id"`
	TeamName          string   `json:"team_name"`
	Players           []string `json:"players"`
	Wins              int      `json:"wins"`
	Losses            int      `json:"losses"`
	PointsFor         int      `json:"points_for"`
	PointsAgainst     int      `json:"points_against"`
	PointDifferential int      `json:"point_differential"`
	WinPct            float64  `json:"win_pct"`
	Rank              int      `json:"rank"`
}
