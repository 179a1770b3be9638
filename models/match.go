package models

import "time"

// MatchPhase separates regular-season play from the playoff bracket.
type MatchPhase string

const (
	MatchPhaseRegular  MatchPhase = "REGULAR"
	MatchPhasePlayoffs MatchPhase = "PLAYOFFS"
)

// MatchStatus represents match scheduling states, matching the ENUM in the DB.
type MatchStatus string

const (
	MatchStatusTBD       MatchStatus = "TBD"
	MatchStatusScheduled MatchStatus = "SCHEDULED"
	MatchStatusComplete  MatchStatus = "COMPLETE"
)

// PlayoffRound is the bracket stage of a playoff series.
type PlayoffRound string

const (
	PlayoffRoundQuarterfinal PlayoffRound = "QF"
	PlayoffRoundSemifinal    PlayoffRound = "SF"
	PlayoffRoundFinal        PlayoffRound = "F"
)

// Match is a single meeting of two teams. Regular-season matches carry
// week/round coordinates; playoff matches are individual games of a
// best-of series, tied together by SeriesKey and ordered by GameNumber.
// Team names are denormalized for display.
type Match struct {
	ID        int        `json:"id" db:"id"`
	SeasonID  int        `json:"season_id" db:"season_id"`
	Phase     MatchPhase `json:"phase" db:"phase"`
	Week      int        `json:"week" db:"week"`
	Round     *int       `json:"round,omitempty" db:"round"`
	TeamAID   int        `json:"team_a_id" db:"team_a_id"`
	TeamBID   int        `json:"team_b_id" db:"team_b_id"`
	TeamAName string     `json:"team_a_name" db:"team_a_name"`
	TeamBName string     `json:"team_b_name" db:"team_b_name"`

	Status      MatchStatus `json:"status" db:"status"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	Location    *string     `json:"location,omitempty" db:"location"`

	TeamAScore   *int       `json:"team_a_score,omitempty" db:"team_a_score"`
	TeamBScore   *int       `json:"team_b_score,omitempty" db:"team_b_score"`
	WinnerTeamID *int       `json:"winner_team_id,omitempty" db:"winner_team_id"`
	LoserTeamID  *int       `json:"loser_team_id,omitempty" db:"loser_team_id"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	PlayoffRound *PlayoffRound `json:"playoff_round,omitempty" db:"playoff_round"`
	SeriesKey    *string       `json:"series_key,omitempty" db:"series_key"`
	BestOf       *int          `json:"best_of,omitempty" db:"best_of"`
	GameNumber   *int          `json:"game_number,omitempty" db:"game_number"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsComplete reports whether a result has been recorded.
func (m *Match) IsComplete() bool {
	return m.Status == MatchStatusComplete
}

// DisplayStatus renders the status for listings.
func (m *Match) DisplayStatus() string {
	switch {
	case m.Status == MatchStatusComplete:
		return "Complete"
	case m.ScheduledAt != nil || m.Status == MatchStatusScheduled:
		return "Scheduled"
	default:
		return "TBD"
	}
}
