package models

import (
	"fmt"
	"time"
)

// SeasonStatus represents the season lifecycle states, matching the ENUM in the DB.
type SeasonStatus string

const (
	SeasonStatusSignup   SeasonStatus = "SIGNUP"
	SeasonStatusRegular  SeasonStatus = "REGULAR"
	SeasonStatusPlayoffs SeasonStatus = "PLAYOFFS"
	SeasonStatusComplete SeasonStatus = "COMPLETE"
)

var seasonStatusOrder = map[SeasonStatus]int{
	SeasonStatusSignup:   0,
	SeasonStatusRegular:  1,
	SeasonStatusPlayoffs: 2,
	SeasonStatusComplete: 3,
}

// CanTransitionTo reports whether moving to next is a forward transition.
// Season status never regresses.
func (s SeasonStatus) CanTransitionTo(next SeasonStatus) bool {
	from, okFrom := seasonStatusOrder[s]
	to, okTo := seasonStatusOrder[next]
	return okFrom && okTo && to > from
}

// SeasonPeriod identifies which half of the year a season covers.
type SeasonPeriod string

const (
	PeriodFirstHalf  SeasonPeriod = "A" // January through June
	PeriodSecondHalf SeasonPeriod = "B" // July through December
)

// SeasonDescriptor uniquely identifies a season by year and half-year period.
type SeasonDescriptor struct {
	Year   int          `json:"year"`
	Period SeasonPeriod `json:"period"`
}

// CurrentSeasonDescriptor derives the descriptor for the season containing
// the given instant. Callers compute this once at the edge and pass it down;
// nothing below the handler layer reads the wall clock.
func CurrentSeasonDescriptor(now time.Time) SeasonDescriptor {
	period := PeriodFirstHalf
	if now.Month() >= time.July {
		period = PeriodSecondHalf
	}
	return SeasonDescriptor{Year: now.Year(), Period: period}
}

// Season is one registration-through-championship cycle.
type Season struct {
	ID                int          `json:"id" db:"id"`
	Year              int          `json:"year" db:"year"`
	Period            SeasonPeriod `json:"period" db:"period"`
	Status            SeasonStatus `json:"status" db:"status"`
	RegularWeeks      int          `json:"regular_weeks" db:"regular_weeks"`
	RegularRounds     int          `json:"regular_rounds" db:"regular_rounds"`
	PlayoffsGenerated bool         `json:"playoffs_generated" db:"playoffs_generated"`
	SeasonName        *string      `json:"season_name,omitempty" db:"season_name"`
	StartDate         *time.Time   `json:"start_date,omitempty" db:"start_date"`
	WeekGapDays       *int         `json:"week_gap_days,omitempty" db:"week_gap_days"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
}

// Descriptor returns the season's identifying descriptor.
func (s *Season) Descriptor() SeasonDescriptor {
	return SeasonDescriptor{Year: s.Year, Period: s.Period}
}

// Label returns the display name: the explicit season name if set,
// otherwise "Spring 2026" / "Fall 2026" derived from the period.
func (s *Season) Label() string {
	if s == nil {
		return "Unknown"
	}
	if s.SeasonName != nil && *s.SeasonName != "" {
		return *s.SeasonName
	}
	half := "Spring"
	if s.Period == PeriodSecondHalf {
		half = "Fall"
	}
	return fmt.Sprintf("%s %d", half, s.Year)
}
