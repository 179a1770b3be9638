package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentSeasonDescriptor(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		expected SeasonDescriptor
	}{
		{
			name:     "january is first half",
			now:      time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: SeasonDescriptor{Year: 2026, Period: PeriodFirstHalf},
		},
		{
			name:     "june 30 is still first half",
			now:      time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC),
			expected: SeasonDescriptor{Year: 2026, Period: PeriodFirstHalf},
		},
		{
			name:     "july 1 flips to second half",
			now:      time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
			expected: SeasonDescriptor{Year: 2026, Period: PeriodSecondHalf},
		},
		{
			name:     "december is second half",
			now:      time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC),
			expected: SeasonDescriptor{Year: 2025, Period: PeriodSecondHalf},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CurrentSeasonDescriptor(tc.now))
		})
	}
}

func TestSeasonStatusCanTransitionTo(t *testing.T) {
	assert.True(t, SeasonStatusSignup.CanTransitionTo(SeasonStatusRegular))
	assert.True(t, SeasonStatusSignup.CanTransitionTo(SeasonStatusPlayoffs))
	assert.True(t, SeasonStatusRegular.CanTransitionTo(SeasonStatusPlayoffs))
	assert.True(t, SeasonStatusPlayoffs.CanTransitionTo(SeasonStatusComplete))

	// Never backwards, never self.
	assert.False(t, SeasonStatusRegular.CanTransitionTo(SeasonStatusSignup))
	assert.False(t, SeasonStatusComplete.CanTransitionTo(SeasonStatusPlayoffs))
	assert.False(t, SeasonStatusPlayoffs.CanTransitionTo(SeasonStatusPlayoffs))

	assert.False(t, SeasonStatus("BOGUS").CanTransitionTo(SeasonStatusRegular))
	assert.False(t, SeasonStatusSignup.CanTransitionTo(SeasonStatus("BOGUS")))
}

func TestSeasonLabel(t *testing.T) {
	spring := &Season{Year: 2026, Period: PeriodFirstHalf}
	assert.Equal(t, "Spring 2026", spring.Label())

	fall := &Season{Year: 2026, Period: PeriodSecondHalf}
	assert.Equal(t, "Fall 2026", fall.Label())

	named := "Founders Cup"
	custom := &Season{Year: 2026, Period: PeriodFirstHalf, SeasonName: &named}
	assert.Equal(t, "Founders Cup", custom.Label())

	empty := ""
	blank := &Season{Year: 2026, Period: PeriodSecondHalf, SeasonName: &empty}
	assert.Equal(t, "Fall 2026", blank.Label())

	var nilSeason *Season
	assert.Equal(t, "Unknown", nilSeason.Label())
}

func TestSeasonDescriptor(t *testing.T) {
	s := &Season{Year: 2025, Period: PeriodSecondHalf}
	assert.Equal(t, SeasonDescriptor{Year: 2025, Period: PeriodSecondHalf}, s.Descriptor())
}
