package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchDisplayStatus(t *testing.T) {
	tbd := &Match{Status: MatchStatusTBD}
	assert.Equal(t, "TBD", tbd.DisplayStatus())
	assert.False(t, tbd.IsComplete())

	when := time.Now()
	scheduled := &Match{Status: MatchStatusScheduled, ScheduledAt: &when}
	assert.Equal(t, "Scheduled", scheduled.DisplayStatus())

	// A set time implies scheduled even before the status catches up.
	timeOnly := &Match{Status: MatchStatusTBD, ScheduledAt: &when}
	assert.Equal(t, "Scheduled", timeOnly.DisplayStatus())

	complete := &Match{Status: MatchStatusComplete, ScheduledAt: &when}
	assert.Equal(t, "Complete", complete.DisplayStatus())
	assert.True(t, complete.IsComplete())
}
