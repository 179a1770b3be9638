package services

import "errors"

// Shared errors surfaced to callers and mapped to HTTP statuses. Every
// message is user-displayable.
var (
	// Missing resources
	ErrSeasonNotFound = errors.New("season not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("one or more selected players were not found")
	ErrSeriesNotFound = errors.New("playoff series not found")

	// Validation and business rules
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrTeamPlayersRequired  = errors.New("two players are required for a team")
	ErrTeamSamePlayer       = errors.New("a team must contain two different players")
	ErrTeamCountTooSmall    = errors.New("at least 4 teams are required before generating the regular season")
	ErrTeamCountOdd         = errors.New("team count must be even before generating the schedule")
	ErrPlayoffFieldTooSmall = errors.New("at least 8 teams are required for playoffs")
	ErrWinnerRequired       = errors.New("please select a winner")
	ErrWinnerUnknownTeam    = errors.New("winner does not match either team in this match")
	ErrScoresIncomplete     = errors.New("both scores are required when submitting an explicit result")
	ErrNegativeScore        = errors.New("scores must be zero or positive")
	ErrTiedResult           = errors.New("a match cannot end in a tie")
	ErrSeriesTied           = errors.New("series cannot be tied, one team must win")
	ErrWinnerScoreMismatch  = errors.New("winner must have the higher score")
	ErrInvalidScheduleDate  = errors.New("invalid schedule date/time")

	// Lifecycle state
	ErrSignupClosed         = errors.New("team registration is closed for this season")
	ErrRegularAlreadyBegun  = errors.New("regular season has already started for this season")
	ErrMatchAlreadyComplete = errors.New("match result has already been recorded")
	ErrSeriesAlreadyDecided = errors.New("playoff series is already decided")

	// Conflicts
	ErrPlayerAlreadyOnTeam = errors.New("one of these players is already on a registered team")
	ErrTeamNameTaken       = errors.New("team name already exists for this season")
)
