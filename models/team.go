package models

import "time"

// Team is a two-player pairing registered for one season. Teams are created
// during signup only and are immutable afterwards (logo aside). Player A/B
// order follows the sorted order of the player names.
type Team struct {
	ID          int       `json:"id" db:"id"`
	SeasonID    int       `json:"season_id" db:"season_id"`
	Name        string    `json:"name" db:"name"`
	PlayerAID   int       `json:"player_a_id" db:"player_a_id"`
	PlayerBID   int       `json:"player_b_id" db:"player_b_id"`
	PlayerAName string    `json:"player_a_name" db:"player_a_name"`
	PlayerBName string    `json:"player_b_name" db:"player_b_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// PlayerNames returns the display names in stored (sorted) order.
func (t *Team) PlayerNames() []string {
	return []string{t.PlayerAName, t.PlayerBName}
}

// HasPlayer reports whether the given player is on this team.
func (t *Team) HasPlayer(playerID int) bool {
	return t.PlayerAID == playerID || t.PlayerBID == playerID
}
