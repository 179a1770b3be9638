package models

import "time"

// Player is a roster entry. Players exist independently of seasons and are
// referenced by teams; there are no accounts or credentials.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
