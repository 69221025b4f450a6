package models

import "time"

// Account is a pool: users sharing an account compete on the same daily
// leaderboard.
type Account struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
