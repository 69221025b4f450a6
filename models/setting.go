package models

import "time"

// Setting is an append-only (name, value) record published by an
// administrator once a tournament-wide outcome is determined. Several records
// may share a name; a pick scores when its exact (name, value) pair exists.
type Setting struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
