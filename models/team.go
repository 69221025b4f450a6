package models

import "time"

// PlaceholderGroup marks a team slot whose real opponent is not yet known
// (playoff fixtures created before the group stage ends).
const PlaceholderGroup = "place_holder"

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	GroupName string    `json:"group_name"`
	FlagKey   *string   `json:"-"`
	FlagURL   *string   `json:"flag_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Team) Placeholder() bool {
	return t.GroupName == PlaceholderGroup
}
