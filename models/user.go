package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

type User struct {
	ID           int      `json:"id"`
	AccountID    int      `json:"account_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`

	// Special picks, mutable only while the tournament-wide lock is open.
	BlackHorseID  *int    `json:"black_horse_id,omitempty"`
	GreyHorseID   *int    `json:"grey_horse_id,omitempty"`
	ChampionID    *int    `json:"champion_id,omitempty"`
	TopScorer     *string `json:"top_scorer,omitempty"`
	AfterArmyTrip *string `json:"after_army_trip,omitempty"`

	Points    *int      `json:"points,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Account *Account `json:"account,omitempty"`
}

func (u *User) PointsOrZero() int {
	if u.Points == nil {
		return 0
	}
	return *u.Points
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
