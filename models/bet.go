package models

import "time"

// Bet is a user's score prediction for one match. Points and the outcome
// flags are filled in by the grading step once the match is played; the
// aggregation layer treats them as given.
type Bet struct {
	ID         int  `json:"id"`
	UserID     int  `json:"user_id"`
	MatchID    int  `json:"match_id"`
	PredictedA int  `json:"predicted_a"`
	PredictedB int  `json:"predicted_b"`
	Points     *int `json:"points,omitempty"`

	Exact          bool `json:"exact"`
	WorstMiss      bool `json:"worst_miss"`
	Late           bool `json:"late"`
	GoalDifference bool `json:"goal_difference"`
	Direction      bool `json:"direction"`

	CreatedAt time.Time `json:"created_at"`

	Match *Match `json:"match,omitempty"`
}

func (b *Bet) PredictedDraw() bool {
	return b.PredictedA == b.PredictedB
}

func (b *Bet) PointsOrZero() int {
	if b.Points == nil {
		return 0
	}
	return *b.Points
}
