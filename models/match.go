package models

import "time"

type Match struct {
	ID           int       `json:"id"`
	TeamAID      int       `json:"team_a_id"`
	TeamBID      int       `json:"team_b_id"`
	ScoreA       *int      `json:"score_a,omitempty"`
	ScoreB       *int      `json:"score_b,omitempty"`
	MatchTime    time.Time `json:"match_time"`
	Deadline     time.Time `json:"deadline"`
	LockOverride bool      `json:"lock_override"`
	IsPlayoff    bool      `json:"is_playoff"`
	CreatedAt    time.Time `json:"created_at"`

	TeamA *Team `json:"team_a,omitempty"`
	TeamB *Team `json:"team_b,omitempty"`
}

// Played reports whether the final result is in. Scores are set together,
// exactly once, so checking both sides guards against partial rows.
func (m *Match) Played() bool {
	return m.ScoreA != nil && m.ScoreB != nil
}
