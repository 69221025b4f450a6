package services

import "time"

// Clock supplies "now" to the lock gate and the leaderboard views. It is
// injected rather than read from the ambient time package so deadline
// boundaries can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

// Now returns the current instant in UTC. All deadlines and match times are
// stored in UTC as well, so lock checks never need a timezone correction.
func (realClock) Now() time.Time {
	return time.Now().UTC()
}
