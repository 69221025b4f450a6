// Package events carries the explicit domain events that used to be implicit
// persistence side effects. Dispatch is synchronous: the engine is driven by
// its callers and owns no background scheduler.
package events

import "context"

// MatchResultRecorded is published after both final scores of a match are
// persisted. It is the sole trigger for the totals recompute job.
type MatchResultRecorded struct {
	MatchID int
	ScoreA  int
	ScoreB  int
}

type MatchResultListener func(ctx context.Context, event MatchResultRecorded)

type Bus struct {
	matchResultListeners []MatchResultListener
}

func NewBus() *Bus {
	return &Bus{}
}

// SubscribeMatchResult registers a listener. Subscriptions happen during
// wiring, before any publish; the bus is not safe for concurrent subscribe.
func (b *Bus) SubscribeMatchResult(listener MatchResultListener) {
	b.matchResultListeners = append(b.matchResultListeners, listener)
}

func (b *Bus) PublishMatchResult(ctx context.Context, event MatchResultRecorded) {
	for _, listener := range b.matchResultListeners {
		listener(ctx, event)
	}
}
