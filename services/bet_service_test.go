package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aharonidan/bopdial/models"
)

type betFixture struct {
	service   BetService
	matchRepo *fakeMatchRepo
	betRepo   *fakeBetRepo
	clock     *fakeClock
}

func newBetFixture(now time.Time) *betFixture {
	matchRepo := &fakeMatchRepo{}
	betRepo := &fakeBetRepo{}
	clock := &fakeClock{now: now}
	lock := NewLockService(matchRepo, clock)
	return &betFixture{
		service:   NewBetService(betRepo, matchRepo, lock, clock),
		matchRepo: matchRepo,
		betRepo:   betRepo,
		clock:     clock,
	}
}

func TestPlaceBetOnOpenMatch(t *testing.T) {
	f := newBetFixture(timeAt("2026-06-11T12:00:00Z"))
	f.matchRepo.matches = []*models.Match{{
		ID: 1, MatchTime: timeAt("2026-06-11T15:00:00Z"), Deadline: timeAt("2026-06-11T15:00:00Z"),
	}}

	bet, err := f.service.Place(context.Background(), 1, 1, 2, 1)
	assertNoErr(t, err)
	assertInt(t, bet.PredictedA, 2)
	assertInt(t, bet.PredictedB, 1)
	assertInt(t, len(f.betRepo.bets), 1)
}

func TestPlaceBetUpdatesExisting(t *testing.T) {
	f := newBetFixture(timeAt("2026-06-11T12:00:00Z"))
	f.matchRepo.matches = []*models.Match{{
		ID: 1, MatchTime: timeAt("2026-06-11T15:00:00Z"), Deadline: timeAt("2026-06-11T15:00:00Z"),
	}}
	ctx := context.Background()

	_, err := f.service.Place(ctx, 1, 1, 2, 1)
	assertNoErr(t, err)
	bet, err := f.service.Place(ctx, 1, 1, 0, 0)
	assertNoErr(t, err)

	assertInt(t, len(f.betRepo.bets), 1)
	assertInt(t, bet.PredictedA, 0)
	assertInt(t, bet.PredictedB, 0)
}

func TestPlaceBetOnLockedMatch(t *testing.T) {
	f := newBetFixture(timeAt("2026-06-11T16:00:00Z"))
	f.matchRepo.matches = []*models.Match{{
		ID: 1, MatchTime: timeAt("2026-06-11T15:00:00Z"), Deadline: timeAt("2026-06-11T15:00:00Z"),
	}}

	_, err := f.service.Place(context.Background(), 1, 1, 2, 1)
	if !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("got %v, want ErrMatchLocked", err)
	}
	assertInt(t, len(f.betRepo.bets), 0)
}

func TestPlaceBetOnOverriddenMatch(t *testing.T) {
	f := newBetFixture(timeAt("2026-06-11T12:00:00Z"))
	f.matchRepo.matches = []*models.Match{{
		ID: 1, MatchTime: timeAt("2026-06-11T15:00:00Z"), Deadline: timeAt("2026-06-11T15:00:00Z"),
		LockOverride: true,
	}}

	_, err := f.service.Place(context.Background(), 1, 1, 2, 1)
	if !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("got %v, want ErrMatchLocked", err)
	}
}

func TestPlaceBetUnknownMatch(t *testing.T) {
	f := newBetFixture(timeAt("2026-06-11T12:00:00Z"))

	_, err := f.service.Place(context.Background(), 1, 42, 2, 1)
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("got %v, want ErrMatchNotFound", err)
	}
}

func TestPlaceBetNegativePrediction(t *testing.T) {
	f := newBetFixture(timeAt("2026-06-11T12:00:00Z"))
	f.matchRepo.matches = []*models.Match{{
		ID: 1, MatchTime: timeAt("2026-06-11T15:00:00Z"), Deadline: timeAt("2026-06-11T15:00:00Z"),
	}}

	_, err := f.service.Place(context.Background(), 1, 1, -1, 0)
	if !errors.Is(err, ErrBetPredictedNegative) {
		t.Fatalf("got %v, want ErrBetPredictedNegative", err)
	}
}
