package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aharonidan/bopdial/models"
)

func newUserFixture(now time.Time, anchorDeadline time.Time) (*fakeUserRepo, UserService) {
	matchRepo := &fakeMatchRepo{matches: []*models.Match{{
		ID: 1, MatchTime: anchorDeadline, Deadline: anchorDeadline,
	}}}
	userRepo := &fakeUserRepo{users: []*models.User{{ID: 1, AccountID: 1}}}
	lock := NewLockService(matchRepo, &fakeClock{now: now})
	return userRepo, NewUserService(userRepo, lock)
}

func TestUpdateSpecialPicksWhileOpen(t *testing.T) {
	userRepo, users := newUserFixture(timeAt("2026-06-10T12:00:00Z"), timeAt("2026-06-11T15:00:00Z"))

	user, err := users.UpdateSpecialPicks(context.Background(), 1, SpecialPicksInput{
		BlackHorseID: intPtr(3),
		TopScorer:    strPtr("Cristiano Ronaldo"),
	})
	assertNoErr(t, err)
	assertInt(t, userRepo.picksUpdates, 1)
	if user.BlackHorseID == nil || *user.BlackHorseID != 3 {
		t.Fatalf("got black horse %v, want 3", user.BlackHorseID)
	}
	if user.TopScorer == nil || *user.TopScorer != "cristiano_ronaldo" {
		t.Fatalf("got top scorer %v, want normalized token", user.TopScorer)
	}
}

func TestUpdateSpecialPicksAfterLock(t *testing.T) {
	userRepo, users := newUserFixture(timeAt("2026-06-11T16:00:00Z"), timeAt("2026-06-11T15:00:00Z"))

	_, err := users.UpdateSpecialPicks(context.Background(), 1, SpecialPicksInput{ChampionID: intPtr(2)})
	if !errors.Is(err, ErrSpecialPicksLocked) {
		t.Fatalf("got %v, want ErrSpecialPicksLocked", err)
	}
	assertInt(t, userRepo.picksUpdates, 0)
}

func TestUpdateSpecialPicksResubmitAfterLock(t *testing.T) {
	userRepo, users := newUserFixture(timeAt("2026-06-11T16:00:00Z"), timeAt("2026-06-11T15:00:00Z"))
	userRepo.users[0].ChampionID = intPtr(2)
	userRepo.users[0].TopScorer = strPtr("mbappe")

	// Sending back the stored values is not a change and passes the gate.
	user, err := users.UpdateSpecialPicks(context.Background(), 1, SpecialPicksInput{
		ChampionID: intPtr(2),
		TopScorer:  strPtr("Mbappe"),
	})
	assertNoErr(t, err)
	if user.ChampionID == nil || *user.ChampionID != 2 {
		t.Fatalf("got champion %v, want 2", user.ChampionID)
	}
}

func TestListByAccountOrdersByCachedTotal(t *testing.T) {
	matchRepo := &fakeMatchRepo{}
	userRepo := &fakeUserRepo{users: []*models.User{
		{ID: 1, AccountID: 1, Name: "dana", Points: intPtr(5)},
		{ID: 2, AccountID: 1, Name: "noa"},
		{ID: 3, AccountID: 1, Name: "omer", Points: intPtr(9)},
		{ID: 4, AccountID: 2, Name: "elsewhere", Points: intPtr(50)},
	}}
	lock := NewLockService(matchRepo, &fakeClock{now: timeAt("2026-06-10T12:00:00Z")})
	users := NewUserService(userRepo, lock)

	standings, err := users.ListByAccount(context.Background(), 1)
	assertNoErr(t, err)

	assertInt(t, len(standings), 3)
	// Highest total first; a user with no recomputed total ranks as zero.
	assertInt(t, standings[0].ID, 3)
	assertInt(t, standings[1].ID, 1)
	assertInt(t, standings[2].ID, 2)
}

func TestUpdateSpecialPicksUnknownUser(t *testing.T) {
	_, users := newUserFixture(timeAt("2026-06-10T12:00:00Z"), timeAt("2026-06-11T15:00:00Z"))

	_, err := users.UpdateSpecialPicks(context.Background(), 42, SpecialPicksInput{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
