package services

import (
	"context"
	"testing"
	"time"

	"github.com/aharonidan/bopdial/models"
)

type leaderboardFixture struct {
	service   LeaderboardService
	matchRepo *fakeMatchRepo
	betRepo   *fakeBetRepo
	userRepo  *fakeUserRepo
	clock     *fakeClock
}

func newLeaderboardFixture(now time.Time) *leaderboardFixture {
	matchRepo := &fakeMatchRepo{}
	betRepo := &fakeBetRepo{}
	userRepo := &fakeUserRepo{}
	clock := &fakeClock{now: now}
	return &leaderboardFixture{
		service:   NewLeaderboardService(betRepo, matchRepo, userRepo, clock, time.UTC),
		matchRepo: matchRepo,
		betRepo:   betRepo,
		userRepo:  userRepo,
		clock:     clock,
	}
}

func (f *leaderboardFixture) addPlayedBet(userID, matchID int, at string, points int) {
	match := playedMatch(matchID, at, 1, 0)
	f.matchRepo.matches = append(f.matchRepo.matches, match)
	f.betRepo.bets = append(f.betRepo.bets, &models.Bet{
		ID:      len(f.betRepo.bets) + 1,
		UserID:  userID,
		MatchID: matchID,
		Points:  intPtr(points),
		Match:   match,
	})
}

func TestDailyScoreSumsOneCalendarDay(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T20:00:00Z"))
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 3)
	f.addPlayedBet(1, 2, "2026-06-12T21:00:00Z", 1)
	f.addPlayedBet(1, 3, "2026-06-13T15:00:00Z", 5)

	score, err := f.service.DailyScore(context.Background(), 1, timeAt("2026-06-12T09:30:00Z"))
	assertNoErr(t, err)
	assertInt(t, score, 4)
}

func TestDailyScoreZeroDateMeansToday(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T20:00:00Z"))
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 3)
	f.addPlayedBet(1, 2, "2026-06-13T15:00:00Z", 7)

	// Callers passing the zero time get the injected clock's today, never
	// the wall clock's.
	score, err := f.service.DailyScore(context.Background(), 1, time.Time{})
	assertNoErr(t, err)
	assertInt(t, score, 3)
}

func TestDailyScoreEmptyDay(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T20:00:00Z"))
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 3)

	score, err := f.service.DailyScore(context.Background(), 1, timeAt("2026-06-20T00:00:00Z"))
	assertNoErr(t, err)
	assertInt(t, score, 0)
}

func TestBestDayPicksHighestScoringDay(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-14T12:00:00Z"))
	f.addPlayedBet(1, 1, "2026-06-11T15:00:00Z", 2)
	f.addPlayedBet(1, 2, "2026-06-12T15:00:00Z", 4)
	f.addPlayedBet(1, 3, "2026-06-12T18:00:00Z", 3)
	f.addPlayedBet(1, 4, "2026-06-13T15:00:00Z", 6)

	best, err := f.service.BestDay(context.Background(), 1)
	assertNoErr(t, err)
	assertInt(t, best.Points, 7)
	if best.Date == nil || !best.Date.Equal(timeAt("2026-06-12T00:00:00Z")) {
		t.Fatalf("got date %v, want 2026-06-12", best.Date)
	}
}

func TestBestDayTieKeepsEarliestDay(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-14T12:00:00Z"))
	f.addPlayedBet(1, 1, "2026-06-11T15:00:00Z", 5)
	f.addPlayedBet(1, 2, "2026-06-13T15:00:00Z", 5)

	best, err := f.service.BestDay(context.Background(), 1)
	assertNoErr(t, err)
	assertInt(t, best.Points, 5)
	if best.Date == nil || !best.Date.Equal(timeAt("2026-06-11T00:00:00Z")) {
		t.Fatalf("got date %v, want 2026-06-11", best.Date)
	}
}

func TestBestDayNoScoringDays(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-14T12:00:00Z"))
	f.addPlayedBet(1, 1, "2026-06-11T15:00:00Z", 0)

	best, err := f.service.BestDay(context.Background(), 1)
	assertNoErr(t, err)
	assertInt(t, best.Points, 0)
	if best.Date != nil {
		t.Fatalf("got date %v, want none", best.Date)
	}
}

func TestBestDayNoMatchesScheduled(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-14T12:00:00Z"))

	best, err := f.service.BestDay(context.Background(), 1)
	assertNoErr(t, err)
	assertInt(t, best.Points, 0)
	if best.Date != nil {
		t.Fatalf("got date %v, want none", best.Date)
	}
}

func TestNoMatchesToday(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T12:00:00Z"))
	none, err := f.service.NoMatchesToday(context.Background())
	assertNoErr(t, err)
	if !none {
		t.Fatal("empty schedule should report no matches today")
	}

	// Scheduling alone flips the report; play status is irrelevant here.
	f.matchRepo.matches = append(f.matchRepo.matches, &models.Match{
		ID: 1, MatchTime: timeAt("2026-06-12T18:00:00Z"), Deadline: timeAt("2026-06-12T18:00:00Z"),
	})
	none, err = f.service.NoMatchesToday(context.Background())
	assertNoErr(t, err)
	if none {
		t.Fatal("a scheduled match today should be reported even before it is played")
	}
}

func TestDailyKingAndLoser(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T22:00:00Z"))
	f.userRepo.users = []*models.User{
		{ID: 1, AccountID: 1},
		{ID: 2, AccountID: 1},
		{ID: 3, AccountID: 1},
	}
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 12)
	f.betRepo.bets = append(f.betRepo.bets,
		&models.Bet{ID: 2, UserID: 2, MatchID: 1, Points: intPtr(12), Match: f.matchRepo.matches[0]},
		&models.Bet{ID: 3, UserID: 3, MatchID: 1, Points: intPtr(5), Match: f.matchRepo.matches[0]},
	)
	ctx := context.Background()

	// Users 1 and 2 share the top score; ties share the crown.
	for _, id := range []int{1, 2} {
		king, err := f.service.DailyKing(ctx, f.userRepo.users[id-1])
		assertNoErr(t, err)
		if king == nil || !*king {
			t.Fatalf("user %d should be daily king", id)
		}
	}

	king, err := f.service.DailyKing(ctx, f.userRepo.users[2])
	assertNoErr(t, err)
	if king == nil || *king {
		t.Fatal("user 3 should not be daily king")
	}

	loser, err := f.service.DailyLoser(ctx, f.userRepo.users[2])
	assertNoErr(t, err)
	if loser == nil || !*loser {
		t.Fatal("user 3 should be daily loser")
	}

	loser, err = f.service.DailyLoser(ctx, f.userRepo.users[0])
	assertNoErr(t, err)
	if loser == nil || *loser {
		t.Fatal("user 1 should not be daily loser")
	}
}

func TestDailyVerdictUndefinedWithUnplayedMatch(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T19:00:00Z"))
	f.userRepo.users = []*models.User{{ID: 1, AccountID: 1}}
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 9)
	// A second match today is still scheduled, so the day is incomplete.
	f.matchRepo.matches = append(f.matchRepo.matches, &models.Match{
		ID: 2, MatchTime: timeAt("2026-06-12T21:00:00Z"), Deadline: timeAt("2026-06-12T21:00:00Z"),
	})

	king, err := f.service.DailyKing(context.Background(), f.userRepo.users[0])
	assertNoErr(t, err)
	if king != nil {
		t.Fatalf("got verdict %v, want undefined", *king)
	}
}

func TestDailyVerdictUndefinedWithNoMatchesToday(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-20T12:00:00Z"))
	f.userRepo.users = []*models.User{{ID: 1, AccountID: 1}}
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 9)

	loser, err := f.service.DailyLoser(context.Background(), f.userRepo.users[0])
	assertNoErr(t, err)
	if loser != nil {
		t.Fatalf("got verdict %v, want undefined", *loser)
	}
}

func TestDailyVerdictSingleUserPool(t *testing.T) {
	f := newLeaderboardFixture(timeAt("2026-06-12T22:00:00Z"))
	f.userRepo.users = []*models.User{{ID: 1, AccountID: 1}}
	f.addPlayedBet(1, 1, "2026-06-12T15:00:00Z", 0)
	ctx := context.Background()

	king, err := f.service.DailyKing(ctx, f.userRepo.users[0])
	assertNoErr(t, err)
	loser, err := f.service.DailyLoser(ctx, f.userRepo.users[0])
	assertNoErr(t, err)
	if king == nil || loser == nil || !*king || !*loser {
		t.Fatal("the only user in a pool is both king and loser of a completed day")
	}
}
