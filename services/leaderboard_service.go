package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

// BestDay is the user's strongest calendar day. Date is nil when no day
// scored above zero or no match has been scheduled yet.
type BestDay struct {
	Points int        `json:"points"`
	Date   *time.Time `json:"date,omitempty"`
}

// LeaderboardService derives the time-based views of the pool. Daily
// verdicts (king/loser) exist only for a fully completed day: the *bool
// results are nil when today has no matches or an unplayed one.
type LeaderboardService interface {
	DailyScore(ctx context.Context, userID int, date time.Time) (int, error)
	BestDay(ctx context.Context, userID int) (BestDay, error)
	NoMatchesToday(ctx context.Context) (bool, error)
	DailyKing(ctx context.Context, user *models.User) (*bool, error)
	DailyLoser(ctx context.Context, user *models.User) (*bool, error)
}

type leaderboardService struct {
	betRepo   repositories.BetRepository
	matchRepo repositories.MatchRepository
	userRepo  repositories.UserRepository
	clock     Clock
	location  *time.Location
}

func NewLeaderboardService(
	betRepo repositories.BetRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	clock Clock,
	location *time.Location,
) LeaderboardService {
	if location == nil {
		location = time.UTC
	}
	return &leaderboardService{
		betRepo:   betRepo,
		matchRepo: matchRepo,
		userRepo:  userRepo,
		clock:     clock,
		location:  location,
	}
}

// DailyScore sums the user's awarded points over played matches scheduled
// within date's calendar day in the canonical timezone. A zero date means
// today per the injected clock, so callers never read the wall clock
// themselves.
func (s *leaderboardService) DailyScore(ctx context.Context, userID int, date time.Time) (int, error) {
	if date.IsZero() {
		date = s.clock.Now()
	}
	from, to := s.dayBounds(date)
	score, err := s.betRepo.SumPointsForUserBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to compute daily score for user %d: %w", userID, err)
	}
	return score, nil
}

// BestDay scans every calendar day from the tournament's first scheduled
// match through today. Strict greater-than keeps the earliest day on ties.
func (s *leaderboardService) BestDay(ctx context.Context, userID int) (BestDay, error) {
	anchor, err := s.matchRepo.EarliestScheduled(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return BestDay{}, nil
		}
		return BestDay{}, fmt.Errorf("failed to find first scheduled match: %w", err)
	}

	best := BestDay{}
	today := s.startOfDay(s.clock.Now())

	for day := s.startOfDay(anchor.MatchTime); !day.After(today); day = day.AddDate(0, 0, 1) {
		score, err := s.DailyScore(ctx, userID, day)
		if err != nil {
			return BestDay{}, err
		}
		if score > best.Points {
			date := day
			best.Points = score
			best.Date = &date
		}
	}
	return best, nil
}

// NoMatchesToday ignores play status: it is about the schedule only.
func (s *leaderboardService) NoMatchesToday(ctx context.Context) (bool, error) {
	matches, err := s.todaysMatches(ctx)
	if err != nil {
		return false, err
	}
	return len(matches) == 0, nil
}

func (s *leaderboardService) DailyKing(ctx context.Context, user *models.User) (*bool, error) {
	return s.dailyVerdict(ctx, user, func(score, bound int) bool { return score > bound })
}

func (s *leaderboardService) DailyLoser(ctx context.Context, user *models.User) (*bool, error) {
	return s.dailyVerdict(ctx, user, func(score, bound int) bool { return score < bound })
}

// dailyVerdict compares the user's daily score against the pool's extreme
// for today. beats reports whether a candidate score displaces the current
// bound; with "greater" the bound converges to the maximum, with "less" to
// the minimum. Ties share the verdict, so a single-user pool is both king
// and loser on any qualifying day.
func (s *leaderboardService) dailyVerdict(ctx context.Context, user *models.User, beats func(score, bound int) bool) (*bool, error) {
	matches, err := s.todaysMatches(ctx)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	for _, match := range matches {
		if !match.Played() {
			return nil, nil
		}
	}

	poolUsers, err := s.userRepo.ListByAccount(ctx, user.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account users: %w", err)
	}

	today := s.clock.Now()
	own, err := s.DailyScore(ctx, user.ID, today)
	if err != nil {
		return nil, err
	}

	bound := own
	for _, u := range poolUsers {
		score, err := s.DailyScore(ctx, u.ID, today)
		if err != nil {
			return nil, err
		}
		if beats(score, bound) {
			bound = score
		}
	}

	verdict := own == bound
	return &verdict, nil
}

func (s *leaderboardService) todaysMatches(ctx context.Context) ([]*models.Match, error) {
	from, to := s.dayBounds(s.clock.Now())
	matches, err := s.matchRepo.ListScheduledBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's matches: %w", err)
	}
	return matches, nil
}

func (s *leaderboardService) dayBounds(t time.Time) (time.Time, time.Time) {
	start := s.startOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func (s *leaderboardService) startOfDay(t time.Time) time.Time {
	year, month, day := t.In(s.location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, s.location)
}
