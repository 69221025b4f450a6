package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
	"golang.org/x/sync/errgroup"
)

const recomputeConcurrency = 8

// ScoringService recomputes every user's cached total from scratch: the sum
// of awarded points over bets of played matches plus the special-pick
// bonuses. The batch is a pure function of current results, bets, picks and
// settings, so running it twice without data changes yields identical totals.
type ScoringService interface {
	RecomputeAllTotals(ctx context.Context) error
	UserTotal(ctx context.Context, user *models.User) (int, error)
}

type scoringService struct {
	tx       repositories.TxRunner
	userRepo repositories.UserRepository
	betRepo  repositories.BetRepository
	bonus    BonusService
	logger   *slog.Logger
}

func NewScoringService(
	tx repositories.TxRunner,
	userRepo repositories.UserRepository,
	betRepo repositories.BetRepository,
	bonus BonusService,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		tx:       tx,
		userRepo: userRepo,
		betRepo:  betRepo,
		bonus:    bonus,
		logger:   logger,
	}
}

// RecomputeAllTotals computes totals for all users concurrently, then
// persists the whole batch in one transaction so readers never observe a
// half-updated leaderboard.
func (s *scoringService) RecomputeAllTotals(ctx context.Context) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for recompute: %w", err)
	}
	if len(users) == 0 {
		s.logger.WarnContext(ctx, "recompute requested with no users present")
		return nil
	}

	totals := make([]int, len(users))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)
	for i, user := range users {
		i, user := i, user
		g.Go(func() error {
			total, err := s.UserTotal(gCtx, user)
			if err != nil {
				return fmt.Errorf("failed to compute total for user %d: %w", user.ID, err)
			}
			totals[i] = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		for i, user := range users {
			if err := s.userRepo.UpdatePoints(ctx, exec, user.ID, totals[i]); err != nil {
				return fmt.Errorf("failed to persist total for user %d: %w", user.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user totals recomputed", slog.Int("users", len(users)))
	return nil
}

// UserTotal sums the user's bet points over played matches plus all bonus
// categories. A played match whose bet carries no computed points is an
// upstream integrity fault: it is logged, contributes zero, and never aborts
// the batch for other users.
func (s *scoringService) UserTotal(ctx context.Context, user *models.User) (int, error) {
	bets, err := s.betRepo.ListPlayedByUser(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list played bets: %w", err)
	}

	total := 0
	for _, bet := range bets {
		if bet.Points == nil {
			s.logger.ErrorContext(ctx, "played match has bet without computed points",
				slog.Int("user_id", user.ID),
				slog.Int("bet_id", bet.ID),
				slog.Int("match_id", bet.MatchID),
			)
			continue
		}
		total += *bet.Points
	}

	bonus, err := s.bonus.TotalBonusPoints(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("failed to compute bonus points: %w", err)
	}

	return total + bonus, nil
}
