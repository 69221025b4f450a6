package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

// BetService owns bet mutation. A bet belongs to exactly one (user, match)
// pair and may change only while the lock gate holds the match open.
type BetService interface {
	Place(ctx context.Context, userID, matchID, predictedA, predictedB int) (*models.Bet, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Bet, error)
}

type betService struct {
	betRepo   repositories.BetRepository
	matchRepo repositories.MatchRepository
	lock      LockService
	clock     Clock
}

func NewBetService(
	betRepo repositories.BetRepository,
	matchRepo repositories.MatchRepository,
	lock LockService,
	clock Clock,
) BetService {
	return &betService{
		betRepo:   betRepo,
		matchRepo: matchRepo,
		lock:      lock,
		clock:     clock,
	}
}

// Place creates the user's bet on a match, or updates the prediction when
// one already exists. Either way the match must still be editable.
func (s *betService) Place(ctx context.Context, userID, matchID, predictedA, predictedB int) (*models.Bet, error) {
	if predictedA < 0 || predictedB < 0 {
		return nil, ErrBetPredictedNegative
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	if s.lock.IsLocked(match, s.clock.Now()) {
		return nil, ErrMatchLocked
	}

	existing, err := s.betRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil && !errors.Is(err, repositories.ErrBetNotFound) {
		return nil, fmt.Errorf("failed to look up existing bet: %w", err)
	}

	if existing != nil {
		existing.PredictedA = predictedA
		existing.PredictedB = predictedB
		if err := s.betRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update bet %d: %w", existing.ID, err)
		}
		return existing, nil
	}

	bet := &models.Bet{
		UserID:     userID,
		MatchID:    matchID,
		PredictedA: predictedA,
		PredictedB: predictedB,
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		switch {
		case errors.Is(err, repositories.ErrBetConflict):
			return nil, ErrBetAlreadyPlaced
		case errors.Is(err, repositories.ErrBetOwnerInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}
	bet.Match = match
	return bet, nil
}

func (s *betService) ListByUser(ctx context.Context, userID int) ([]*models.Bet, error) {
	bets, err := s.betRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	return bets, nil
}
