package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aharonidan/bopdial/events"
	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

type MatchService interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	// RecordResult sets both final scores atomically, exactly once, and
	// publishes MatchResultRecorded for the recompute job.
	RecordResult(ctx context.Context, matchID, scoreA, scoreB int) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	bus       *events.Bus
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, bus *events.Bus, logger *slog.Logger) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		bus:       bus,
		logger:    logger,
	}
}

func (s *matchService) Create(ctx context.Context, match *models.Match) error {
	if match.MatchTime.IsZero() || match.Deadline.IsZero() {
		return ErrMatchTimesRequired
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) RecordResult(ctx context.Context, matchID, scoreA, scoreB int) error {
	if scoreA < 0 || scoreB < 0 {
		return ErrMatchScoresNegative
	}

	err := s.matchRepo.SetResult(ctx, matchID, scoreA, scoreB)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchResultAlreadySet):
			return ErrResultAlreadySet
		}
		return fmt.Errorf("failed to record result for match %d: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.Int("match_id", matchID),
		slog.Int("score_a", scoreA),
		slog.Int("score_b", scoreB),
	)

	s.bus.PublishMatchResult(ctx, events.MatchResultRecorded{
		MatchID: matchID,
		ScoreA:  scoreA,
		ScoreB:  scoreB,
	})
	return nil
}
