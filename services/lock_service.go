package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

// LockService is the single authority on bet mutability. A match is locked
// when its override flag is set or the instant is strictly past its deadline;
// the tournament-wide special-pick lock is the lock state of the anchor
// match, the earliest-scheduled match of the tournament.
type LockService interface {
	IsLocked(match *models.Match, now time.Time) bool
	IsEditable(match *models.Match, now time.Time) bool
	SpecialsLocked(ctx context.Context) (bool, error)
}

type lockService struct {
	matchRepo repositories.MatchRepository
	clock     Clock
}

func NewLockService(matchRepo repositories.MatchRepository, clock Clock) LockService {
	return &lockService{
		matchRepo: matchRepo,
		clock:     clock,
	}
}

func (s *lockService) IsLocked(match *models.Match, now time.Time) bool {
	if match.LockOverride {
		return true
	}
	return now.After(match.Deadline)
}

func (s *lockService) IsEditable(match *models.Match, now time.Time) bool {
	return !s.IsLocked(match, now)
}

// SpecialsLocked reports whether the long-horizon picks (horses, champion,
// top scorer, after-army-trip) are frozen. The anchor is selected by an
// explicit chronological sort; with no matches scheduled yet the picks stay
// open.
func (s *lockService) SpecialsLocked(ctx context.Context) (bool, error) {
	anchor, err := s.matchRepo.EarliestScheduled(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load anchor match: %w", err)
	}
	return s.IsLocked(anchor, s.clock.Now()), nil
}
