package services

import (
	"context"
	"fmt"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

// OutcomeCounts tallies named per-bet outcome categories across a user's
// history. Every counter except LateUnderLock ranges over played matches
// only; LateUnderLock ranges over all bets whose match is currently locked,
// because boundary submission is about proximity to the deadline, not about
// whether the match has since concluded.
type OutcomeCounts struct {
	ExactHits     int `json:"exact_hits"`
	WorstMisses   int `json:"worst_misses"`
	LateUnderLock int `json:"late_under_lock"`
	LateHits      int `json:"late_hits"`
	DiffNoDraw    int `json:"diff_no_draw"`
	DirectionOnly int `json:"direction_only"`
}

type StatsService interface {
	CountOutcomes(ctx context.Context, userID int) (OutcomeCounts, error)
}

type statsService struct {
	betRepo repositories.BetRepository
	lock    LockService
	clock   Clock
}

func NewStatsService(betRepo repositories.BetRepository, lock LockService, clock Clock) StatsService {
	return &statsService{
		betRepo: betRepo,
		lock:    lock,
		clock:   clock,
	}
}

func (s *statsService) CountOutcomes(ctx context.Context, userID int) (OutcomeCounts, error) {
	bets, err := s.betRepo.ListByUser(ctx, userID)
	if err != nil {
		return OutcomeCounts{}, fmt.Errorf("failed to list bets for user %d: %w", userID, err)
	}

	counts := OutcomeCounts{}
	now := s.clock.Now()

	for _, bet := range bets {
		if bet.Late && s.lock.IsLocked(bet.Match, now) {
			counts.LateUnderLock++
		}
		if !bet.Match.Played() {
			continue
		}
		if bet.Exact {
			counts.ExactHits++
		}
		if bet.WorstMiss {
			counts.WorstMisses++
		}
		if bet.Late && (bet.Exact || bet.Direction) {
			counts.LateHits++
		}
		if bet.GoalDifference && !bet.PredictedDraw() {
			counts.DiffNoDraw++
		}
		if countsDirectionOnly(bet) {
			counts.DirectionOnly++
		}
	}
	return counts, nil
}

// countsDirectionOnly credits a correct outcome call whenever the goal
// difference was not the thing that matched: either the difference missed
// outright, or the bet predicted a draw (where a matching difference is the
// same statement as the outcome).
func countsDirectionOnly(bet *models.Bet) bool {
	if !bet.Direction {
		return false
	}
	return !bet.GoalDifference || bet.PredictedDraw()
}
