package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

// Setting names under which the administrator publishes tournament-wide
// ground truth, one record per correct value (a name may have several).
const (
	SettingBlackHorse    = "black_horse"
	SettingGreyHorse     = "grey_horse"
	SettingChampion      = "champion"
	SettingTopScorer     = "top_scorer"
	SettingAfterArmyTrip = "after_army_trip"
)

const (
	blackHorsePoints    = 8
	greyHorsePoints     = 8
	championPoints      = 9
	topScorerPoints     = 8
	afterArmyTripPoints = 5
)

// BonusService grades the five special picks against published Settings.
// Each category is all-or-nothing: the fixed value when the user's pick is
// present and an exact (name, value) pair exists, zero otherwise. No correct
// outcome is ever hardcoded here; the Setting store is the only truth.
type BonusService interface {
	BlackHorsePoints(ctx context.Context, user *models.User) (int, error)
	GreyHorsePoints(ctx context.Context, user *models.User) (int, error)
	ChampionPoints(ctx context.Context, user *models.User) (int, error)
	TopScorerPoints(ctx context.Context, user *models.User) (int, error)
	AfterArmyTripPoints(ctx context.Context, user *models.User) (int, error)
	TotalBonusPoints(ctx context.Context, user *models.User) (int, error)
}

type bonusService struct {
	settingRepo repositories.SettingRepository
	teamRepo    repositories.TeamRepository
}

func NewBonusService(settingRepo repositories.SettingRepository, teamRepo repositories.TeamRepository) BonusService {
	return &bonusService{
		settingRepo: settingRepo,
		teamRepo:    teamRepo,
	}
}

func (s *bonusService) BlackHorsePoints(ctx context.Context, user *models.User) (int, error) {
	return s.teamPickPoints(ctx, SettingBlackHorse, user.BlackHorseID, blackHorsePoints)
}

func (s *bonusService) GreyHorsePoints(ctx context.Context, user *models.User) (int, error) {
	return s.teamPickPoints(ctx, SettingGreyHorse, user.GreyHorseID, greyHorsePoints)
}

func (s *bonusService) ChampionPoints(ctx context.Context, user *models.User) (int, error) {
	return s.teamPickPoints(ctx, SettingChampion, user.ChampionID, championPoints)
}

func (s *bonusService) TopScorerPoints(ctx context.Context, user *models.User) (int, error) {
	return s.valuePickPoints(ctx, SettingTopScorer, user.TopScorer, topScorerPoints)
}

func (s *bonusService) AfterArmyTripPoints(ctx context.Context, user *models.User) (int, error) {
	return s.valuePickPoints(ctx, SettingAfterArmyTrip, user.AfterArmyTrip, afterArmyTripPoints)
}

func (s *bonusService) TotalBonusPoints(ctx context.Context, user *models.User) (int, error) {
	total := 0
	for _, points := range []func(context.Context, *models.User) (int, error){
		s.BlackHorsePoints,
		s.GreyHorsePoints,
		s.ChampionPoints,
		s.TopScorerPoints,
		s.AfterArmyTripPoints,
	} {
		p, err := points(ctx, user)
		if err != nil {
			return 0, err
		}
		total += p
	}
	return total, nil
}

// teamPickPoints grades a pick stored as a team reference: the Setting value
// holds the team's name, so the reference is resolved first.
func (s *bonusService) teamPickPoints(ctx context.Context, name string, teamID *int, value int) (int, error) {
	if teamID == nil {
		return 0, nil
	}
	team, err := s.teamRepo.GetByID(ctx, *teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve %s pick: %w", name, err)
	}
	// A placeholder slot is not a real team and never scores.
	if team.Placeholder() {
		return 0, nil
	}
	return s.valuePickPoints(ctx, name, &team.Name, value)
}

func (s *bonusService) valuePickPoints(ctx context.Context, name string, pick *string, value int) (int, error) {
	if pick == nil || *pick == "" {
		return 0, nil
	}
	ok, err := s.settingRepo.Exists(ctx, name, *pick)
	if err != nil {
		return 0, fmt.Errorf("failed to check setting %s: %w", name, err)
	}
	if !ok {
		return 0, nil
	}
	return value, nil
}
