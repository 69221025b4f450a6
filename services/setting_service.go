package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

var knownSettingNames = map[string]bool{
	SettingBlackHorse:    true,
	SettingGreyHorse:     true,
	SettingChampion:      true,
	SettingTopScorer:     true,
	SettingAfterArmyTrip: true,
}

// Categories whose value is a team name and must reference an existing team.
var teamValuedSettings = map[string]bool{
	SettingBlackHorse: true,
	SettingGreyHorse:  true,
	SettingChampion:   true,
}

// SettingService publishes administrator-announced ground truth. Records are
// append-only; publishing the same name twice is how multiple independently
// correct values are expressed.
type SettingService interface {
	Publish(ctx context.Context, name, value string) (*models.Setting, error)
	ListByName(ctx context.Context, name string) ([]*models.Setting, error)
}

type settingService struct {
	settingRepo repositories.SettingRepository
	teamRepo    repositories.TeamRepository
}

func NewSettingService(settingRepo repositories.SettingRepository, teamRepo repositories.TeamRepository) SettingService {
	return &settingService{
		settingRepo: settingRepo,
		teamRepo:    teamRepo,
	}
}

func (s *settingService) Publish(ctx context.Context, name, value string) (*models.Setting, error) {
	if !knownSettingNames[name] {
		return nil, fmt.Errorf("%w: unknown setting name %q", ErrValidationFailed, name)
	}
	if value == "" {
		return nil, fmt.Errorf("%w: setting value is required", ErrValidationFailed)
	}
	if teamValuedSettings[name] {
		if _, err := s.teamRepo.GetByName(ctx, value); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, fmt.Errorf("%w: no team named %q", ErrValidationFailed, value)
			}
			return nil, fmt.Errorf("failed to look up team %q: %w", value, err)
		}
	}

	setting := &models.Setting{Name: name, Value: value}
	if err := s.settingRepo.Publish(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *settingService) ListByName(ctx context.Context, name string) ([]*models.Setting, error) {
	settings, err := s.settingRepo.ListByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}
