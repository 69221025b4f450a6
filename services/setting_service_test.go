package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aharonidan/bopdial/models"
)

func newSettingFixture() (SettingService, *fakeSettingRepo) {
	settingRepo := &fakeSettingRepo{}
	teamRepo := &fakeTeamRepo{teams: []*models.Team{
		{ID: 1, Name: "france", GroupName: "A"},
	}}
	return NewSettingService(settingRepo, teamRepo), settingRepo
}

func TestPublishSetting(t *testing.T) {
	settings, settingRepo := newSettingFixture()

	setting, err := settings.Publish(context.Background(), SettingTopScorer, "mbappe")
	assertNoErr(t, err)
	assertInt(t, len(settingRepo.settings), 1)
	if setting.Name != SettingTopScorer || setting.Value != "mbappe" {
		t.Fatalf("got %+v, want (top_scorer, mbappe)", setting)
	}
}

func TestPublishSettingUnknownName(t *testing.T) {
	settings, _ := newSettingFixture()

	_, err := settings.Publish(context.Background(), "wooden_spoon", "france")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}

func TestPublishSettingEmptyValue(t *testing.T) {
	settings, _ := newSettingFixture()

	_, err := settings.Publish(context.Background(), SettingChampion, "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}

func TestPublishTeamValuedSettingChecksTeam(t *testing.T) {
	settings, settingRepo := newSettingFixture()
	ctx := context.Background()

	// Team categories carry a team name; the team must exist.
	_, err := settings.Publish(ctx, SettingBlackHorse, "atlantis")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
	assertInt(t, len(settingRepo.settings), 0)

	_, err = settings.Publish(ctx, SettingBlackHorse, "france")
	assertNoErr(t, err)
	assertInt(t, len(settingRepo.settings), 1)
}

func TestPublishSameNameTwice(t *testing.T) {
	settings, settingRepo := newSettingFixture()
	ctx := context.Background()

	// Several independently correct values may share a name.
	_, err := settings.Publish(ctx, SettingAfterArmyTrip, "thailand")
	assertNoErr(t, err)
	_, err = settings.Publish(ctx, SettingAfterArmyTrip, "india")
	assertNoErr(t, err)
	assertInt(t, len(settingRepo.settings), 2)
}
