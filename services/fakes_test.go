package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func timeAt(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertInt(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

// fakeClock always reports the same instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeTxRunner hands the callback a nil executor; the fake repositories
// ignore it.
type fakeTxRunner struct {
	runs int
}

func (r *fakeTxRunner) RunInTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	r.runs++
	return fn(nil)
}

type fakeMatchRepo struct {
	matches []*models.Match
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	match.ID = len(r.matches) + 1
	r.matches = append(r.matches, match)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	for _, m := range r.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) List(_ context.Context) ([]*models.Match, error) {
	return r.matches, nil
}

func (r *fakeMatchRepo) EarliestScheduled(_ context.Context) (*models.Match, error) {
	if len(r.matches) == 0 {
		return nil, repositories.ErrMatchNotFound
	}
	sorted := make([]*models.Match, len(r.matches))
	copy(sorted, r.matches)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].MatchTime.Equal(sorted[j].MatchTime) {
			return sorted[i].MatchTime.Before(sorted[j].MatchTime)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted[0], nil
}

func (r *fakeMatchRepo) ListScheduledBetween(_ context.Context, from, to time.Time) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range r.matches {
		if !m.MatchTime.Before(from) && m.MatchTime.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) SetResult(ctx context.Context, id int, scoreA, scoreB int) error {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if match.Played() {
		return repositories.ErrMatchResultAlreadySet
	}
	match.ScoreA = &scoreA
	match.ScoreB = &scoreB
	return nil
}

type fakeBetRepo struct {
	bets []*models.Bet
}

func (r *fakeBetRepo) Create(_ context.Context, bet *models.Bet) error {
	for _, b := range r.bets {
		if b.UserID == bet.UserID && b.MatchID == bet.MatchID {
			return repositories.ErrBetConflict
		}
	}
	bet.ID = len(r.bets) + 1
	r.bets = append(r.bets, bet)
	return nil
}

func (r *fakeBetRepo) Update(_ context.Context, bet *models.Bet) error {
	for i, b := range r.bets {
		if b.ID == bet.ID {
			r.bets[i] = bet
			return nil
		}
	}
	return repositories.ErrBetNotFound
}

func (r *fakeBetRepo) GetByUserAndMatch(_ context.Context, userID, matchID int) (*models.Bet, error) {
	for _, b := range r.bets {
		if b.UserID == userID && b.MatchID == matchID {
			return b, nil
		}
	}
	return nil, repositories.ErrBetNotFound
}

func (r *fakeBetRepo) ListByUser(_ context.Context, userID int) ([]*models.Bet, error) {
	var out []*models.Bet
	for _, b := range r.bets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBetRepo) ListPlayedByUser(_ context.Context, userID int) ([]*models.Bet, error) {
	var out []*models.Bet
	for _, b := range r.bets {
		if b.UserID == userID && b.Match != nil && b.Match.Played() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBetRepo) SumPointsForUserBetween(_ context.Context, userID int, from, to time.Time) (int, error) {
	sum := 0
	for _, b := range r.bets {
		if b.UserID != userID || b.Match == nil || !b.Match.Played() {
			continue
		}
		if b.Match.MatchTime.Before(from) || !b.Match.MatchTime.Before(to) {
			continue
		}
		sum += b.PointsOrZero()
	}
	return sum, nil
}

type fakeUserRepo struct {
	users        []*models.User
	savedPoints  map[int]int
	picksUpdates int
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = len(r.users) + 1
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*models.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) ListByAccount(_ context.Context, accountID int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.AccountID == accountID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateSpecialPicks(_ context.Context, _ *models.User) error {
	r.picksUpdates++
	return nil
}

func (r *fakeUserRepo) UpdatePoints(_ context.Context, _ repositories.SQLExecutor, userID int, points int) error {
	if r.savedPoints == nil {
		r.savedPoints = make(map[int]int)
	}
	r.savedPoints[userID] = points
	return nil
}

type fakeSettingRepo struct {
	settings []*models.Setting
}

func (r *fakeSettingRepo) Publish(_ context.Context, setting *models.Setting) error {
	setting.ID = len(r.settings) + 1
	r.settings = append(r.settings, setting)
	return nil
}

func (r *fakeSettingRepo) Exists(_ context.Context, name, value string) (bool, error) {
	for _, s := range r.settings {
		if s.Name == name && s.Value == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSettingRepo) ListByName(_ context.Context, name string) ([]*models.Setting, error) {
	var out []*models.Setting
	for _, s := range r.settings {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTeamRepo struct {
	teams []*models.Team
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = len(r.teams) + 1
	r.teams = append(r.teams, team)
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) GetByName(_ context.Context, name string) (*models.Team, error) {
	for _, t := range r.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) List(_ context.Context) ([]*models.Team, error) {
	return r.teams, nil
}

func (r *fakeTeamRepo) UpdateFlagKey(ctx context.Context, id int, flagKey *string) error {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	team.FlagKey = flagKey
	return nil
}
