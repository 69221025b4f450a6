package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
	"github.com/aharonidan/bopdial/utils"
)

type SpecialPicksInput struct {
	BlackHorseID  *int    `json:"black_horse_id"`
	GreyHorseID   *int    `json:"grey_horse_id"`
	ChampionID    *int    `json:"champion_id"`
	TopScorer     *string `json:"top_scorer"`
	AfterArmyTrip *string `json:"after_army_trip"`
}

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	ListByAccount(ctx context.Context, accountID int) ([]*models.User, error)
	// UpdateSpecialPicks applies the long-horizon picks. Once the specials
	// lock has closed, any actual change is rejected; resubmitting the
	// stored values is allowed.
	UpdateSpecialPicks(ctx context.Context, userID int, input SpecialPicksInput) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	lock     LockService
}

func NewUserService(userRepo repositories.UserRepository, lock LockService) UserService {
	return &userService{
		userRepo: userRepo,
		lock:     lock,
	}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

// ListByAccount returns the pool's standings: users ordered by their cached
// total, highest first. A user without a recomputed total ranks as zero.
func (s *userService) ListByAccount(ctx context.Context, accountID int) ([]*models.User, error) {
	users, err := s.userRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for account %d: %w", accountID, err)
	}
	for _, user := range users {
		user.PasswordHash = ""
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].PointsOrZero() > users[j].PointsOrZero()
	})
	return users, nil
}

func (s *userService) UpdateSpecialPicks(ctx context.Context, userID int, input SpecialPicksInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	// The top scorer is stored as a normalized token so Setting matching
	// stays an exact string comparison ("Cristiano Ronaldo" and
	// "cristiano_ronaldo" are the same pick).
	if input.TopScorer != nil {
		normalized := utils.Parameterize(*input.TopScorer)
		input.TopScorer = &normalized
	}

	if changed := picksChanged(user, input); changed {
		locked, err := s.lock.SpecialsLocked(ctx)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, ErrSpecialPicksLocked
		}
	}

	user.BlackHorseID = input.BlackHorseID
	user.GreyHorseID = input.GreyHorseID
	user.ChampionID = input.ChampionID
	user.TopScorer = input.TopScorer
	user.AfterArmyTrip = input.AfterArmyTrip

	if err := s.userRepo.UpdateSpecialPicks(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update special picks for user %d: %w", userID, err)
	}

	user.PasswordHash = ""
	return user, nil
}

func picksChanged(user *models.User, input SpecialPicksInput) bool {
	return !intPtrEqual(user.BlackHorseID, input.BlackHorseID) ||
		!intPtrEqual(user.GreyHorseID, input.GreyHorseID) ||
		!intPtrEqual(user.ChampionID, input.ChampionID) ||
		!stringPtrEqual(user.TopScorer, input.TopScorer) ||
		!stringPtrEqual(user.AfterArmyTrip, input.AfterArmyTrip)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
