package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
	"github.com/aharonidan/bopdial/utils"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountName string `json:"account_name"`
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
}

func NewAuthService(userRepo repositories.UserRepository, accountRepo repositories.AccountRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

// Register creates a player inside an existing pool; users join a pool by
// its name, pools themselves are created by an administrator.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.AccountName == "" {
		return nil, ErrAccountRequired
	}

	account, err := s.accountRepo.GetByName(ctx, input.AccountName)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to look up account %q: %w", input.AccountName, err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		AccountID:    account.ID,
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hash,
		Role:         models.RolePlayer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Account = account
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}
