package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aharonidan/bopdial/models"
	"github.com/aharonidan/bopdial/repositories"
)

type AccountService interface {
	Create(ctx context.Context, name string) (*models.Account, error)
	GetByID(ctx context.Context, id int) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
}

type accountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) Create(ctx context.Context, name string) (*models.Account, error) {
	if name == "" {
		return nil, ErrAccountRequired
	}
	account := &models.Account{Name: name}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrAccountNameConflict) {
			return nil, ErrAccountNameConflict
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, id int) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
