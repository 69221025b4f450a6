package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aharonidan/bopdial/models"
	"github.com/lib/pq"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNameConflict = errors.New("account name conflict")
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int) (*models.Account, error)
	GetByName(ctx context.Context, name string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
}

type postgresAccountRepository struct {
	db *sql.DB
}

func NewPostgresAccountRepository(db *sql.DB) AccountRepository {
	return &postgresAccountRepository{db: db}
}

func (r *postgresAccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (name)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, account.Name).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAccountNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresAccountRepository) GetByID(ctx context.Context, id int) (*models.Account, error) {
	query := `SELECT id, name, created_at FROM accounts WHERE id = $1`
	return r.scanAccount(ctx, query, id)
}

func (r *postgresAccountRepository) GetByName(ctx context.Context, name string) (*models.Account, error) {
	query := `SELECT id, name, created_at FROM accounts WHERE name = $1`
	return r.scanAccount(ctx, query, name)
}

func (r *postgresAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT id, name, created_at FROM accounts ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		var account models.Account
		if scanErr := rows.Scan(&account.ID, &account.Name, &account.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", scanErr)
		}
		accounts = append(accounts, &account)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *postgresAccountRepository) scanAccount(ctx context.Context, query string, args ...interface{}) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&account.ID, &account.Name, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
