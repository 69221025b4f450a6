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
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailConflict  = errors.New("user email conflict")
	ErrUserAccountInvalid = errors.New("user account conflict or invalid")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	ListByAccount(ctx context.Context, accountID int) ([]*models.User, error)
	UpdateSpecialPicks(ctx context.Context, user *models.User) error
	// UpdatePoints runs on the given executor so the recompute batch can
	// persist every total inside one transaction.
	UpdatePoints(ctx context.Context, exec SQLExecutor, userID int, points int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `
	id, account_id, name, email, password_hash, role,
	black_horse_id, grey_horse_id, champion_id, top_scorer, after_army_trip,
	points, created_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (account_id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.AccountID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "users_email_key" {
					return ErrUserEmailConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "users_account_id_fkey" {
					return ErrUserAccountInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *postgresUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY id ASC`
	return r.queryUsers(ctx, query)
}

func (r *postgresUserRepository) ListByAccount(ctx context.Context, accountID int) ([]*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE account_id = $1 ORDER BY id ASC`
	return r.queryUsers(ctx, query, accountID)
}

func (r *postgresUserRepository) UpdateSpecialPicks(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			black_horse_id = $1,
			grey_horse_id = $2,
			champion_id = $3,
			top_scorer = $4,
			after_army_trip = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		user.BlackHorseID,
		user.GreyHorseID,
		user.ChampionID,
		user.TopScorer,
		user.AfterArmyTrip,
		user.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrUserAccountInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, userID int, points int) error {
	query := `UPDATE users SET points = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, points, userID)
	if err != nil {
		return fmt.Errorf("UpdatePoints: failed to execute query for user %d: %w", userID, err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, scanErr := scanUserRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", scanErr)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user, err := scanUserRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUserRow(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.AccountID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.BlackHorseID,
		&user.GreyHorseID,
		&user.ChampionID,
		&user.TopScorer,
		&user.AfterArmyTrip,
		&user.Points,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
