package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aharonidan/bopdial/models"
)

// SettingRepository is append-only: published ground truth is never updated
// or deleted. Exists on the exact (name, value) pair is the only read the
// bonus evaluator consumes; several values may share one name.
type SettingRepository interface {
	Publish(ctx context.Context, setting *models.Setting) error
	Exists(ctx context.Context, name, value string) (bool, error)
	ListByName(ctx context.Context, name string) ([]*models.Setting, error)
}

type postgresSettingRepository struct {
	db *sql.DB
}

func NewPostgresSettingRepository(db *sql.DB) SettingRepository {
	return &postgresSettingRepository{db: db}
}

func (r *postgresSettingRepository) Publish(ctx context.Context, setting *models.Setting) error {
	query := `
		INSERT INTO settings (name, value)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, setting.Name, setting.Value).
		Scan(&setting.ID, &setting.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to publish setting %q: %w", setting.Name, err)
	}
	return nil
}

func (r *postgresSettingRepository) Exists(ctx context.Context, name, value string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM settings WHERE name = $1 AND value = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check setting (%s, %s): %w", name, value, err)
	}
	return exists, nil
}

func (r *postgresSettingRepository) ListByName(ctx context.Context, name string) ([]*models.Setting, error) {
	query := `
		SELECT id, name, value, created_at
		FROM settings
		WHERE name = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make([]*models.Setting, 0)
	for rows.Next() {
		var setting models.Setting
		if scanErr := rows.Scan(&setting.ID, &setting.Name, &setting.Value, &setting.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", scanErr)
		}
		settings = append(settings, &setting)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}
