package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aharonidan/bopdial/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchTeamInvalid      = errors.New("match team conflict or invalid")
	ErrMatchResultAlreadySet = errors.New("match result already set")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	// EarliestScheduled returns the first match of the tournament by an
	// explicit chronological sort. It anchors the tournament-wide
	// special-pick lock, so ordering must never fall back to insert order.
	EarliestScheduled(ctx context.Context) (*models.Match, error)
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*models.Match, error)
	// SetResult stores both final scores atomically. A result can be set
	// exactly once; a second attempt fails with ErrMatchResultAlreadySet.
	SetResult(ctx context.Context, id int, scoreA, scoreB int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	m.id, m.team_a_id, m.team_b_id, m.score_a, m.score_b,
	m.match_time, m.deadline, m.lock_override, m.is_playoff, m.created_at,
	ta.id, ta.name, ta.group_name,
	tb.id, tb.name, tb.group_name`

const matchJoins = `
	FROM matches m
	JOIN teams ta ON m.team_a_id = ta.id
	JOIN teams tb ON m.team_b_id = tb.id`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (team_a_id, team_b_id, match_time, deadline, lock_override, is_playoff)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TeamAID,
		match.TeamBID,
		match.MatchTime,
		match.Deadline,
		match.LockOverride,
		match.IsPlayoff,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + `
	WHERE m.id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + `
	ORDER BY m.match_time ASC, m.id ASC`
	return r.queryMatches(ctx, query)
}

func (r *postgresMatchRepository) EarliestScheduled(ctx context.Context) (*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + `
	ORDER BY m.match_time ASC, m.id ASC
	LIMIT 1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan earliest match: %w", err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + `
	WHERE m.match_time >= $1 AND m.match_time < $2
	ORDER BY m.match_time ASC, m.id ASC`
	return r.queryMatches(ctx, query, from, to)
}

func (r *postgresMatchRepository) SetResult(ctx context.Context, id int, scoreA, scoreB int) error {
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2
		WHERE id = $3 AND score_a IS NULL AND score_b IS NULL`

	result, err := r.db.ExecContext(ctx, query, scoreA, scoreB, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		// Distinguish "no such match" from "result already recorded".
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrMatchResultAlreadySet
	}
	return nil
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var match models.Match
	var teamA, teamB models.Team

	err := row.Scan(
		&match.ID,
		&match.TeamAID,
		&match.TeamBID,
		&match.ScoreA,
		&match.ScoreB,
		&match.MatchTime,
		&match.Deadline,
		&match.LockOverride,
		&match.IsPlayoff,
		&match.CreatedAt,
		&teamA.ID,
		&teamA.Name,
		&teamA.GroupName,
		&teamB.ID,
		&teamB.Name,
		&teamB.GroupName,
	)
	if err != nil {
		return nil, err
	}

	match.TeamA = &teamA
	match.TeamB = &teamB
	return &match, nil
}
