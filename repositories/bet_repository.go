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
	ErrBetNotFound     = errors.New("bet not found")
	ErrBetConflict     = errors.New("bet already exists for this user and match")
	ErrBetOwnerInvalid = errors.New("bet user or match conflict or invalid")
)

type BetRepository interface {
	Create(ctx context.Context, bet *models.Bet) error
	Update(ctx context.Context, bet *models.Bet) error
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Bet, error)
	// ListByUser returns every bet of the user with its match attached.
	ListByUser(ctx context.Context, userID int) ([]*models.Bet, error)
	// ListPlayedByUser restricts to bets whose match has a recorded result.
	ListPlayedByUser(ctx context.Context, userID int) ([]*models.Bet, error)
	// SumPointsForUserBetween sums awarded points over the user's bets on
	// played matches scheduled in [from, to).
	SumPointsForUserBetween(ctx context.Context, userID int, from, to time.Time) (int, error)
}

type postgresBetRepository struct {
	db *sql.DB
}

func NewPostgresBetRepository(db *sql.DB) BetRepository {
	return &postgresBetRepository{db: db}
}

const betColumns = `
	b.id, b.user_id, b.match_id, b.predicted_a, b.predicted_b, b.points,
	b.exact, b.worst_miss, b.late, b.goal_difference, b.direction, b.created_at,
	m.id, m.team_a_id, m.team_b_id, m.score_a, m.score_b,
	m.match_time, m.deadline, m.lock_override, m.is_playoff, m.created_at`

const betJoins = `
	FROM bets b
	JOIN matches m ON b.match_id = m.id`

func (r *postgresBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (user_id, match_id, predicted_a, predicted_b)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		bet.UserID,
		bet.MatchID,
		bet.PredictedA,
		bet.PredictedB,
	).Scan(&bet.ID, &bet.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "bets_user_id_match_id_key" {
					return ErrBetConflict
				}
			case "23503": // foreign_key_violation
				return ErrBetOwnerInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresBetRepository) Update(ctx context.Context, bet *models.Bet) error {
	query := `
		UPDATE bets
		SET predicted_a = $1, predicted_b = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, bet.PredictedA, bet.PredictedB, bet.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBetNotFound)
}

func (r *postgresBetRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Bet, error) {
	query := `SELECT` + betColumns + betJoins + `
	WHERE b.user_id = $1 AND b.match_id = $2`

	bet, err := scanBet(r.db.QueryRowContext(ctx, query, userID, matchID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBetNotFound
		}
		return nil, fmt.Errorf("failed to scan bet for user %d match %d: %w", userID, matchID, err)
	}
	return bet, nil
}

func (r *postgresBetRepository) ListByUser(ctx context.Context, userID int) ([]*models.Bet, error) {
	query := `SELECT` + betColumns + betJoins + `
	WHERE b.user_id = $1
	ORDER BY m.match_time ASC, b.id ASC`
	return r.queryBets(ctx, query, userID)
}

func (r *postgresBetRepository) ListPlayedByUser(ctx context.Context, userID int) ([]*models.Bet, error) {
	query := `SELECT` + betColumns + betJoins + `
	WHERE b.user_id = $1 AND m.score_a IS NOT NULL AND m.score_b IS NOT NULL
	ORDER BY m.match_time ASC, b.id ASC`
	return r.queryBets(ctx, query, userID)
}

func (r *postgresBetRepository) SumPointsForUserBetween(ctx context.Context, userID int, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(b.points), 0)
		FROM bets b
		JOIN matches m ON b.match_id = m.id
		WHERE b.user_id = $1
		  AND m.score_a IS NOT NULL AND m.score_b IS NOT NULL
		  AND m.match_time >= $2 AND m.match_time < $3`

	var sum int
	err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points for user %d: %w", userID, err)
	}
	return sum, nil
}

func (r *postgresBetRepository) queryBets(ctx context.Context, query string, args ...interface{}) ([]*models.Bet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	bets := make([]*models.Bet, 0)
	for rows.Next() {
		bet, scanErr := scanBet(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan bet row: %w", scanErr)
		}
		bets = append(bets, bet)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bets, nil
}

func scanBet(row rowScanner) (*models.Bet, error) {
	var bet models.Bet
	var match models.Match

	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.MatchID,
		&bet.PredictedA,
		&bet.PredictedB,
		&bet.Points,
		&bet.Exact,
		&bet.WorstMiss,
		&bet.Late,
		&bet.GoalDifference,
		&bet.Direction,
		&bet.CreatedAt,
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
	)
	if err != nil {
		return nil, err
	}

	bet.Match = &match
	return &bet, nil
}
