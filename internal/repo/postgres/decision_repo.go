package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

// DecisionRepo is an append-only log of committed swipes. Rows are never
// updated or deleted; a deck reset starts a new run, it does not erase
// history.
type DecisionRepo struct {
	pool *pgxpool.Pool
}

func NewDecisionRepo(pool *pgxpool.Pool) *DecisionRepo {
	return &DecisionRepo{pool: pool}
}

func (r *DecisionRepo) Record(ctx context.Context, userID int64, decision model.SwipeDecision) error {
	if r.pool == nil {
		return nil
	}
	if userID <= 0 || decision.ProfileID == "" || !decision.Action.Valid() {
		return fmt.Errorf("invalid swipe decision payload")
	}

	const query = `
INSERT INTO swipe_decisions (user_id, profile_id, action, created_at)
VALUES ($1, $2, $3, $4)
`

	if _, err := r.pool.Exec(ctx, query, userID, decision.ProfileID, string(decision.Action), decision.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("record swipe decision: %w", err)
	}

	return nil
}

func (r *DecisionRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]model.SwipeDecision, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT profile_id, action, created_at
FROM swipe_decisions
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query swipe decisions: %w", err)
	}
	defer rows.Close()

	decisions := make([]model.SwipeDecision, 0, limit)
	for rows.Next() {
		var d model.SwipeDecision
		var action string
		if err := rows.Scan(&d.ProfileID, &action, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan swipe decision: %w", err)
		}
		d.Action = enums.Decision(action)
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swipe decisions: %w", err)
	}

	return decisions, nil
}
