package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ImpressionRepo implements domain.ImpressionRepository backed by PostgreSQL.
type ImpressionRepo struct {
	pool *pgxpool.Pool
}

func NewImpressionRepo(pool *pgxpool.Pool) *ImpressionRepo {
	return &ImpressionRepo{pool: pool}
}

// RecordOnce relies on the unique (employee_id, job_id) constraint
// instead of a check-then-insert, so concurrent recommendation requests
// for the same employee cannot create duplicates.
func (r *ImpressionRepo) RecordOnce(ctx context.Context, employeeID, jobID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO impressions (employee_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT (employee_id, job_id) DO NOTHING`,
		employeeID, jobID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record impression: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
