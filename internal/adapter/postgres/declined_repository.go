package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// DeclinedRepo implements domain.DeclinedRepository backed by PostgreSQL.
type DeclinedRepo struct {
	pool *pgxpool.Pool
}

func NewDeclinedRepo(pool *pgxpool.Pool) *DeclinedRepo {
	return &DeclinedRepo{pool: pool}
}

func (r *DeclinedRepo) Add(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Decline, error) {
	var decline domain.Decline
	err := r.pool.QueryRow(ctx, `
		INSERT INTO declined (employee_id, job_id)
		VALUES ($1, $2)
		RETURNING id, employee_id, job_id, created_at`,
		employeeID, jobID,
	).Scan(&decline.ID, &decline.EmployeeID, &decline.JobID, &decline.CreatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyDeclined
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add decline record: %w", err)
	}
	return &decline, nil
}

func (r *DeclinedRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, employee_id, job_id, created_at
		FROM declined
		WHERE employee_id = $1
		ORDER BY created_at`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decline records: %w", err)
	}
	defer rows.Close()

	var declines []domain.Decline
	for rows.Next() {
		var decline domain.Decline
		if err := rows.Scan(&decline.ID, &decline.EmployeeID, &decline.JobID, &decline.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decline record: %w", err)
		}
		declines = append(declines, decline)
	}
	return declines, rows.Err()
}
