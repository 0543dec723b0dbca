package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// applicationColumns must match the Scan order in scanApplication.
const applicationColumns = `id, employee_id, job_id, status, profile_snapshot, created_at, updated_at`

// ApplicationRepo implements domain.ApplicationRepository backed by PostgreSQL.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.JobID, &a.Status, &a.ProfileSnapshot,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, *application)
	}
	return applications, rows.Err()
}

func (r *ApplicationRepo) Create(ctx context.Context, application *domain.Application) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO applications (employee_id, job_id, status, profile_snapshot)
		VALUES ($1, $2, $3, $4)
		RETURNING `+applicationColumns,
		application.EmployeeID, application.JobID, domain.StatusUnderReview, application.ProfileSnapshot,
	)

	created, err := scanApplication(row)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateApplication
	}
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	*application = *created
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID uuid.UUID) (*domain.Application, error) {
	application, err := scanApplication(r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	return application, nil
}

func (r *ApplicationRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE employee_id = $1 ORDER BY created_at`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by employee: %w", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	application, err := scanApplication(r.pool.QueryRow(ctx, `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+applicationColumns,
		status, applicationID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return application, nil
}

// Accept marks the application accepted and rejects the employee's other
// applications in one transaction. The sibling reject runs first so the
// partial unique index on accepted rows never sees two accepted
// applications for the employee, even transiently.
func (r *ApplicationRepo) Accept(ctx context.Context, applicationID uuid.UUID) (*domain.Application, int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var employeeID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT employee_id FROM applications WHERE id = $1 FOR UPDATE`, applicationID).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to lock application: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE employee_id = $2 AND id <> $3 AND status <> $1`,
		domain.StatusRejected, employeeID, applicationID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to reject sibling applications: %w", err)
	}
	rejected := tag.RowsAffected()

	application, err := scanApplication(tx.QueryRow(ctx, `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+applicationColumns,
		domain.StatusAccepted, applicationID,
	))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to accept application: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return application, rejected, nil
}

func (r *ApplicationRepo) CountAcceptedByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE employee_id = $1 AND status = $2`,
		employeeID, domain.StatusAccepted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accepted applications: %w", err)
	}
	return count, nil
}
