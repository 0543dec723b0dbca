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

// jobColumns must match the Scan order in scanJob.
const jobColumns = `id, employer_id, title, description, skill_1, skill_2, skill_3, skill_4, skill_5, pwd_friendly, company_name, location, job_type, industry, experience, min_salary, max_salary, created_at, updated_at`

// JobRepo implements domain.JobRepository backed by PostgreSQL.
type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description,
		&j.Skills[0], &j.Skills[1], &j.Skills[2], &j.Skills[3], &j.Skills[4],
		&j.PWDFriendly, &j.CompanyName, &j.Location, &j.JobType, &j.Industry,
		&j.Experience, &j.MinSalary, &j.MaxSalary, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *JobRepo) Create(ctx context.Context, job *domain.Job) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (employer_id, title, description, skill_1, skill_2, skill_3, skill_4, skill_5, pwd_friendly, company_name, location, job_type, industry, experience, min_salary, max_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+jobColumns,
		job.EmployerID, job.Title, job.Description,
		job.Skills[0], job.Skills[1], job.Skills[2], job.Skills[3], job.Skills[4],
		job.PWDFriendly, job.CompanyName, job.Location, job.JobType, job.Industry,
		job.Experience, job.MinSalary, job.MaxSalary,
	)

	created, err := scanJob(row)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	*job = *created
	return nil
}

func (r *JobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return job, nil
}

func (r *JobRepo) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at`, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by employer: %w", err)
	}
	return collectJobs(rows)
}

func (r *JobRepo) ListCandidates(ctx context.Context, policy domain.CandidatePolicy) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at`
	if policy == domain.PolicyPWDFriendlyOnly {
		query = `SELECT ` + jobColumns + ` FROM jobs WHERE pwd_friendly ORDER BY created_at`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate jobs: %w", err)
	}
	return collectJobs(rows)
}

func (r *JobRepo) Update(ctx context.Context, job *domain.Job) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET title = $1, description = $2,
		    skill_1 = $3, skill_2 = $4, skill_3 = $5, skill_4 = $6, skill_5 = $7,
		    pwd_friendly = $8, company_name = $9, location = $10, job_type = $11,
		    industry = $12, experience = $13, min_salary = $14, max_salary = $15,
		    updated_at = NOW()
		WHERE id = $16`,
		job.Title, job.Description,
		job.Skills[0], job.Skills[1], job.Skills[2], job.Skills[3], job.Skills[4],
		job.PWDFriendly, job.CompanyName, job.Location, job.JobType,
		job.Industry, job.Experience, job.MinSalary, job.MaxSalary,
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// Delete removes the job together with its dependent rows. The schema
// has plain foreign keys without ON DELETE CASCADE, so the cascade is
// spelled out here inside one transaction.
func (r *JobRepo) Delete(ctx context.Context, jobID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, stmt := range []string{
		`DELETE FROM applications WHERE job_id = $1`,
		`DELETE FROM impressions WHERE job_id = $1`,
		`DELETE FROM declined WHERE job_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, jobID); err != nil {
			return fmt.Errorf("failed to delete job dependents: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
