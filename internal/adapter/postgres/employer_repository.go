package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// employerColumns must match the Scan order in scanEmployer.
const employerColumns = `user_id, email, password_hash, company_name, company_level, website_url, company_type, industry, admin_name, logo_url, description, location, tags, created_at`

// EmployerRepo implements domain.EmployerRepository backed by PostgreSQL.
type EmployerRepo struct {
	pool *pgxpool.Pool
}

func NewEmployerRepo(pool *pgxpool.Pool) *EmployerRepo {
	return &EmployerRepo{pool: pool}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanEmployer(row pgx.Row) (*domain.Employer, error) {
	var e domain.Employer
	err := row.Scan(
		&e.UserID, &e.Email, &e.PasswordHash, &e.CompanyName, &e.CompanyLevel,
		&e.WebsiteURL, &e.CompanyType, &e.Industry, &e.AdminName, &e.LogoURL,
		&e.Description, &e.Location, &e.Tags, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployerRepo) Create(ctx context.Context, employer *domain.Employer) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employers (email, password_hash, company_name, company_level, website_url, company_type, industry, admin_name, logo_url, description, location, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+employerColumns,
		employer.Email, employer.PasswordHash, employer.CompanyName, employer.CompanyLevel,
		employer.WebsiteURL, employer.CompanyType, employer.Industry, employer.AdminName,
		employer.LogoURL, employer.Description, employer.Location, employer.Tags,
	)

	created, err := scanEmployer(row)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create employer: %w", err)
	}

	*employer = *created
	return nil
}

func (r *EmployerRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.Employer, error) {
	employer, err := scanEmployer(r.pool.QueryRow(ctx,
		`SELECT `+employerColumns+` FROM employers WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employer by ID: %w", err)
	}
	return employer, nil
}

func (r *EmployerRepo) GetByEmail(ctx context.Context, email string) (*domain.Employer, error) {
	employer, err := scanEmployer(r.pool.QueryRow(ctx,
		`SELECT `+employerColumns+` FROM employers WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employer by email: %w", err)
	}
	return employer, nil
}

func (r *EmployerRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM employers WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employers: %w", err)
	}
	return count, nil
}
