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

// employeeColumns must match the Scan order in scanEmployee.
const employeeColumns = `user_id, full_name, email, password_hash, address, phone_number, short_bio, disability, skills, resume_url, profile_pic_url, created_at, updated_at`

// EmployeeRepo implements domain.EmployeeRepository backed by PostgreSQL.
type EmployeeRepo struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepo(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.UserID, &e.FullName, &e.Email, &e.PasswordHash,
		&e.Address, &e.PhoneNumber, &e.ShortBio, &e.Disability, &e.Skills,
		&e.ResumeURL, &e.ProfilePicURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (full_name, email, password_hash, address, phone_number, short_bio, disability, skills, resume_url, profile_pic_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+employeeColumns,
		employee.FullName, employee.Email, employee.PasswordHash,
		employee.Address, employee.PhoneNumber, employee.ShortBio,
		employee.Disability, employee.Skills, employee.ResumeURL, employee.ProfilePicURL,
	)

	created, err := scanEmployee(row)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	*employee = *created
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.Employee, error) {
	employee, err := scanEmployee(r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return employee, nil
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	employee, err := scanEmployee(r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return employee, nil
}
