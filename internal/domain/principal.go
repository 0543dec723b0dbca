package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the two kinds of principals. A principal's role is
// fixed at signup and never changes.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
)

// Employee is a job seeker. Skills holds the raw declaration as entered
// at signup; it may be a comma-separated string or a bracketed list and
// is only interpreted by the matching engine.
type Employee struct {
	UserID       uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	Address      string
	PhoneNumber  string
	ShortBio     string
	// Disability is the declared disability category; empty or "None"
	// means none was declared.
	Disability    string
	Skills        string
	ResumeURL     string
	ProfilePicURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Employer is a company account that owns job postings.
type Employer struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	CompanyName  string
	CompanyLevel string
	WebsiteURL   string
	CompanyType  string
	Industry     string
	AdminName    string
	LogoURL      string
	Description  string
	Location     string
	Tags         string
	CreatedAt    time.Time
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
}

type EmployerRepository interface {
	Create(ctx context.Context, employer *Employer) error
	GetByID(ctx context.Context, userID uuid.UUID) (*Employer, error)
	GetByEmail(ctx context.Context, email string) (*Employer, error)
	// CountCreatedSince returns how many employer accounts were created at
	// or after the given instant. Used to cap signups per day.
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
