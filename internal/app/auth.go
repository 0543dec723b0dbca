package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// SignupEmployeeInput carries the fields of a new job-seeker account.
type SignupEmployeeInput struct {
	FullName      string
	Email         string
	Password      string
	Address       string
	PhoneNumber   string
	ShortBio      string
	Disability    string
	Skills        string
	ResumeURL     string
	ProfilePicURL string
}

// SignupEmployerInput carries the fields of a new company account.
type SignupEmployerInput struct {
	Email        string
	Password     string
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
}

// Session is the result of a successful login: an opaque bearer token
// bound to the principal.
type Session struct {
	Token  string
	UserID uuid.UUID
	Role   domain.Role
}

// Principal is the resolved identity behind a bearer token. Exactly one
// of Employee and Employer is set, matching Role.
type Principal struct {
	Role     domain.Role
	Employee *domain.Employee
	Employer *domain.Employer
}

// SignupEmployee registers a job-seeker account.
func (s *Service) SignupEmployee(ctx context.Context, in SignupEmployeeInput) (*domain.Employee, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		FullName:      in.FullName,
		Email:         in.Email,
		PasswordHash:  hash,
		Address:       in.Address,
		PhoneNumber:   in.PhoneNumber,
		ShortBio:      in.ShortBio,
		Disability:    in.Disability,
		Skills:        in.Skills,
		ResumeURL:     in.ResumeURL,
		ProfilePicURL: in.ProfilePicURL,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// SignupEmployer registers a company account, subject to the daily cap
// on new employer accounts.
func (s *Service) SignupEmployer(ctx context.Context, in SignupEmployerInput) (*domain.Employer, error) {
	startOfDay := s.clock.Now().UTC().Truncate(24 * time.Hour)
	count, err := s.employers.CountCreatedSince(ctx, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count employer signups: %w", err)
	}
	if count >= int64(s.signupLimit) {
		return nil, domain.ErrSignupLimitReached
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	employer := &domain.Employer{
		Email:        in.Email,
		PasswordHash: hash,
		CompanyName:  in.CompanyName,
		CompanyLevel: in.CompanyLevel,
		WebsiteURL:   in.WebsiteURL,
		CompanyType:  in.CompanyType,
		Industry:     in.Industry,
		AdminName:    in.AdminName,
		LogoURL:      in.LogoURL,
		Description:  in.Description,
		Location:     in.Location,
		Tags:         in.Tags,
	}
	if err := s.employers.Create(ctx, employer); err != nil {
		return nil, err
	}
	return employer, nil
}

// LoginEmployee authenticates against the employee table and issues a
// session. Unknown emails and wrong passwords are indistinguishable to
// the caller.
func (s *Service) LoginEmployee(ctx context.Context, email, password string) (*Session, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := verifyPassword(employee.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, employee.UserID, domain.RoleEmployee)
}

// LoginEmployer authenticates against the employer table and issues a session.
func (s *Service) LoginEmployer(ctx context.Context, email, password string) (*Session, error) {
	employer, err := s.employers.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrEmployerNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := verifyPassword(employer.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, employer.UserID, domain.RoleEmployer)
}

// Logout revokes the bearer token. Revoking an already-revoked token is
// not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// ResolveToken maps a bearer token back to a principal ID.
func (s *Service) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	return s.sessions.Resolve(ctx, token)
}

// ResolvePrincipal loads the full profile behind a principal ID, probing
// the employee table first and the employer table second.
func (s *Service) ResolvePrincipal(ctx context.Context, principalID uuid.UUID) (*Principal, error) {
	employee, err := s.employees.GetByID(ctx, principalID)
	if err == nil {
		return &Principal{Role: domain.RoleEmployee, Employee: employee}, nil
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	employer, err := s.employers.GetByID(ctx, principalID)
	if errors.Is(err, domain.ErrEmployerNotFound) {
		// Session points at a principal that no longer exists.
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Principal{Role: domain.RoleEmployer, Employer: employer}, nil
}

func (s *Service) issueSession(ctx context.Context, principalID uuid.UUID, role domain.Role) (*Session, error) {
	// The refresh token is an opaque secret stored alongside the session
	// record. Nothing consumes it yet; renewal is a documented gap.
	token, err := s.sessions.Issue(ctx, principalID, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	slog.Info("Session issued", "user_id", principalID.String(), "role", string(role))
	return &Session{Token: token, UserID: principalID, Role: role}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
