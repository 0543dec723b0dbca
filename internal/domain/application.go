package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus enumerates the lifecycle states of an application.
type ApplicationStatus string

const (
	StatusUnderReview         ApplicationStatus = "under_review"
	StatusPendingRequirements ApplicationStatus = "pending_requirements"
	StatusAccepted            ApplicationStatus = "accepted"
	StatusRejected            ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusUnderReview, StatusPendingRequirements, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application is one employee's application to one job. ProfileSnapshot
// is the applicant's profile serialized at apply time, so later profile
// edits do not rewrite what the employer reviewed.
type Application struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID
	JobID           uuid.UUID
	Status          ApplicationStatus
	ProfileSnapshot []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ApplicationRepository interface {
	// Create inserts a new application in StatusUnderReview. Returns
	// ErrDuplicateApplication if the employee already applied to the job.
	Create(ctx context.Context, application *Application) error
	GetByID(ctx context.Context, applicationID uuid.UUID) (*Application, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status ApplicationStatus) (*Application, error)
	// Accept marks the application accepted and, in the same transaction,
	// rejects every other application of the same employee. This is the
	// sole writer of the accepted status, which keeps the at-most-one-
	// accepted-per-employee invariant out of reach of races between
	// concurrent accepts. Returns the accepted application and the number
	// of sibling applications rejected.
	Accept(ctx context.Context, applicationID uuid.UUID) (*Application, int64, error)
	CountAcceptedByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
}

// Decline is an append-only record of an employee withdrawing interest
// in a job. It does not alter the application's status.
type Decline struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	JobID      uuid.UUID
	CreatedAt  time.Time
}

type DeclinedRepository interface {
	// Add appends a decline record. Returns ErrAlreadyDeclined when a
	// record for the pair exists; repeated declines are rejected rather
	// than logged twice.
	Add(ctx context.Context, employeeID, jobID uuid.UUID) (*Decline, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Decline, error)
}
