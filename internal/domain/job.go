package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobSkillSlots is the number of required-skill slots on a posting.
// Slots may be empty; empty slots are ignored by the matching engine.
const JobSkillSlots = 5

// Job is a posting owned by exactly one employer.
type Job struct {
	ID          uuid.UUID
	EmployerID  uuid.UUID
	Title       string
	Description string
	Skills      [JobSkillSlots]string
	PWDFriendly bool
	CompanyName string
	Location    string
	JobType     string
	Industry    string
	Experience  string
	MinSalary   float64
	MaxSalary   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CandidatePolicy names the rule selecting which jobs enter the
// recommendation pool. The historic behavior switched on the literal
// value of the disability field; here the policy is explicit.
type CandidatePolicy string

const (
	// PolicyPWDFriendlyOnly restricts recommendations to postings flagged
	// PWD-friendly. This is the default.
	PolicyPWDFriendlyOnly CandidatePolicy = "pwd_friendly"
	// PolicyFullCatalog recommends from every posting. Retained as a
	// documented legacy option.
	PolicyFullCatalog CandidatePolicy = "full_catalog"
)

func (p CandidatePolicy) Valid() bool {
	return p == PolicyPWDFriendlyOnly || p == PolicyFullCatalog
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Job, error)
	// ListCandidates returns the recommendation pool in stable insertion
	// order (creation time ascending).
	ListCandidates(ctx context.Context, policy CandidatePolicy) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	// Delete removes the job and, in the same transaction, its dependent
	// applications, impressions, and decline records. The store schema is
	// not assumed to cascade on its own.
	Delete(ctx context.Context, jobID uuid.UUID) error
}

// ImpressionRepository records which jobs were shown to an employee as
// recommendations. At most one row exists per (employee, job) pair; rows
// are never updated or deleted outside job deletion.
type ImpressionRepository interface {
	// RecordOnce inserts an impression if none exists for the pair.
	// Returns true if a new row was created. Safe to race: uniqueness is
	// enforced by the store, not by a check-then-insert.
	RecordOnce(ctx context.Context, employeeID, jobID uuid.UUID) (bool, error)
}

// Recommendation is one scored entry of the matching engine's output.
type Recommendation struct {
	Job           Job
	Score         float64
	MatchedSkills []string
}
