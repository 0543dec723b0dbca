package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// JobInput carries the editable fields of a posting.
type JobInput struct {
	Title       string
	Description string
	Skills      [domain.JobSkillSlots]string
	PWDFriendly bool
	Location    string
	JobType     string
	Industry    string
	Experience  string
	MinSalary   float64
	MaxSalary   float64
}

// CreateJob creates a posting owned by the employer. The company name is
// denormalized from the employer profile at creation time.
func (s *Service) CreateJob(ctx context.Context, employerID uuid.UUID, in JobInput) (*domain.Job, error) {
	employer, err := s.employers.GetByID(ctx, employerID)
	if errors.Is(err, domain.ErrEmployerNotFound) {
		return nil, domain.ErrNotAnEmployer
	}
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		EmployerID:  employerID,
		Title:       in.Title,
		Description: in.Description,
		Skills:      in.Skills,
		PWDFriendly: in.PWDFriendly,
		CompanyName: employer.CompanyName,
		Location:    in.Location,
		JobType:     in.JobType,
		Industry:    in.Industry,
		Experience:  in.Experience,
		MinSalary:   in.MinSalary,
		MaxSalary:   in.MaxSalary,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob returns a single posting. Postings are publicly readable.
func (s *Service) GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, jobID)
}

// ListMyJobs returns the employer's own postings.
func (s *Service) ListMyJobs(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error) {
	return s.jobs.ListByEmployer(ctx, employerID)
}

// UpdateJob rewrites the editable fields of a posting the employer owns.
func (s *Service) UpdateJob(ctx context.Context, employerID, jobID uuid.UUID, in JobInput) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}

	job.Title = in.Title
	job.Description = in.Description
	job.Skills = in.Skills
	job.PWDFriendly = in.PWDFriendly
	job.Location = in.Location
	job.JobType = in.JobType
	job.Industry = in.Industry
	job.Experience = in.Experience
	job.MinSalary = in.MinSalary
	job.MaxSalary = in.MaxSalary

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a posting the employer owns together with its
// applications, impressions, and decline records.
func (s *Service) DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) error {
	if _, err := s.ownedJob(ctx, employerID, jobID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, jobID)
}

func (s *Service) ownedJob(ctx context.Context, employerID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, domain.ErrNotJobOwner
	}
	return job, nil
}
