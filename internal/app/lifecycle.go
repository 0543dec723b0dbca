package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// profileSnapshot is the applicant profile serialized at apply time. The
// password hash never enters the snapshot.
type profileSnapshot struct {
	UserID        uuid.UUID `json:"user_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phone_number"`
	ShortBio      string    `json:"short_bio"`
	Disability    string    `json:"disability"`
	Skills        string    `json:"skills"`
	ResumeURL     string    `json:"resume_url"`
	ProfilePicURL string    `json:"profile_pic_url"`
}

// Apply creates an application in under_review with a snapshot of the
// applicant's profile, then notifies both sides. Notification failures
// are logged and never undo the application.
func (s *Service) Apply(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Application, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, domain.ErrNotAnEmployee
	}
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(profileSnapshot{
		UserID:        employee.UserID,
		FullName:      employee.FullName,
		Email:         employee.Email,
		Address:       employee.Address,
		PhoneNumber:   employee.PhoneNumber,
		ShortBio:      employee.ShortBio,
		Disability:    employee.Disability,
		Skills:        employee.Skills,
		ResumeURL:     employee.ResumeURL,
		ProfilePicURL: employee.ProfilePicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile snapshot: %w", err)
	}

	application := &domain.Application{
		EmployeeID:      employeeID,
		JobID:           jobID,
		Status:          domain.StatusUnderReview,
		ProfileSnapshot: snapshot,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	employerContent := fmt.Sprintf("%s applied to your job posting %q.", employee.FullName, job.Title)
	s.dispatch(ctx, employeeID, job.EmployerID, employerContent, domain.CategoryNewApplicant)
	s.notifier.Push(job.EmployerID, titleForCategory(domain.CategoryNewApplicant), employerContent,
		map[string]string{"job_id": job.ID.String(), "application_id": application.ID.String()})

	s.dispatch(ctx, job.EmployerID, employeeID,
		fmt.Sprintf("Your application for %q was sent.", job.Title), domain.CategoryApplicationSent)

	return application, nil
}

// SetStatus transitions an application on behalf of the employer owning
// the job. Accepting cascades: every other application of the same
// employee is rejected in the same transaction, so at most one accepted
// application can ever exist per employee.
func (s *Service) SetStatus(ctx context.Context, employerID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, domain.ErrNotJobOwner
	}

	var updated *domain.Application
	if status == domain.StatusAccepted {
		var rejected int64
		updated, rejected, err = s.applications.Accept(ctx, applicationID)
		if err != nil {
			return nil, err
		}
		if rejected > 0 {
			slog.Info("Acceptance cascade rejected sibling applications",
				"employee_id", updated.EmployeeID.String(),
				"application_id", applicationID.String(),
				"rejected", rejected)
		}
	} else {
		updated, err = s.applications.UpdateStatus(ctx, applicationID, status)
		if err != nil {
			return nil, err
		}
	}

	content := statusNotificationContent(job.Title, status)
	category := statusNotificationCategory(status)
	s.dispatch(ctx, employerID, updated.EmployeeID, content, category)
	s.notifier.Push(updated.EmployeeID, titleForCategory(category), content,
		map[string]string{"job_id": job.ID.String(), "application_id": updated.ID.String()})

	return updated, nil
}

// Decline appends the application's job to the employee's decline log.
// The application's status is untouched. Declining the same job twice is
// rejected with ErrAlreadyDeclined.
func (s *Service) Decline(ctx context.Context, employeeID, applicationID uuid.UUID) (*domain.Decline, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	// Another employee's application is indistinguishable from a missing one.
	if application.EmployeeID != employeeID {
		return nil, domain.ErrApplicationNotFound
	}

	return s.declined.Add(ctx, employeeID, application.JobID)
}

// ListApplicants returns the applications for a job the employer owns.
func (s *Service) ListApplicants(ctx context.Context, employerID, jobID uuid.UUID) ([]domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, domain.ErrNotJobOwner
	}
	return s.applications.ListByJob(ctx, jobID)
}

// ListMyApplications returns the employee's own applications.
func (s *Service) ListMyApplications(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error) {
	return s.applications.ListByEmployee(ctx, employeeID)
}

// ListDeclined returns the employee's decline log.
func (s *Service) ListDeclined(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error) {
	return s.declined.ListByEmployee(ctx, employeeID)
}

// ListNotifications returns the principal's in-app notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error) {
	return s.notifications.ListByReceiver(ctx, receiverID)
}

func (s *Service) dispatch(ctx context.Context, senderID, receiverID uuid.UUID, content, category string) {
	if err := s.notifier.Dispatch(ctx, senderID, receiverID, content, category); err != nil {
		slog.Error("Notification dispatch failed",
			"receiver_id", receiverID.String(),
			"category", category,
			"error", err)
	}
}

func statusNotificationContent(jobTitle string, status domain.ApplicationStatus) string {
	switch status {
	case domain.StatusAccepted:
		return fmt.Sprintf("Congratulations! Your application for %q was accepted.", jobTitle)
	case domain.StatusRejected:
		return fmt.Sprintf("Your application for %q was not successful this time.", jobTitle)
	case domain.StatusPendingRequirements:
		return fmt.Sprintf("Your application for %q needs additional requirements.", jobTitle)
	default:
		return fmt.Sprintf("Your application for %q is under review.", jobTitle)
	}
}

func statusNotificationCategory(status domain.ApplicationStatus) string {
	switch status {
	case domain.StatusAccepted:
		return domain.CategoryApplicationAccepted
	case domain.StatusRejected:
		return domain.CategoryApplicationRejected
	default:
		return domain.CategoryMessage
	}
}
