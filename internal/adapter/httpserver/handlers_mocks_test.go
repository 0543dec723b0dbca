package httpserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/PWDEJOB/pwde-job-api/internal/app"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	"github.com/PWDEJOB/pwde-job-api/internal/platform/config"
)

// mockApp implements appService with function fields; unset methods fail.
type mockApp struct {
	signupEmployeeFn     func(ctx context.Context, in app.SignupEmployeeInput) (*domain.Employee, error)
	signupEmployerFn     func(ctx context.Context, in app.SignupEmployerInput) (*domain.Employer, error)
	loginEmployeeFn      func(ctx context.Context, email, password string) (*app.Session, error)
	loginEmployerFn      func(ctx context.Context, email, password string) (*app.Session, error)
	logoutFn             func(ctx context.Context, token string) error
	resolveTokenFn       func(ctx context.Context, token string) (uuid.UUID, error)
	resolvePrincipalFn   func(ctx context.Context, principalID uuid.UUID) (*app.Principal, error)
	createJobFn          func(ctx context.Context, employerID uuid.UUID, in app.JobInput) (*domain.Job, error)
	getJobFn             func(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)
	listMyJobsFn         func(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error)
	updateJobFn          func(ctx context.Context, employerID, jobID uuid.UUID, in app.JobInput) (*domain.Job, error)
	deleteJobFn          func(ctx context.Context, employerID, jobID uuid.UUID) error
	recommendFn          func(ctx context.Context, employeeID uuid.UUID) ([]domain.Recommendation, error)
	applyFn              func(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Application, error)
	setStatusFn          func(ctx context.Context, employerID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	declineFn            func(ctx context.Context, employeeID, applicationID uuid.UUID) (*domain.Decline, error)
	listApplicantsFn     func(ctx context.Context, employerID, jobID uuid.UUID) ([]domain.Application, error)
	listMyApplicationsFn func(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error)
	listDeclinedFn       func(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error)
	listNotificationsFn  func(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error)
}

var errNotImplemented = fmt.Errorf("not implemented")

func (m *mockApp) SignupEmployee(ctx context.Context, in app.SignupEmployeeInput) (*domain.Employee, error) {
	if m.signupEmployeeFn != nil {
		return m.signupEmployeeFn(ctx, in)
	}
	return nil, errNotImplemented
}

func (m *mockApp) SignupEmployer(ctx context.Context, in app.SignupEmployerInput) (*domain.Employer, error) {
	if m.signupEmployerFn != nil {
		return m.signupEmployerFn(ctx, in)
	}
	return nil, errNotImplemented
}

func (m *mockApp) LoginEmployee(ctx context.Context, email, password string) (*app.Session, error) {
	if m.loginEmployeeFn != nil {
		return m.loginEmployeeFn(ctx, email, password)
	}
	return nil, errNotImplemented
}

func (m *mockApp) LoginEmployer(ctx context.Context, email, password string) (*app.Session, error) {
	if m.loginEmployerFn != nil {
		return m.loginEmployerFn(ctx, email, password)
	}
	return nil, errNotImplemented
}

func (m *mockApp) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockApp) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	if m.resolveTokenFn != nil {
		return m.resolveTokenFn(ctx, token)
	}
	return uuid.Nil, domain.ErrSessionNotFound
}

func (m *mockApp) ResolvePrincipal(ctx context.Context, principalID uuid.UUID) (*app.Principal, error) {
	if m.resolvePrincipalFn != nil {
		return m.resolvePrincipalFn(ctx, principalID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) CreateJob(ctx context.Context, employerID uuid.UUID, in app.JobInput) (*domain.Job, error) {
	if m.createJobFn != nil {
		return m.createJobFn(ctx, employerID, in)
	}
	return nil, errNotImplemented
}

func (m *mockApp) GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	if m.getJobFn != nil {
		return m.getJobFn(ctx, jobID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) ListMyJobs(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error) {
	if m.listMyJobsFn != nil {
		return m.listMyJobsFn(ctx, employerID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) UpdateJob(ctx context.Context, employerID, jobID uuid.UUID, in app.JobInput) (*domain.Job, error) {
	if m.updateJobFn != nil {
		return m.updateJobFn(ctx, employerID, jobID, in)
	}
	return nil, errNotImplemented
}

func (m *mockApp) DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) error {
	if m.deleteJobFn != nil {
		return m.deleteJobFn(ctx, employerID, jobID)
	}
	return errNotImplemented
}

func (m *mockApp) Recommend(ctx context.Context, employeeID uuid.UUID) ([]domain.Recommendation, error) {
	if m.recommendFn != nil {
		return m.recommendFn(ctx, employeeID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) Apply(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Application, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, employeeID, jobID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) SetStatus(ctx context.Context, employerID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, employerID, applicationID, status)
	}
	return nil, errNotImplemented
}

func (m *mockApp) Decline(ctx context.Context, employeeID, applicationID uuid.UUID) (*domain.Decline, error) {
	if m.declineFn != nil {
		return m.declineFn(ctx, employeeID, applicationID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) ListApplicants(ctx context.Context, employerID, jobID uuid.UUID) ([]domain.Application, error) {
	if m.listApplicantsFn != nil {
		return m.listApplicantsFn(ctx, employerID, jobID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) ListMyApplications(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error) {
	if m.listMyApplicationsFn != nil {
		return m.listMyApplicationsFn(ctx, employeeID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) ListDeclined(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error) {
	if m.listDeclinedFn != nil {
		return m.listDeclinedFn(ctx, employeeID)
	}
	return nil, errNotImplemented
}

func (m *mockApp) ListNotifications(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error) {
	if m.listNotificationsFn != nil {
		return m.listNotificationsFn(ctx, receiverID)
	}
	return nil, errNotImplemented
}

func newTestServer(appSvc appService) *Server {
	cfg := &config.Config{AppEnv: "test", Port: "0"}
	return NewServer(cfg, appSvc, nil, nil, nil)
}

// authedApp wraps a mockApp so that the given token resolves to the
// given principal.
func withToken(m *mockApp, token string, principalID uuid.UUID) *mockApp {
	m.resolveTokenFn = func(_ context.Context, got string) (uuid.UUID, error) {
		if got == token {
			return principalID, nil
		}
		return uuid.Nil, domain.ErrSessionNotFound
	}
	return m
}
