// Package httpserver is the HTTP boundary: routes, authentication
// middleware, and handlers translating between JSON and the application
// service.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PWDEJOB/pwde-job-api/internal/adapter/metrics"
	"github.com/PWDEJOB/pwde-job-api/internal/app"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	"github.com/PWDEJOB/pwde-job-api/internal/platform/config"
)

type appService interface {
	SignupEmployee(ctx context.Context, in app.SignupEmployeeInput) (*domain.Employee, error)
	SignupEmployer(ctx context.Context, in app.SignupEmployerInput) (*domain.Employer, error)
	LoginEmployee(ctx context.Context, email, password string) (*app.Session, error)
	LoginEmployer(ctx context.Context, email, password string) (*app.Session, error)
	Logout(ctx context.Context, token string) error
	ResolveToken(ctx context.Context, token string) (uuid.UUID, error)
	ResolvePrincipal(ctx context.Context, principalID uuid.UUID) (*app.Principal, error)

	CreateJob(ctx context.Context, employerID uuid.UUID, in app.JobInput) (*domain.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)
	ListMyJobs(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error)
	UpdateJob(ctx context.Context, employerID, jobID uuid.UUID, in app.JobInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) error

	Recommend(ctx context.Context, employeeID uuid.UUID) ([]domain.Recommendation, error)

	Apply(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Application, error)
	SetStatus(ctx context.Context, employerID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	Decline(ctx context.Context, employeeID, applicationID uuid.UUID) (*domain.Decline, error)
	ListApplicants(ctx context.Context, employerID, jobID uuid.UUID) ([]domain.Application, error)
	ListMyApplications(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error)
	ListDeclined(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error)
	ListNotifications(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error)
}

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app            appService
	httpMetrics    *metrics.HTTPMetrics
	metricsHandler http.Handler
	healthChecks   []HealthCheck
}

// NewServer builds the echo server with all routes registered.
// httpMetrics and metricsHandler may be nil; the /metrics endpoint and
// request metrics are then omitted.
func NewServer(cfg *config.Config, app appService, httpMetrics *metrics.HTTPMetrics, metricsHandler http.Handler, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		httpMetrics:    httpMetrics,
		metricsHandler: metricsHandler,
		healthChecks:   healthChecks,
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
