// Package app is the application layer — the only component that
// references multiple domain components. It orchestrates all use cases:
// identity, job catalog, matching, the application lifecycle, and
// notification dispatch.
package app

import (
	"github.com/jonboulle/clockwork"

	"github.com/PWDEJOB/pwde-job-api/internal/adapter/metrics"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// Service orchestrates all use cases over the domain repositories.
type Service struct {
	employees     domain.EmployeeRepository
	employers     domain.EmployerRepository
	jobs          domain.JobRepository
	applications  domain.ApplicationRepository
	impressions   domain.ImpressionRepository
	declined      domain.DeclinedRepository
	notifications domain.NotificationRepository
	sessions      domain.SessionStore
	notifier      domain.Dispatcher

	clock       clockwork.Clock
	policy      domain.CandidatePolicy
	signupLimit int
	match       *metrics.MatchMetrics
}

// Options carries the tunables the service needs beyond its collaborators.
type Options struct {
	// Policy selects the recommendation candidate pool.
	Policy domain.CandidatePolicy
	// EmployerSignupDailyLimit caps new employer accounts per calendar day.
	EmployerSignupDailyLimit int
}

// NewService creates the application layer service.
// match may be nil when metrics are not wired (tests).
func NewService(
	employees domain.EmployeeRepository,
	employers domain.EmployerRepository,
	jobs domain.JobRepository,
	applications domain.ApplicationRepository,
	impressions domain.ImpressionRepository,
	declined domain.DeclinedRepository,
	notifications domain.NotificationRepository,
	sessions domain.SessionStore,
	notifier domain.Dispatcher,
	clock clockwork.Clock,
	match *metrics.MatchMetrics,
	opts Options,
) *Service {
	return &Service{
		employees:     employees,
		employers:     employers,
		jobs:          jobs,
		applications:  applications,
		impressions:   impressions,
		declined:      declined,
		notifications: notifications,
		sessions:      sessions,
		notifier:      notifier,
		clock:         clock,
		policy:        opts.Policy,
		signupLimit:   opts.EmployerSignupDailyLimit,
		match:         match,
	}
}
