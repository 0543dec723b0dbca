package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// --- Mock implementations (function-field style) ---

type mockEmployeeRepo struct {
	createFn     func(ctx context.Context, employee *domain.Employee) error
	getByIDFn    func(ctx context.Context, userID uuid.UUID) (*domain.Employee, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Employee, error)
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	if m.createFn != nil {
		return m.createFn(ctx, employee)
	}
	return nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.Employee, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockEmployerRepo struct {
	createFn            func(ctx context.Context, employer *domain.Employer) error
	getByIDFn           func(ctx context.Context, userID uuid.UUID) (*domain.Employer, error)
	getByEmailFn        func(ctx context.Context, email string) (*domain.Employer, error)
	countCreatedSinceFn func(ctx context.Context, since time.Time) (int64, error)
}

func (m *mockEmployerRepo) Create(ctx context.Context, employer *domain.Employer) error {
	if m.createFn != nil {
		return m.createFn(ctx, employer)
	}
	return nil
}

func (m *mockEmployerRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.Employer, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockEmployerRepo) GetByEmail(ctx context.Context, email string) (*domain.Employer, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockEmployerRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if m.countCreatedSinceFn != nil {
		return m.countCreatedSinceFn(ctx, since)
	}
	return 0, nil
}

type mockJobRepo struct {
	createFn         func(ctx context.Context, job *domain.Job) error
	getByIDFn        func(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)
	listByEmployerFn func(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error)
	listCandidatesFn func(ctx context.Context, policy domain.CandidatePolicy) ([]domain.Job, error)
	updateFn         func(ctx context.Context, job *domain.Job) error
	deleteFn         func(ctx context.Context, jobID uuid.UUID) error
}

func (m *mockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	if m.createFn != nil {
		return m.createFn(ctx, job)
	}
	return nil
}

func (m *mockJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, jobID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockJobRepo) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]domain.Job, error) {
	if m.listByEmployerFn != nil {
		return m.listByEmployerFn(ctx, employerID)
	}
	return nil, nil
}

func (m *mockJobRepo) ListCandidates(ctx context.Context, policy domain.CandidatePolicy) ([]domain.Job, error) {
	if m.listCandidatesFn != nil {
		return m.listCandidatesFn(ctx, policy)
	}
	return nil, nil
}

func (m *mockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, job)
	}
	return nil
}

func (m *mockJobRepo) Delete(ctx context.Context, jobID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, jobID)
	}
	return nil
}

type mockApplicationRepo struct {
	createFn                  func(ctx context.Context, application *domain.Application) error
	getByIDFn                 func(ctx context.Context, applicationID uuid.UUID) (*domain.Application, error)
	listByEmployeeFn          func(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error)
	listByJobFn               func(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error)
	updateStatusFn            func(ctx context.Context, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	acceptFn                  func(ctx context.Context, applicationID uuid.UUID) (*domain.Application, int64, error)
	countAcceptedByEmployeeFn func(ctx context.Context, employeeID uuid.UUID) (int64, error)
}

func (m *mockApplicationRepo) Create(ctx context.Context, application *domain.Application) error {
	if m.createFn != nil {
		return m.createFn(ctx, application)
	}
	application.ID = uuid.New()
	return nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, applicationID uuid.UUID) (*domain.Application, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, applicationID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockApplicationRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Application, error) {
	if m.listByEmployeeFn != nil {
		return m.listByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	if m.listByJobFn != nil {
		return m.listByJobFn(ctx, jobID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, applicationID, status)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockApplicationRepo) Accept(ctx context.Context, applicationID uuid.UUID) (*domain.Application, int64, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, applicationID)
	}
	return nil, 0, fmt.Errorf("not implemented")
}

func (m *mockApplicationRepo) CountAcceptedByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	if m.countAcceptedByEmployeeFn != nil {
		return m.countAcceptedByEmployeeFn(ctx, employeeID)
	}
	return 0, nil
}

// recordingImpressionRepo tracks RecordOnce calls and enforces pair
// uniqueness like the real store.
type recordingImpressionRepo struct {
	mu    sync.Mutex
	pairs map[string]int
}

func newRecordingImpressionRepo() *recordingImpressionRepo {
	return &recordingImpressionRepo{pairs: make(map[string]int)}
}

func (r *recordingImpressionRepo) RecordOnce(_ context.Context, employeeID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := employeeID.String() + "/" + jobID.String()
	r.pairs[key]++
	return r.pairs[key] == 1, nil
}

func (r *recordingImpressionRepo) count(employeeID, jobID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[employeeID.String()+"/"+jobID.String()]
}

type mockDeclinedRepo struct {
	addFn            func(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Decline, error)
	listByEmployeeFn func(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error)
}

func (m *mockDeclinedRepo) Add(ctx context.Context, employeeID, jobID uuid.UUID) (*domain.Decline, error) {
	if m.addFn != nil {
		return m.addFn(ctx, employeeID, jobID)
	}
	return &domain.Decline{ID: uuid.New(), EmployeeID: employeeID, JobID: jobID}, nil
}

func (m *mockDeclinedRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Decline, error) {
	if m.listByEmployeeFn != nil {
		return m.listByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	insertFn         func(ctx context.Context, notification *domain.Notification) error
	listByReceiverFn func(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error)
}

func (m *mockNotificationRepo) Insert(ctx context.Context, notification *domain.Notification) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, notification)
	}
	notification.ID = uuid.New()
	return nil
}

func (m *mockNotificationRepo) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error) {
	if m.listByReceiverFn != nil {
		return m.listByReceiverFn(ctx, receiverID)
	}
	return nil, nil
}

type mockPushTokenRepo struct {
	activeTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
}

func (m *mockPushTokenRepo) ActiveToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.activeTokenFn != nil {
		return m.activeTokenFn(ctx, userID)
	}
	return "", domain.ErrPushTokenNotFound
}

// fakeSessionStore is an in-memory domain.SessionStore.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uuid.UUID)}
}

func (f *fakeSessionStore) Issue(_ context.Context, principalID uuid.UUID, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := uuid.NewString()
	f.sessions[token] = principalID
	return token, nil
}

func (f *fakeSessionStore) Resolve(_ context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.sessions[token]
	if !ok {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	return id, nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

// recordingDispatcher captures Dispatch and Push calls.
type recordingDispatcher struct {
	mu          sync.Mutex
	dispatched  []dispatchedNotification
	pushed      []pushedNotification
	dispatchErr error
}

type dispatchedNotification struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	Category   string
}

type pushedNotification struct {
	ReceiverID uuid.UUID
	Title      string
	Body       string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, senderID, receiverID uuid.UUID, content, category string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dispatchErr != nil {
		return d.dispatchErr
	}
	d.dispatched = append(d.dispatched, dispatchedNotification{senderID, receiverID, content, category})
	return nil
}

func (d *recordingDispatcher) Push(receiverID uuid.UUID, title, body string, _ map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushed = append(d.pushed, pushedNotification{receiverID, title, body})
}

// testDeps bundles the collaborators of a Service under test. Zero-value
// fields get a default mock.
type testDeps struct {
	employees    domain.EmployeeRepository
	employers    domain.EmployerRepository
	jobs         domain.JobRepository
	applications domain.ApplicationRepository
	impressions  domain.ImpressionRepository
	declined     domain.DeclinedRepository
	notifs       domain.NotificationRepository
	sessions     domain.SessionStore
	notifier     domain.Dispatcher
	opts         Options
}

func newTestService(deps testDeps) *Service {
	if deps.employees == nil {
		deps.employees = &mockEmployeeRepo{}
	}
	if deps.employers == nil {
		deps.employers = &mockEmployerRepo{}
	}
	if deps.jobs == nil {
		deps.jobs = &mockJobRepo{}
	}
	if deps.applications == nil {
		deps.applications = &mockApplicationRepo{}
	}
	if deps.impressions == nil {
		deps.impressions = newRecordingImpressionRepo()
	}
	if deps.declined == nil {
		deps.declined = &mockDeclinedRepo{}
	}
	if deps.notifs == nil {
		deps.notifs = &mockNotificationRepo{}
	}
	if deps.sessions == nil {
		deps.sessions = newFakeSessionStore()
	}
	if deps.notifier == nil {
		deps.notifier = &recordingDispatcher{}
	}
	if deps.opts.Policy == "" {
		deps.opts.Policy = domain.PolicyPWDFriendlyOnly
	}
	if deps.opts.EmployerSignupDailyLimit == 0 {
		deps.opts.EmployerSignupDailyLimit = 5
	}

	return NewService(
		deps.employees, deps.employers, deps.jobs,
		deps.applications, deps.impressions, deps.declined, deps.notifs,
		deps.sessions, deps.notifier,
		clockwork.NewFakeClock(), nil, deps.opts,
	)
}

func (d *recordingDispatcher) byCategory(category string) []dispatchedNotification {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []dispatchedNotification
	for _, n := range d.dispatched {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out
}
