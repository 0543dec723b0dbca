package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

var (
	testPool        *pgxpool.Pool
	testDatabaseURL string
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Skip container setup in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
		}
	}()

	testDatabaseURL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	testPool, err = Connect(ctx, testDatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	defer testPool.Close()

	if err := RunMigrationsWithLock(ctx, testPool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestDB returns the shared pool and registers cleanup to truncate
// all tables.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	t.Cleanup(func() {
		ctx := context.Background()
		_, err := testPool.Exec(ctx,
			"TRUNCATE employees, employers, jobs, applications, impressions, declined, notifications, push_tokens CASCADE")
		if err != nil {
			t.Logf("failed to truncate tables: %v", err)
		}
	})

	return testPool
}

func seedEmployee(t *testing.T, pool *pgxpool.Pool) *domain.Employee {
	t.Helper()
	employee := &domain.Employee{
		FullName:     "Dana Cruz",
		Email:        fmt.Sprintf("dana-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Skills:       "go, sql",
	}
	require.NoError(t, NewEmployeeRepo(pool).Create(context.Background(), employee))
	return employee
}

func seedEmployer(t *testing.T, pool *pgxpool.Pool) *domain.Employer {
	t.Helper()
	employer := &domain.Employer{
		Email:        fmt.Sprintf("hr-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		CompanyName:  "Acme",
	}
	require.NoError(t, NewEmployerRepo(pool).Create(context.Background(), employer))
	return employer
}

func seedJob(t *testing.T, pool *pgxpool.Pool, employerID uuid.UUID) *domain.Job {
	t.Helper()
	job := &domain.Job{
		EmployerID:  employerID,
		Title:       "Backend Engineer",
		PWDFriendly: true,
	}
	copy(job.Skills[:], []string{"go", "sql"})
	require.NoError(t, NewJobRepo(pool).Create(context.Background(), job))
	return job
}

func seedApplication(t *testing.T, pool *pgxpool.Pool, employeeID, jobID uuid.UUID) *domain.Application {
	t.Helper()
	application := &domain.Application{
		EmployeeID:      employeeID,
		JobID:           jobID,
		ProfileSnapshot: []byte(`{}`),
	}
	require.NoError(t, NewApplicationRepo(pool).Create(context.Background(), application))
	return application
}

func TestRunMigrationsWithLock_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	require.NoError(t, RunMigrationsWithLock(ctx, testPool))
	require.NoError(t, RunMigrationsWithLock(ctx, testPool))
}

func TestApplicationRepo_DuplicateApplication(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	job := seedJob(t, pool, employer.UserID)
	seedApplication(t, pool, employee.UserID, job.ID)

	err := NewApplicationRepo(pool).Create(ctx, &domain.Application{
		EmployeeID:      employee.UserID,
		JobID:           job.ID,
		ProfileSnapshot: []byte(`{}`),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestApplicationRepo_AcceptCascadesSiblings(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepo(pool)

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	first := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)
	second := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)
	third := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)

	accepted, rejected, err := repo.Accept(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, accepted.Status)
	assert.Equal(t, int64(2), rejected)

	for _, id := range []uuid.UUID{first.ID, third.ID} {
		sibling, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, sibling.Status)
	}

	count, err := repo.CountAcceptedByEmployee(ctx, employee.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestApplicationRepo_AcceptTwiceMovesTheAcceptance(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepo(pool)

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	first := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)
	second := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)

	_, _, err := repo.Accept(ctx, first.ID)
	require.NoError(t, err)

	// Accepting the sibling afterwards rejects the previous winner; there
	// is never a moment with two accepted rows.
	_, rejected, err := repo.Accept(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rejected)

	count, err := repo.CountAcceptedByEmployee(ctx, employee.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestApplications_PartialIndexRejectsSecondAccepted(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepo(pool)

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	first := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)
	second := seedApplication(t, pool, employee.UserID, seedJob(t, pool, employer.UserID).ID)

	_, _, err := repo.Accept(ctx, first.ID)
	require.NoError(t, err)

	// A writer that bypasses Accept and flips a second row to accepted
	// hits the partial unique index.
	_, err = pool.Exec(ctx,
		`UPDATE applications SET status = 'accepted' WHERE id = $1`, second.ID)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestImpressionRepo_RecordOnce(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewImpressionRepo(pool)

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	job := seedJob(t, pool, employer.UserID)

	created, err := repo.RecordOnce(ctx, employee.UserID, job.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.RecordOnce(ctx, employee.UserID, job.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM impressions WHERE employee_id = $1 AND job_id = $2`,
		employee.UserID, job.ID).Scan(&count))
	assert.Equal(t, int64(1), count)
}

func TestDeclinedRepo_DuplicateDecline(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewDeclinedRepo(pool)

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	job := seedJob(t, pool, employer.UserID)

	_, err := repo.Add(ctx, employee.UserID, job.ID)
	require.NoError(t, err)

	_, err = repo.Add(ctx, employee.UserID, job.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDeclined)
}

func TestJobRepo_DeleteCascadesDependents(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	jobs := NewJobRepo(pool)

	employee := seedEmployee(t, pool)
	employer := seedEmployer(t, pool)
	job := seedJob(t, pool, employer.UserID)
	seedApplication(t, pool, employee.UserID, job.ID)

	_, err := NewImpressionRepo(pool).RecordOnce(ctx, employee.UserID, job.ID)
	require.NoError(t, err)
	_, err = NewDeclinedRepo(pool).Add(ctx, employee.UserID, job.ID)
	require.NoError(t, err)

	require.NoError(t, jobs.Delete(ctx, job.ID))

	_, err = jobs.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	for _, table := range []string{"applications", "impressions", "declined"} {
		var count int64
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM `+table+` WHERE job_id = $1`, job.ID).Scan(&count))
		assert.Zero(t, count, table)
	}
}

func TestEmployerRepo_CountCreatedSince(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewEmployerRepo(pool)

	seedEmployer(t, pool)
	seedEmployer(t, pool)

	count, err := repo.CountCreatedSince(ctx, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountCreatedSince(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, count)
}
