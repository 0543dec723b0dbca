package domain

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployerNotFound    = errors.New("employer not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrPushTokenNotFound   = errors.New("push token not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSignupLimitReached = errors.New("daily signup limit reached")

	// ErrNotAnEmployee and ErrNotAnEmployer signal a role mismatch: the
	// authenticated principal exists but is the wrong kind of account for
	// the operation.
	ErrNotAnEmployee = errors.New("principal is not an employee")
	ErrNotAnEmployer = errors.New("principal is not an employer")

	// ErrNotJobOwner signals that an employer tried to act on a job or
	// application owned by a different employer.
	ErrNotJobOwner = errors.New("job is owned by another employer")

	ErrDuplicateApplication = errors.New("application already exists for this job")
	ErrAlreadyDeclined      = errors.New("application already declined")
	ErrInvalidStatus        = errors.New("invalid application status")
)
