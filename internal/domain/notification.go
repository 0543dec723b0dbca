package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification categories. The dispatcher derives the stored title from
// the category.
const (
	CategoryNewApplicant        = "new_applicant"
	CategoryMessage             = "message"
	CategoryApplicationAccepted = "job_application_accepted"
	CategoryApplicationRejected = "job_application_rejected"
	CategoryApplicationSent     = "job_application_sent"
)

// Notification is a persisted in-app message between two principals.
type Notification struct {
	ID         uuid.UUID
	Title      string
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	Category   string
	CreatedAt  time.Time
}

type NotificationRepository interface {
	Insert(ctx context.Context, notification *Notification) error
	ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]Notification, error)
}

type PushTokenRepository interface {
	// ActiveToken returns the receiver's active push token or
	// ErrPushTokenNotFound.
	ActiveToken(ctx context.Context, userID uuid.UUID) (string, error)
}

// Dispatcher is the notification collaborator contract. The lifecycle
// only depends on this interface; delivery failures are never allowed to
// undo a state change that already committed.
type Dispatcher interface {
	// Dispatch records an in-app notification. Errors are returned so the
	// caller can log them, but callers must not treat them as fatal.
	Dispatch(ctx context.Context, senderID, receiverID uuid.UUID, content, category string) error
	// Push sends a device push asynchronously. It must never block the
	// caller and never surfaces an error.
	Push(receiverID uuid.UUID, title, body string, data map[string]string)
}

// SessionStore maps opaque bearer tokens to principals. Entries have no
// expiry; they live until Revoke.
type SessionStore interface {
	Issue(ctx context.Context, principalID uuid.UUID, refreshToken string) (string, error)
	// Resolve returns ErrSessionNotFound for unknown tokens.
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	// Revoke is idempotent; revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}
