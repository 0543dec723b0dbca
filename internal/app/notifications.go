package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/PWDEJOB/pwde-job-api/internal/adapter/metrics"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// PushSender delivers a single device push. Implemented by the Expo client.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// Notifier implements domain.Dispatcher: it persists in-app notifications
// and sends device pushes. Push delivery is detached and best effort —
// a failed push never surfaces to the caller.
type Notifier struct {
	notifications domain.NotificationRepository
	tokens        domain.PushTokenRepository
	pusher        PushSender
	pushTimeout   time.Duration
	clock         clockwork.Clock
	metrics       *metrics.NotifyMetrics
}

// NewNotifier creates a notification dispatcher.
// pusher and m may be nil; pushes are then dropped with a log line.
func NewNotifier(notifications domain.NotificationRepository, tokens domain.PushTokenRepository, pusher PushSender, pushTimeout time.Duration, clock clockwork.Clock, m *metrics.NotifyMetrics) *Notifier {
	return &Notifier{
		notifications: notifications,
		tokens:        tokens,
		pusher:        pusher,
		pushTimeout:   pushTimeout,
		clock:         clock,
		metrics:       m,
	}
}

// titleForCategory derives the stored notification title from its category.
func titleForCategory(category string) string {
	switch category {
	case domain.CategoryNewApplicant:
		return "New Applicant"
	case domain.CategoryMessage:
		return "New Message"
	case domain.CategoryApplicationAccepted:
		return "Application Accepted"
	case domain.CategoryApplicationRejected:
		return "Application Update"
	case domain.CategoryApplicationSent:
		return "Application Sent"
	default:
		return "Notification"
	}
}

// Dispatch records an in-app notification for the receiver.
func (n *Notifier) Dispatch(ctx context.Context, senderID, receiverID uuid.UUID, content, category string) error {
	notification := &domain.Notification{
		Title:      titleForCategory(category),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Category:   category,
	}

	if err := n.notifications.Insert(ctx, notification); err != nil {
		n.countDispatch(category, "error")
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	n.countDispatch(category, "ok")
	return nil
}

// Push sends a device push to the receiver's active token in a detached
// goroutine with a bounded timeout. Failures are logged, never returned.
func (n *Notifier) Push(receiverID uuid.UUID, title, body string, data map[string]string) {
	if n.pusher == nil {
		slog.Debug("Push delivery disabled, dropping push", "receiver_id", receiverID.String())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.pushTimeout)
		defer cancel()

		start := n.clock.Now()

		token, err := n.tokens.ActiveToken(ctx, receiverID)
		if errors.Is(err, domain.ErrPushTokenNotFound) {
			slog.Debug("No active push token, skipping push", "receiver_id", receiverID.String())
			n.countPush("no_token")
			return
		}
		if err != nil {
			slog.Error("Push token lookup failed", "receiver_id", receiverID.String(), "error", err)
			n.countPush("error")
			return
		}

		if err := n.pusher.Send(ctx, token, title, body, data); err != nil {
			slog.Error("Push delivery failed", "receiver_id", receiverID.String(), "error", err)
			n.countPush("error")
			return
		}

		n.countPush("ok")
		if n.metrics != nil {
			n.metrics.PushDuration.Observe(n.clock.Since(start).Seconds())
		}
	}()
}

func (n *Notifier) countDispatch(category, result string) {
	if n.metrics != nil {
		n.metrics.DispatchesTotal.WithLabelValues(category, result).Inc()
	}
}

func (n *Notifier) countPush(result string) {
	if n.metrics != nil {
		n.metrics.PushesTotal.WithLabelValues(result).Inc()
	}
}
