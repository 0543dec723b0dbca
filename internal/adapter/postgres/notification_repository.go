package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// NotificationRepo implements domain.NotificationRepository backed by PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Insert(ctx context.Context, notification *domain.Notification) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (title, sender_id, receiver_id, content, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		notification.Title, notification.SenderID, notification.ReceiverID,
		notification.Content, notification.Category,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, sender_id, receiver_id, content, category, created_at
		FROM notifications
		WHERE receiver_id = $1
		ORDER BY created_at DESC`, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.SenderID, &n.ReceiverID, &n.Content, &n.Category, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// PushTokenRepo implements domain.PushTokenRepository backed by PostgreSQL.
type PushTokenRepo struct {
	pool *pgxpool.Pool
}

func NewPushTokenRepo(pool *pgxpool.Pool) *PushTokenRepo {
	return &PushTokenRepo{pool: pool}
}

func (r *PushTokenRepo) ActiveToken(ctx context.Context, userID uuid.UUID) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `
		SELECT expo_token FROM push_tokens
		WHERE user_id = $1 AND active
		ORDER BY created_at DESC
		LIMIT 1`, userID).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrPushTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get push token: %w", err)
	}
	return token, nil
}
