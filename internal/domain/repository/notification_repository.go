package repository

import (
	"context"
	"database/sql"
	"fmt"

	"snapurl_admin/internal/domain/model"
)

// NotificationRepository persists per-user notification lists, newest first,
// capped at model.NotificationCap per user.
type NotificationRepository interface {
	Add(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Add(ctx context.Context, n *model.Notification) error {
	query := `INSERT INTO notifications (id, user_id, title, message, read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.Add: %w", err)
	}

	// Evict beyond the cap, oldest first.
	trim := `DELETE FROM notifications
	         WHERE user_id = $1 AND id NOT IN (
	             SELECT id FROM notifications
	             WHERE user_id = $1
	             ORDER BY created_at DESC, id DESC
	             LIMIT $2
	         )`
	if _, err := r.db.ExecContext(ctx, trim, n.UserID, model.NotificationCap); err != nil {
		return fmt.Errorf("pgNotificationRepository.Add trim: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `SELECT id, user_id, title, message, read, created_at
	          FROM notifications
	          WHERE user_id = $1
	          ORDER BY created_at DESC, id DESC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, model.NotificationCap)
	if err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	var list []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgNotificationRepository.ListByUser scan: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("pgNotificationRepository.MarkRead: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("pgNotificationRepository.MarkAllRead: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM notifications WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("pgNotificationRepository.DeleteByUser: %w", err)
	}
	return nil
}
