package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
)

const notificationColumns = `notification_id, user_id, title, message, kind, is_read,
	created_at, created_by, last_updated_at, last_updated_by, is_active, deleted_at`

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{pool: pool}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", storeErr(err))
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(
			&n.NotificationID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Kind,
			&n.IsRead,
			&n.CreatedAt,
			&n.CreatedBy,
			&n.LastUpdatedAt,
			&n.LastUpdatedBy,
			&n.IsActive,
			&n.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", storeErr(err))
		}
		notifications = append(notifications, n)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", rows.Err())
	}
	return notifications, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		notification.NotificationID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Kind,
		notification.IsRead,
		notification.CreatedAt,
		notification.CreatedBy,
		notification.LastUpdatedAt,
		notification.LastUpdatedBy,
		notification.IsActive,
		notification.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", notification.NotificationID, storeErr(err))
	}
	return nil
}

func (r *PgxNotificationRepository) MarkRead(ctx context.Context, notificationID string, userID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE notification_id = $3 AND user_id = $2 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query, time.Now(), userID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", apperrors.ErrNotFound, notificationID)
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $2 AND is_read = FALSE AND is_active = TRUE
	`
	if _, err := r.pool.Exec(ctx, query, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to mark notifications read for user %s: %w", userID, storeErr(err))
	}
	return nil
}
