package repositories

import (
	"context"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
)

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	// ListNotificationsByUser retrieves a user's notifications, newest
	// first, capped at limit.
	ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	// SaveNotification persists a notification row.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, notificationID string, userID string) error

	// MarkAllRead marks every unread notification of the user as read.
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
