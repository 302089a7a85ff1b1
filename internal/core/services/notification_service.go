package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// notificationService persists and serves user notifications.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Notify is fire-and-forget: a notification that cannot be stored is logged
// and dropped, the triggering operation carries on.
func (s *notificationService) Notify(ctx context.Context, userID string, title string, message string, kind domain.NotificationKind) {
	now := time.Now()
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Title:          title,
		Message:        message,
		Kind:           kind,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		SoftDeleteFields: domain.SoftDeleteFields{IsActive: true},
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to store notification",
			slog.String("user_id", userID),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
	}
}

func (s *notificationService) ListMine(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read for user %s: %w", userID, err)
	}
	return nil
}
