package dto

import (
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
)

// NotificationResponse is the outward representation of a notification.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Kind           domain.NotificationKind `json:"kind,omitempty"`
	IsRead         bool                    `json:"isRead"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToNotificationResponses maps domain notifications to their response form.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Title:          n.Title,
			Message:        n.Message,
			Kind:           n.Kind,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
		}
	}
	return out
}

// RejectTransporterRequest carries the optional reason sent to a rejected
// transporter.
type RejectTransporterRequest struct {
	Reason string `json:"reason"`
}
