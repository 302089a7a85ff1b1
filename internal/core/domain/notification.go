package domain

// NotificationKind tags a notification with the event that produced it.
type NotificationKind string

const (
	NotificationNewRequest      NotificationKind = "NEW_REQUEST"
	NotificationAssignedMission NotificationKind = "ASSIGNED_MISSION"
	NotificationAccountApproved NotificationKind = "ACCOUNT_APPROVED"
)

// Notification is a simple persisted message for a user.
// Creation is fire-and-forget from lifecycle events.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Kind           NotificationKind `json:"kind,omitempty"`
	IsRead         bool             `json:"isRead"`
	AuditFields
	SoftDeleteFields
}
