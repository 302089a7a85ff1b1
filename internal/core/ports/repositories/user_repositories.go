package repositories

import (
	"context"
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by ID. Soft-deleted users are only
	// returned when includeDeleted is true.
	FindUserByID(ctx context.Context, userID string, includeDeleted bool) (*domain.User, error)

	// FindUserByEmail retrieves an active user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsersByRoles retrieves active users holding any of the given roles.
	ListUsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)

	// ListPendingTransporters retrieves unapproved TRANSPORTEUR users,
	// newest first.
	ListPendingTransporters(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// MarkTransporterApproved records the vetting decision on a transporter.
	MarkTransporterApproved(ctx context.Context, transporterID string, approvedBy string, approvedAt time.Time) error

	// SoftDeleteUser flags the user inactive and stamps the deletion time.
	SoftDeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error

	// RestoreUser clears the soft-delete flag. Returns apperrors.ErrNotFound
	// when the user does not exist or is currently active.
	RestoreUser(ctx context.Context, userID string, restoredBy string, now time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
