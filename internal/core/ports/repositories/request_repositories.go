package repositories

import (
	"context"
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
)

// RequestFilter narrows request listings. Zero values mean "no constraint".
type RequestFilter struct {
	Status   *domain.RequestStatus
	Priority *domain.Priority
	// City matches pickup or delivery city, case-insensitive substring.
	City string

	// ClientID restricts to requests owned by the given client.
	ClientID string
	// TransporterID restricts to requests assigned to the given transporter.
	TransporterID string
	// VisibleToTransporter restricts to requests assigned to the given
	// transporter or not assigned at all (the transporter marketplace view).
	VisibleToTransporter string
	// AvailableOnly restricts to unassigned requests in PENDING or
	// OFFERS_RECEIVED status.
	AvailableOnly bool

	IncludeDeleted bool
}

// EscrowDebit carries the upfront balance deduction taken at request
// creation when an estimated price is given.
type EscrowDebit struct {
	WalletID string
	Entry    domain.LedgerEntry
}

// RequestReader defines read operations for transport requests.
type RequestReader interface {
	// FindRequestByID retrieves a request. Soft-deleted requests are only
	// returned when includeDeleted is true.
	FindRequestByID(ctx context.Context, requestID string, includeDeleted bool) (*domain.TransportRequest, error)

	// ListRequests retrieves requests matching the filter, ordered by
	// creation time descending.
	ListRequests(ctx context.Context, filter RequestFilter) ([]domain.TransportRequest, error)

	// ListStatusHistory retrieves the audit trail for a request, newest first.
	ListStatusHistory(ctx context.Context, requestID string) ([]domain.StatusHistoryEntry, error)
}

// RequestWriter defines write operations for transport requests. Multi-record
// operations execute in a single database transaction; partial application is
// prevented by the storage layer, not by compensation.
type RequestWriter interface {
	// SaveRequest inserts the request, applies the escrow debit (nil when no
	// estimated price was given) and inserts the notification rows, all
	// atomically. The escrow debit fails the whole transaction with
	// apperrors.ErrInsufficientFunds when the balance does not cover it.
	SaveRequest(ctx context.Context, request domain.TransportRequest, escrow *EscrowDebit, notifications []domain.Notification) error

	// AssignTransporter sets the transporter, moves the request to ASSIGNED
	// and appends the history row in one transaction. The assignment is a
	// conditional update on "assigned_transporter_id IS NULL": when two
	// callers race, exactly one succeeds and the other observes
	// apperrors.ErrAlreadyAssigned.
	AssignTransporter(ctx context.Context, requestID string, transporterID string, history domain.StatusHistoryEntry) (*domain.TransportRequest, error)

	// UpdateStatus moves the request from history.OldStatus to
	// history.NewStatus and appends the history row in one transaction. The
	// update is conditional on the current status still being
	// history.OldStatus; a lost race surfaces as
	// apperrors.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, requestID string, history domain.StatusHistoryEntry) (*domain.TransportRequest, error)

	// UpdateRequest persists edited request fields.
	UpdateRequest(ctx context.Context, request domain.TransportRequest) error

	// SoftDeleteRequest flags the request inactive and stamps the deletion time.
	SoftDeleteRequest(ctx context.Context, requestID string, deletedBy string, now time.Time) error

	// RestoreRequest clears the soft-delete flag. Returns
	// apperrors.ErrNotFound when the request does not exist and
	// apperrors.ErrValidation when it is currently active.
	RestoreRequest(ctx context.Context, requestID string, restoredBy string, now time.Time) error

	// HardDeleteRequest physically removes the request. Irreversible;
	// privileged cleanup paths only.
	HardDeleteRequest(ctx context.Context, requestID string) error
}

// RequestRepositoryFacade combines all request repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
