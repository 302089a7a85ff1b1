package services

import (
	"context"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
)

// RequestReaderSvc defines read operations on transport requests. Every
// operation authorizes the actor before touching data.
type RequestReaderSvc interface {
	// GetRequest retrieves a request visible to the actor.
	GetRequest(ctx context.Context, actorID string, requestID string) (*domain.TransportRequest, error)

	// ListRequests retrieves requests scoped to the actor's role: clients
	// see their own, vetted transporters see assigned plus unassigned,
	// privileged actors see everything (includeDeleted honored for them only).
	ListRequests(ctx context.Context, actorID string, params dto.ListRequestsParams) ([]domain.TransportRequest, error)

	// ListAvailableRequests retrieves unassigned PENDING/OFFERS_RECEIVED
	// requests for a vetted transporter.
	ListAvailableRequests(ctx context.Context, actorID string, params dto.ListRequestsParams) ([]domain.TransportRequest, error)

	// ListAssignedRequests retrieves the transporter's missions.
	ListAssignedRequests(ctx context.Context, actorID string) ([]domain.TransportRequest, error)

	// GetStatusHistory retrieves the audit trail of a request visible to
	// the actor.
	GetStatusHistory(ctx context.Context, actorID string, requestID string) ([]domain.StatusHistoryEntry, error)
}

// RequestWriterSvc defines the lifecycle mutations of a transport request.
type RequestWriterSvc interface {
	// CreateRequest validates the payload, takes the escrow debit when an
	// estimated price is given, inserts the request in PENDING and notifies
	// privileged users, atomically.
	CreateRequest(ctx context.Context, actorID string, req dto.CreateTransportRequestRequest) (*domain.TransportRequest, error)

	// UpdateRequest applies an enumerated partial update. Owner or
	// administrator only; forbidden on terminal requests.
	UpdateRequest(ctx context.Context, actorID string, requestID string, req dto.UpdateTransportRequestRequest) (*domain.TransportRequest, error)

	// Assign sets the transporter and moves the request to ASSIGNED.
	// Privileged actors name any vetted transporter; transporter actors
	// always self-assign.
	Assign(ctx context.Context, actorID string, requestID string, transporterID *string) (*domain.TransportRequest, error)

	// ChangeStatus moves the request through the status machine and appends
	// the audit row. No other side effects.
	ChangeStatus(ctx context.Context, actorID string, requestID string, newStatus domain.RequestStatus, comment string) (*domain.TransportRequest, error)

	// Cancel is a convenience wrapper over ChangeStatus targeting CANCELLED.
	// Fails with apperrors.ErrAlreadyTerminal on terminal requests and
	// apperrors.ErrCannotCancelInProgress on IN_PROGRESS ones.
	Cancel(ctx context.Context, actorID string, requestID string, reason string) (*domain.TransportRequest, error)

	// Remove soft-deletes the request. Forbidden while IN_PROGRESS.
	Remove(ctx context.Context, actorID string, requestID string) error

	// Restore reverses a soft delete. Privileged actors only; fails when
	// the request is currently active.
	Restore(ctx context.Context, actorID string, requestID string) (*domain.TransportRequest, error)

	// Purge physically removes a soft-deleted request. Irreversible;
	// administrators only. Fails with apperrors.ErrValidation when the
	// request is still active.
	Purge(ctx context.Context, actorID string, requestID string) error

	// AttachDocument stores a blob with the document collaborator on behalf
	// of an actor allowed to see the request, returning the document ref.
	AttachDocument(ctx context.Context, actorID string, requestID string, blob []byte, metadata map[string]string) (string, error)
}

// RequestSvcFacade combines all request service interfaces.
type RequestSvcFacade interface {
	RequestReaderSvc
	RequestWriterSvc
}
