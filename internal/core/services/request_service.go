package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// requestService drives the transport request lifecycle: creation with the
// escrow debit, assignment, the status machine, cancellation and soft delete.
type requestService struct {
	requestRepo     portsrepo.RequestRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
	walletRepo      portsrepo.WalletRepositoryFacade
	notificationSvc portssvc.NotificationSvcFacade
	docStore        portssvc.DocumentStore
}

// NewRequestService creates a new request service.
func NewRequestService(
	requestRepo portsrepo.RequestRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	notificationSvc portssvc.NotificationSvcFacade,
	docStore portssvc.DocumentStore,
) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo:     requestRepo,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		notificationSvc: notificationSvc,
		docStore:        docStore,
	}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

func (s *requestService) resolveActor(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	return actor, nil
}

// relationTo describes how the actor relates to the request for the
// authorization matrix.
func relationTo(actor *domain.User, request *domain.TransportRequest) Relation {
	return Relation{
		IsOwner:               request.ClientID == actor.UserID,
		IsAssignedTransporter: request.IsAssignedTo(actor.UserID),
		Vetted:                actor.IsVettedTransporter(),
	}
}

func (s *requestService) GetRequest(ctx context.Context, actorID string, requestID string) (*domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := Authorize(actor.Role, ActionViewRequest, relationTo(actor, request)); err != nil {
		return nil, err
	}
	// Vetted transporters only see their own missions and the open marketplace.
	if actor.Role.IsTransporter() && request.AssignedTransporterID != nil && !request.IsAssignedTo(actor.UserID) {
		return nil, fmt.Errorf("%w: request %s is assigned to another transporter", apperrors.ErrForbidden, requestID)
	}
	return request, nil
}

func (s *requestService) ListRequests(ctx context.Context, actorID string, params dto.ListRequestsParams) ([]domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	filter, err := buildRequestFilter(params)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.Role.IsPrivileged():
		// Privileged actors see everything; includeDeleted honored as given.
	case actor.Role.IsClient():
		filter.ClientID = actor.UserID
		filter.IncludeDeleted = false
	case actor.Role.IsTransporter():
		if !actor.IsVettedTransporter() {
			return nil, fmt.Errorf("%w: transporter %s is not approved", apperrors.ErrForbidden, actor.UserID)
		}
		filter.VisibleToTransporter = actor.UserID
		filter.IncludeDeleted = false
	default:
		return nil, fmt.Errorf("%w: role %s may not list requests", apperrors.ErrForbidden, actor.Role)
	}

	requests, err := s.requestRepo.ListRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	if requests == nil {
		return []domain.TransportRequest{}, nil
	}
	return requests, nil
}

func (s *requestService) ListAvailableRequests(ctx context.Context, actorID string, params dto.ListRequestsParams) ([]domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsVettedTransporter() {
		return nil, fmt.Errorf("%w: only approved transporters browse available requests", apperrors.ErrForbidden)
	}

	filter, err := buildRequestFilter(params)
	if err != nil {
		return nil, err
	}
	filter.AvailableOnly = true
	filter.IncludeDeleted = false

	requests, err := s.requestRepo.ListRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list available requests: %w", err)
	}
	if requests == nil {
		return []domain.TransportRequest{}, nil
	}
	return requests, nil
}

func (s *requestService) ListAssignedRequests(ctx context.Context, actorID string) ([]domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsVettedTransporter() {
		return nil, fmt.Errorf("%w: only approved transporters have missions", apperrors.ErrForbidden)
	}
	requests, err := s.requestRepo.ListRequests(ctx, portsrepo.RequestFilter{TransporterID: actor.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned requests: %w", err)
	}
	if requests == nil {
		return []domain.TransportRequest{}, nil
	}
	return requests, nil
}

func (s *requestService) GetStatusHistory(ctx context.Context, actorID string, requestID string) ([]domain.StatusHistoryEntry, error) {
	// Visibility follows GetRequest.
	if _, err := s.GetRequest(ctx, actorID, requestID); err != nil {
		return nil, err
	}
	entries, err := s.requestRepo.ListStatusHistory(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history for request %s: %w", requestID, err)
	}
	if entries == nil {
		return []domain.StatusHistoryEntry{}, nil
	}
	return entries, nil
}

func (s *requestService) CreateRequest(ctx context.Context, actorID string, req dto.CreateTransportRequestRequest) (*domain.TransportRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor.Role, ActionCreateRequest, Relation{}); err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Weight.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: weight must be positive", apperrors.ErrValidation)
	}
	if req.Volume.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: volume must be positive", apperrors.ErrValidation)
	}
	if !req.PreferredPickupDate.After(now) {
		return nil, fmt.Errorf("%w: preferred pickup date must be in the future", apperrors.ErrValidation)
	}
	if req.EstimatedPrice != nil && req.EstimatedPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: estimated price must be positive", apperrors.ErrValidation)
	}

	merchandiseType := domain.MerchandiseGeneral
	if req.MerchandiseType != "" {
		merchandiseType = domain.MerchandiseType(req.MerchandiseType)
		if !merchandiseType.Valid() {
			return nil, fmt.Errorf("%w: unknown merchandise type %q", apperrors.ErrValidation, req.MerchandiseType)
		}
	}
	priority := domain.PriorityNormal
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, req.Priority)
		}
	}
	var frequency *domain.RecurringFrequency
	if req.IsRecurring {
		if req.RecurringFrequency == "" {
			return nil, fmt.Errorf("%w: recurring requests need a frequency", apperrors.ErrValidation)
		}
		f := domain.RecurringFrequency(req.RecurringFrequency)
		if !f.Valid() {
			return nil, fmt.Errorf("%w: unknown recurring frequency %q", apperrors.ErrValidation, req.RecurringFrequency)
		}
		frequency = &f
	}

	request := domain.TransportRequest{
		RequestID: uuid.NewString(),
		ClientID:  actor.UserID,

		Title:                  req.Title,
		MerchandiseType:        merchandiseType,
		MerchandiseDescription: req.MerchandiseDescription,
		Weight:                 req.Weight,
		Volume:                 req.Volume,

		PickupAddress:       req.PickupAddress,
		PickupCity:          req.PickupCity,
		PickupCoordinates:   req.PickupCoordinates,
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryCity:        req.DeliveryCity,
		DeliveryCoordinates: req.DeliveryCoordinates,

		PreferredPickupDate:   req.PreferredPickupDate,
		PreferredDeliveryDate: req.PreferredDeliveryDate,

		Status:   domain.StatusPending,
		Priority: priority,

		SpecialInstructions: req.SpecialInstructions,
		EstimatedPrice:      req.EstimatedPrice,
		IsRecurring:         req.IsRecurring,
		RecurringFrequency:  frequency,

		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		RecipientEmail: req.RecipientEmail,

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
		SoftDeleteFields: domain.SoftDeleteFields{IsActive: true},
	}

	// The escrow debit is taken upfront when a price is given. The early
	// balance check keeps the common failure cheap; the storage transaction
	// re-checks so a concurrent spender cannot slip through.
	var escrow *portsrepo.EscrowDebit
	if req.EstimatedPrice != nil {
		wallet, err := s.walletRepo.FindOrCreateWalletByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get wallet for user %s: %w", actor.UserID, err)
		}
		if wallet.Balance.LessThan(*req.EstimatedPrice) {
			return nil, fmt.Errorf("%w: balance %s does not cover estimated price %s",
				apperrors.ErrInsufficientFunds, wallet.Balance.String(), req.EstimatedPrice.String())
		}
		escrow = &portsrepo.EscrowDebit{
			WalletID: wallet.WalletID,
			Entry: newLedgerEntry(wallet.WalletID, domain.EntryDebit, *req.EstimatedPrice,
				fmt.Sprintf("Paiement demande: %s", request.Title), request.RequestID, actor.UserID),
		}
	}

	notifications, err := s.buildStaffNotifications(ctx, &request, actor)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveRequest(ctx, request, escrow, notifications); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logger.Info("transport request created",
		slog.String("request_id", request.RequestID),
		slog.String("client_id", actor.UserID),
		slog.Bool("escrow", escrow != nil))
	return &request, nil
}

// buildStaffNotifications prepares one NEW_REQUEST notification row per
// privileged user. The rows commit inside the creation transaction.
func (s *requestService) buildStaffNotifications(ctx context.Context, request *domain.TransportRequest, client *domain.User) ([]domain.Notification, error) {
	staff, err := s.userRepo.ListUsersByRoles(ctx, []domain.Role{domain.RoleAdmin, domain.RoleDataAdmin, domain.RoleModerator})
	if err != nil {
		return nil, fmt.Errorf("failed to list privileged users: %w", err)
	}
	now := time.Now()
	notifications := make([]domain.Notification, 0, len(staff))
	for _, u := range staff {
		notifications = append(notifications, domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         u.UserID,
			Title:          "Nouvelle demande de transport",
			Message:        fmt.Sprintf("%s a créé la demande %q (%s → %s)", client.DisplayName(), request.Title, request.PickupCity, request.DeliveryCity),
			Kind:           domain.NotificationNewRequest,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     client.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: client.UserID,
			},
			SoftDeleteFields: domain.SoftDeleteFields{IsActive: true},
		})
	}
	return notifications, nil
}

func (s *requestService) UpdateRequest(ctx context.Context, actorID string, requestID string, req dto.UpdateTransportRequestRequest) (*domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := Authorize(actor.Role, ActionEditRequest, relationTo(actor, request)); err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyTerminal, requestID, request.Status)
	}

	if req.Title != nil {
		request.Title = *req.Title
	}
	if req.MerchandiseType != nil {
		mt := domain.MerchandiseType(*req.MerchandiseType)
		if !mt.Valid() {
			return nil, fmt.Errorf("%w: unknown merchandise type %q", apperrors.ErrValidation, *req.MerchandiseType)
		}
		request.MerchandiseType = mt
	}
	if req.MerchandiseDescription != nil {
		request.MerchandiseDescription = *req.MerchandiseDescription
	}
	if req.Weight != nil {
		if req.Weight.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: weight must be positive", apperrors.ErrValidation)
		}
		request.Weight = *req.Weight
	}
	if req.Volume != nil {
		if req.Volume.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: volume must be positive", apperrors.ErrValidation)
		}
		request.Volume = *req.Volume
	}
	if req.PickupAddress != nil {
		request.PickupAddress = *req.PickupAddress
	}
	if req.PickupCity != nil {
		request.PickupCity = *req.PickupCity
	}
	if req.DeliveryAddress != nil {
		request.DeliveryAddress = *req.DeliveryAddress
	}
	if req.DeliveryCity != nil {
		request.DeliveryCity = *req.DeliveryCity
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, *req.Priority)
		}
		request.Priority = p
	}
	if req.SpecialInstructions != nil {
		request.SpecialInstructions = *req.SpecialInstructions
	}
	if req.EstimatedPrice != nil {
		if req.EstimatedPrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: estimated price must be positive", apperrors.ErrValidation)
		}
		request.EstimatedPrice = req.EstimatedPrice
	}

	request.LastUpdatedAt = time.Now()
	request.LastUpdatedBy = actor.UserID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		return nil, fmt.Errorf("failed to update request %s: %w", requestID, err)
	}
	return request, nil
}

func (s *requestService) Assign(ctx context.Context, actorID string, requestID string, transporterID *string) (*domain.TransportRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := Authorize(actor.Role, ActionAssignRequest, relationTo(actor, request)); err != nil {
		return nil, err
	}

	// Privileged actors name the transporter; transporter actors always
	// self-assign, any supplied reference is ignored.
	var transporter *domain.User
	if actor.Role.IsTransporter() {
		transporter = actor
	} else {
		if transporterID == nil || *transporterID == "" {
			return nil, fmt.Errorf("%w: transporterID is required", apperrors.ErrValidation)
		}
		transporter, err = s.userRepo.FindUserByID(ctx, *transporterID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve transporter %s: %w", *transporterID, err)
		}
		if !transporter.Role.IsTransporter() {
			return nil, fmt.Errorf("%w: user %s is not a transporter", apperrors.ErrValidation, transporter.UserID)
		}
		if !transporter.IsApproved {
			return nil, fmt.Errorf("%w: transporter %s is not approved", apperrors.ErrValidation, transporter.UserID)
		}
	}

	if request.AssignedTransporterID != nil {
		return nil, fmt.Errorf("%w: request %s", apperrors.ErrAlreadyAssigned, requestID)
	}
	if !request.Status.CanTransitionTo(domain.StatusAssigned) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, request.Status, domain.StatusAssigned)
	}

	history := newHistoryEntry(requestID, request.Status, domain.StatusAssigned, actor.UserID,
		fmt.Sprintf("Transporteur assigné: %s", transporter.DisplayName()))

	updated, err := s.requestRepo.AssignTransporter(ctx, requestID, transporter.UserID, history)
	if err != nil {
		return nil, fmt.Errorf("failed to assign request %s: %w", requestID, err)
	}

	logger.Info("transporter assigned",
		slog.String("request_id", requestID),
		slog.String("transporter_id", transporter.UserID),
		slog.String("by", actor.UserID))

	s.notificationSvc.Notify(ctx, transporter.UserID,
		"Nouvelle mission",
		fmt.Sprintf("La demande %q vous a été assignée (%s → %s)", updated.Title, updated.PickupCity, updated.DeliveryCity),
		domain.NotificationAssignedMission)

	return updated, nil
}

func (s *requestService) ChangeStatus(ctx context.Context, actorID string, requestID string, newStatus domain.RequestStatus, comment string) (*domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := Authorize(actor.Role, ActionTransitionRequest, relationTo(actor, request)); err != nil {
		return nil, err
	}
	if actor.Role.IsTransporter() && !TransporterMayTarget(newStatus) {
		return nil, fmt.Errorf("%w: transporters may only start or deliver a mission", apperrors.ErrForbidden)
	}
	return s.transition(ctx, actor, request, newStatus, comment)
}

// transition runs the shared status machine checks and persists the move.
// Authorization is the caller's responsibility.
func (s *requestService) transition(ctx context.Context, actor *domain.User, request *domain.TransportRequest, newStatus domain.RequestStatus, comment string) (*domain.TransportRequest, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, newStatus)
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyTerminal, request.RequestID, request.Status)
	}
	if !request.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, request.Status, newStatus)
	}

	history := newHistoryEntry(request.RequestID, request.Status, newStatus, actor.UserID, comment)
	updated, err := s.requestRepo.UpdateStatus(ctx, request.RequestID, history)
	if err != nil {
		return nil, fmt.Errorf("failed to change status of request %s: %w", request.RequestID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("request status changed",
		slog.String("request_id", request.RequestID),
		slog.String("old_status", string(history.OldStatus)),
		slog.String("new_status", string(history.NewStatus)),
		slog.String("by", actor.UserID))
	return updated, nil
}

func (s *requestService) Cancel(ctx context.Context, actorID string, requestID string, reason string) (*domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := Authorize(actor.Role, ActionCancelRequest, relationTo(actor, request)); err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: request %s is %s", apperrors.ErrAlreadyTerminal, requestID, request.Status)
	}
	if request.Status == domain.StatusInProgress {
		return nil, fmt.Errorf("%w: request %s", apperrors.ErrCannotCancelInProgress, requestID)
	}
	if reason == "" {
		reason = "Annulée par le client"
	}
	// The escrow debit is not refunded on cancellation.
	return s.transition(ctx, actor, request, domain.StatusCancelled, reason)
}

func (s *requestService) Remove(ctx context.Context, actorID string, requestID string) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if err := Authorize(actor.Role, ActionDeleteRequest, relationTo(actor, request)); err != nil {
		return err
	}
	if request.Status == domain.StatusInProgress {
		return fmt.Errorf("%w: cannot delete a request in progress", apperrors.ErrValidation)
	}
	if err := s.requestRepo.SoftDeleteRequest(ctx, requestID, actor.UserID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete request %s: %w", requestID, err)
	}
	return nil
}

func (s *requestService) Restore(ctx context.Context, actorID string, requestID string) (*domain.TransportRequest, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor.Role, ActionRestoreRequest, Relation{}); err != nil {
		return nil, err
	}
	if err := s.requestRepo.RestoreRequest(ctx, requestID, actor.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to restore request %s: %w", requestID, err)
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get restored request %s: %w", requestID, err)
	}
	return request, nil
}

func (s *requestService) Purge(ctx context.Context, actorID string, requestID string) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}
	if err := Authorize(actor.Role, ActionPurgeRequest, Relation{}); err != nil {
		return err
	}
	request, err := s.requestRepo.FindRequestByID(ctx, requestID, true)
	if err != nil {
		return fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if request.IsActive {
		return fmt.Errorf("%w: request %s is not deleted", apperrors.ErrValidation, requestID)
	}
	if err := s.requestRepo.HardDeleteRequest(ctx, requestID); err != nil {
		return fmt.Errorf("failed to purge request %s: %w", requestID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("request purged",
		slog.String("request_id", requestID), slog.String("purged_by", actor.UserID))
	return nil
}

func (s *requestService) AttachDocument(ctx context.Context, actorID string, requestID string, blob []byte, metadata map[string]string) (string, error) {
	request, err := s.GetRequest(ctx, actorID, requestID)
	if err != nil {
		return "", err
	}
	if len(blob) == 0 {
		return "", fmt.Errorf("%w: empty document", apperrors.ErrValidation)
	}
	ref, err := s.docStore.Attach(ctx, request.RequestID, blob, metadata)
	if err != nil {
		return "", fmt.Errorf("failed to attach document to request %s: %w", requestID, err)
	}
	return ref, nil
}

// buildRequestFilter translates listing query params into a repository filter.
func buildRequestFilter(params dto.ListRequestsParams) (portsrepo.RequestFilter, error) {
	filter := portsrepo.RequestFilter{
		City:           params.City,
		ClientID:       params.ClientID,
		TransporterID:  params.TransporterID,
		IncludeDeleted: params.IncludeDeleted,
	}
	if params.Status != "" {
		status := domain.RequestStatus(params.Status)
		if !status.Valid() {
			return filter, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	if params.Priority != "" {
		priority := domain.Priority(params.Priority)
		if !priority.Valid() {
			return filter, fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, params.Priority)
		}
		filter.Priority = &priority
	}
	return filter, nil
}

// newHistoryEntry builds an audit row for a status transition.
func newHistoryEntry(requestID string, oldStatus, newStatus domain.RequestStatus, changedBy, comment string) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		EntryID:   uuid.NewString(),
		RequestID: requestID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
}
