package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// transporterService implements the vetting gate: review of pending
// transporters, approval and rejection.
type transporterService struct {
	userRepo        portsrepo.UserRepositoryFacade
	vehicleRepo     portsrepo.VehicleRepositoryFacade
	notificationSvc portssvc.NotificationSvcFacade
	mailSender      portssvc.MailSender
}

// NewTransporterService creates a new transporter vetting service.
func NewTransporterService(
	userRepo portsrepo.UserRepositoryFacade,
	vehicleRepo portsrepo.VehicleRepositoryFacade,
	notificationSvc portssvc.NotificationSvcFacade,
	mailSender portssvc.MailSender,
) portssvc.TransporterSvcFacade {
	return &transporterService{
		userRepo:        userRepo,
		vehicleRepo:     vehicleRepo,
		notificationSvc: notificationSvc,
		mailSender:      mailSender,
	}
}

var _ portssvc.TransporterSvcFacade = (*transporterService)(nil)

// requireVetter resolves the actor and authorizes vetting operations.
func (s *transporterService) requireVetter(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	if err := Authorize(actor.Role, ActionVetTransporter, Relation{}); err != nil {
		return nil, err
	}
	return actor, nil
}

// findTransporter resolves a user and checks the TRANSPORTEUR role. A user of
// another role is reported as not found, not as a validation problem.
func (s *transporterService) findTransporter(ctx context.Context, transporterID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, transporterID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transporter %s: %w", transporterID, err)
	}
	if !user.Role.IsTransporter() {
		return nil, fmt.Errorf("%w: no transporter with id %s", apperrors.ErrNotFound, transporterID)
	}
	return user, nil
}

func (s *transporterService) ListPendingTransporters(ctx context.Context, actorID string) ([]domain.User, error) {
	if _, err := s.requireVetter(ctx, actorID); err != nil {
		return nil, err
	}
	pending, err := s.userRepo.ListPendingTransporters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transporters: %w", err)
	}
	if pending == nil {
		return []domain.User{}, nil
	}
	return pending, nil
}

func (s *transporterService) GetTransporterDetails(ctx context.Context, actorID string, transporterID string) (*domain.User, []domain.Vehicle, error) {
	if _, err := s.requireVetter(ctx, actorID); err != nil {
		return nil, nil, err
	}
	transporter, err := s.findTransporter(ctx, transporterID)
	if err != nil {
		return nil, nil, err
	}
	vehicles, err := s.vehicleRepo.ListVehiclesByOwner(ctx, transporterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list vehicles for transporter %s: %w", transporterID, err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return transporter, vehicles, nil
}

func (s *transporterService) Approve(ctx context.Context, actorID string, transporterID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.requireVetter(ctx, actorID)
	if err != nil {
		return nil, err
	}
	transporter, err := s.findTransporter(ctx, transporterID)
	if err != nil {
		return nil, err
	}

	// Approving an approved transporter succeeds without side effects.
	if transporter.IsApproved {
		return transporter, nil
	}

	now := time.Now()
	if err := s.userRepo.MarkTransporterApproved(ctx, transporterID, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to approve transporter %s: %w", transporterID, err)
	}
	transporter.IsApproved = true
	transporter.ApprovedBy = &actor.UserID
	transporter.ApprovedAt = &now

	logger.Info("transporter approved",
		slog.String("transporter_id", transporterID),
		slog.String("approved_by", actor.UserID))

	s.notificationSvc.Notify(ctx, transporterID,
		"Compte approuvé",
		"Votre compte transporteur a été approuvé. Vous pouvez maintenant accepter des missions.",
		domain.NotificationAccountApproved)

	// Mail is best-effort: a provider outage never undoes an approval.
	if err := s.mailSender.Send(ctx, portssvc.MailTransporterApproved, transporter.Email, map[string]string{
		"name": transporter.DisplayName(),
	}); err != nil {
		logger.Error("approval mail failed",
			slog.String("transporter_id", transporterID),
			slog.String("error", err.Error()))
	}

	return transporter, nil
}

func (s *transporterService) Reject(ctx context.Context, actorID string, transporterID string, reason string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireVetter(ctx, actorID); err != nil {
		return err
	}
	transporter, err := s.findTransporter(ctx, transporterID)
	if err != nil {
		return err
	}

	if reason == "" {
		reason = "Votre dossier est incomplet. Merci de le compléter et de soumettre à nouveau."
	}

	// Rejection only informs the transporter; no account state changes and
	// the operation may be repeated.
	if err := s.mailSender.Send(ctx, portssvc.MailTransporterRejected, transporter.Email, map[string]string{
		"name":   transporter.DisplayName(),
		"reason": reason,
	}); err != nil {
		logger.Error("rejection mail failed",
			slog.String("transporter_id", transporterID),
			slog.String("error", err.Error()))
	}

	logger.Info("transporter rejected",
		slog.String("transporter_id", transporterID),
		slog.String("by", actorID))
	return nil
}
