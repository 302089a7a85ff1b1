package services

import (
	"context"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
)

// AuthSvcFacade issues tokens and resolves authenticated users.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)

	// GetUser resolves an active user by ID.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// TransporterSvcFacade is the vetting gate transporters pass before they can
// participate in request assignment.
type TransporterSvcFacade interface {
	// ListPendingTransporters retrieves unapproved transporters for review.
	// Privileged actors only.
	ListPendingTransporters(ctx context.Context, actorID string) ([]domain.User, error)

	// GetTransporterDetails retrieves a transporter together with its fleet
	// for the vetting review. Privileged actors only.
	GetTransporterDetails(ctx context.Context, actorID string, transporterID string) (*domain.User, []domain.Vehicle, error)

	// Approve marks the transporter approved. Idempotent: approving an
	// approved transporter succeeds without side effects.
	Approve(ctx context.Context, actorID string, transporterID string) (*domain.User, error)

	// Reject notifies the transporter that its application needs work. No
	// state change; may be repeated.
	Reject(ctx context.Context, actorID string, transporterID string, reason string) error
}

// VehicleSvcFacade manages a transporter's fleet.
type VehicleSvcFacade interface {
	CreateVehicle(ctx context.Context, actorID string, req dto.CreateVehicleRequest) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, actorID string, vehicleID string) (*domain.Vehicle, error)
	ListMyVehicles(ctx context.Context, actorID string) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, actorID string, vehicleID string, req dto.UpdateVehicleRequest) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, actorID string, vehicleID string) error
}

// NotificationSvcFacade persists and serves user notifications. Notify is
// fire-and-forget: failures are logged, never propagated.
type NotificationSvcFacade interface {
	Notify(ctx context.Context, userID string, title string, message string, kind domain.NotificationKind)
	ListMine(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID string, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
