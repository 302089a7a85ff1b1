package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
)

// vehicleService manages a transporter's fleet.
type vehicleService struct {
	vehicleRepo portsrepo.VehicleRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(vehicleRepo portsrepo.VehicleRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.VehicleSvcFacade {
	return &vehicleService{vehicleRepo: vehicleRepo, userRepo: userRepo}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

func (s *vehicleService) CreateVehicle(ctx context.Context, actorID string, req dto.CreateVehicleRequest) (*domain.Vehicle, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	if !actor.Role.IsTransporter() {
		return nil, fmt.Errorf("%w: only transporters register vehicles", apperrors.ErrForbidden)
	}
	if req.CapacityKg.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidation)
	}

	vehicleType := domain.VehicleTruck
	if req.Type != "" {
		vehicleType = domain.VehicleType(req.Type)
		if !vehicleType.Valid() {
			return nil, fmt.Errorf("%w: unknown vehicle type %q", apperrors.ErrValidation, req.Type)
		}
	}

	now := time.Now()
	vehicle := domain.Vehicle{
		VehicleID:   uuid.NewString(),
		OwnerID:     actor.UserID,
		Type:        vehicleType,
		Brand:       req.Brand,
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		CapacityKg:  req.CapacityKg,

		InsuranceExpiry:  req.InsuranceExpiry,
		InspectionExpiry: req.InspectionExpiry,

		Status:      domain.VehicleActive,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
		SoftDeleteFields: domain.SoftDeleteFields{IsActive: true},
	}

	if err := s.vehicleRepo.SaveVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return &vehicle, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, actorID string, vehicleID string) (*domain.Vehicle, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle %s: %w", vehicleID, err)
	}
	if vehicle.OwnerID != actor.UserID && !actor.Role.IsPrivileged() {
		return nil, fmt.Errorf("%w: vehicle %s belongs to another transporter", apperrors.ErrForbidden, vehicleID)
	}
	return vehicle, nil
}

func (s *vehicleService) ListMyVehicles(ctx context.Context, actorID string) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.ListVehiclesByOwner(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for owner %s: %w", actorID, err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, actorID string, vehicleID string, req dto.UpdateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, actorID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		t := domain.VehicleType(*req.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown vehicle type %q", apperrors.ErrValidation, *req.Type)
		}
		vehicle.Type = t
	}
	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.PlateNumber != nil {
		vehicle.PlateNumber = *req.PlateNumber
	}
	if req.CapacityKg != nil {
		if req.CapacityKg.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidation)
		}
		vehicle.CapacityKg = *req.CapacityKg
	}
	if req.InsuranceExpiry != nil {
		vehicle.InsuranceExpiry = req.InsuranceExpiry
	}
	if req.InspectionExpiry != nil {
		vehicle.InspectionExpiry = req.InspectionExpiry
	}
	if req.Status != nil {
		st := domain.VehicleStatus(*req.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown vehicle status %q", apperrors.ErrValidation, *req.Status)
		}
		vehicle.Status = st
	}
	if req.Description != nil {
		vehicle.Description = *req.Description
	}

	vehicle.LastUpdatedAt = time.Now()
	vehicle.LastUpdatedBy = actorID

	if err := s.vehicleRepo.UpdateVehicle(ctx, *vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle %s: %w", vehicleID, err)
	}
	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, actorID string, vehicleID string) error {
	if _, err := s.GetVehicle(ctx, actorID, vehicleID); err != nil {
		return err
	}
	if err := s.vehicleRepo.SoftDeleteVehicle(ctx, vehicleID, actorID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", vehicleID, err)
	}
	return nil
}
