package repositories

import (
	"context"
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
)

// VehicleReader defines read operations for vehicles.
type VehicleReader interface {
	// FindVehicleByID retrieves a vehicle. Soft-deleted vehicles are only
	// returned when includeDeleted is true.
	FindVehicleByID(ctx context.Context, vehicleID string, includeDeleted bool) (*domain.Vehicle, error)

	// ListVehiclesByOwner retrieves a transporter's active vehicles, newest first.
	ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
}

// VehicleWriter defines write operations for vehicles.
type VehicleWriter interface {
	// SaveVehicle persists a new vehicle.
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// UpdateVehicle persists edited vehicle fields.
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error

	// SoftDeleteVehicle flags the vehicle inactive and stamps the deletion time.
	SoftDeleteVehicle(ctx context.Context, vehicleID string, deletedBy string, now time.Time) error
}

// VehicleRepositoryFacade combines all vehicle repository interfaces.
type VehicleRepositoryFacade interface {
	VehicleReader
	VehicleWriter
}
