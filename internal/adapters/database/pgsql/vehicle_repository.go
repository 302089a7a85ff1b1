package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
)

const vehicleColumns = `vehicle_id, owner_id, vehicle_type, brand, model, plate_number, capacity_kg,
	insurance_expiry, inspection_expiry, status, description,
	created_at, created_by, last_updated_at, last_updated_by, is_active, deleted_at`

type PgxVehicleRepository struct {
	pool *pgxpool.Pool
}

func newPgxVehicleRepository(pool *pgxpool.Pool) *PgxVehicleRepository {
	return &PgxVehicleRepository{pool: pool}
}

var _ portsrepo.VehicleRepositoryFacade = (*PgxVehicleRepository)(nil)

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.VehicleID,
		&v.OwnerID,
		&v.Type,
		&v.Brand,
		&v.Model,
		&v.PlateNumber,
		&v.CapacityKg,
		&v.InsuranceExpiry,
		&v.InspectionExpiry,
		&v.Status,
		&v.Description,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
		&v.IsActive,
		&v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string, includeDeleted bool) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1`
	if !includeDeleted {
		query += ` AND is_active = TRUE`
	}
	vehicle, err := scanVehicle(r.pool.QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: vehicle %s", apperrors.ErrNotFound, vehicleID)
		}
		return nil, fmt.Errorf("failed to find vehicle %s: %w", vehicleID, storeErr(err))
	}
	return vehicle, nil
}

func (r *PgxVehicleRepository) ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE owner_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", storeErr(err))
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", storeErr(err))
		}
		vehicles = append(vehicles, *vehicle)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", rows.Err())
	}
	return vehicles, nil
}

func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.pool.Exec(ctx, query,
		vehicle.VehicleID,
		vehicle.OwnerID,
		vehicle.Type,
		vehicle.Brand,
		vehicle.Model,
		vehicle.PlateNumber,
		vehicle.CapacityKg,
		vehicle.InsuranceExpiry,
		vehicle.InspectionExpiry,
		vehicle.Status,
		vehicle.Description,
		vehicle.CreatedAt,
		vehicle.CreatedBy,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
		vehicle.IsActive,
		vehicle.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: plate number %s already registered", apperrors.ErrDuplicate, vehicle.PlateNumber)
		}
		return fmt.Errorf("failed to save vehicle: %w", storeErr(err))
	}
	return nil
}

func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET vehicle_type = $1, brand = $2, model = $3, plate_number = $4, capacity_kg = $5,
			insurance_expiry = $6, inspection_expiry = $7, status = $8, description = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE vehicle_id = $12 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		vehicle.Type,
		vehicle.Brand,
		vehicle.Model,
		vehicle.PlateNumber,
		vehicle.CapacityKg,
		vehicle.InsuranceExpiry,
		vehicle.InspectionExpiry,
		vehicle.Status,
		vehicle.Description,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
		vehicle.VehicleID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: plate number %s already registered", apperrors.ErrDuplicate, vehicle.PlateNumber)
		}
		return fmt.Errorf("failed to update vehicle %s: %w", vehicle.VehicleID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vehicle %s", apperrors.ErrNotFound, vehicle.VehicleID)
	}
	return nil
}

func (r *PgxVehicleRepository) SoftDeleteVehicle(ctx context.Context, vehicleID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE vehicles
		SET is_active = FALSE, deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE vehicle_id = $3 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, deletedBy, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", vehicleID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vehicle %s", apperrors.ErrNotFound, vehicleID)
	}
	return nil
}
