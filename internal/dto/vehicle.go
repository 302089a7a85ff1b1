package dto

import (
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVehicleRequest registers a vehicle on a transporter's fleet.
type CreateVehicleRequest struct {
	Type        string          `json:"type"`
	Brand       string          `json:"brand" binding:"required,max=100"`
	Model       string          `json:"model" binding:"required,max=100"`
	PlateNumber string          `json:"plateNumber" binding:"required,max=20"`
	CapacityKg  decimal.Decimal `json:"capacityKg" binding:"required"`

	InsuranceExpiry  *time.Time `json:"insuranceExpiry"`
	InspectionExpiry *time.Time `json:"inspectionExpiry"`
	Description      string     `json:"description"`
}

// UpdateVehicleRequest is the enumerated partial update for a vehicle.
type UpdateVehicleRequest struct {
	Type             *string          `json:"type"`
	Brand            *string          `json:"brand"`
	Model            *string          `json:"model"`
	PlateNumber      *string          `json:"plateNumber"`
	CapacityKg       *decimal.Decimal `json:"capacityKg"`
	InsuranceExpiry  *time.Time       `json:"insuranceExpiry"`
	InspectionExpiry *time.Time       `json:"inspectionExpiry"`
	Status           *string          `json:"status"`
	Description      *string          `json:"description"`
}

// VehicleResponse is the outward representation of a vehicle.
type VehicleResponse struct {
	VehicleID   string               `json:"vehicleID"`
	OwnerID     string               `json:"ownerID"`
	Type        domain.VehicleType   `json:"type"`
	Brand       string               `json:"brand"`
	Model       string               `json:"model"`
	PlateNumber string               `json:"plateNumber"`
	CapacityKg  decimal.Decimal      `json:"capacityKg"`
	Status      domain.VehicleStatus `json:"status"`

	InsuranceExpiry  *time.Time `json:"insuranceExpiry,omitempty"`
	InspectionExpiry *time.Time `json:"inspectionExpiry,omitempty"`
	Description      string     `json:"description,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ToVehicleResponse maps a domain vehicle to its response form.
func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:        v.VehicleID,
		OwnerID:          v.OwnerID,
		Type:             v.Type,
		Brand:            v.Brand,
		Model:            v.Model,
		PlateNumber:      v.PlateNumber,
		CapacityKg:       v.CapacityKg,
		Status:           v.Status,
		InsuranceExpiry:  v.InsuranceExpiry,
		InspectionExpiry: v.InspectionExpiry,
		Description:      v.Description,
		CreatedAt:        v.CreatedAt,
	}
}

// ToVehicleResponses maps a slice of domain vehicles.
func ToVehicleResponses(vehicles []domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		out[i] = ToVehicleResponse(&vehicles[i])
	}
	return out
}
