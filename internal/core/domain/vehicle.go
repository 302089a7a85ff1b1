package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleType categorizes a transporter's vehicle.
type VehicleType string

const (
	VehicleTruck     VehicleType = "TRUCK"
	VehicleVan       VehicleType = "VAN"
	VehicleMotorbike VehicleType = "MOTORBIKE"
	VehicleCar       VehicleType = "CAR"
	VehicleOther     VehicleType = "OTHER"
)

// Valid reports whether the vehicle type is a known value.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTruck, VehicleVan, VehicleMotorbike, VehicleCar, VehicleOther:
		return true
	}
	return false
}

// VehicleStatus is the operational state of a vehicle.
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "ACTIVE"
	VehicleInactive    VehicleStatus = "INACTIVE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

// Valid reports whether the vehicle status is a known value.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleActive, VehicleInactive, VehicleMaintenance:
		return true
	}
	return false
}

// Vehicle belongs to a transporter. Vehicles feed the vetting review and
// transporter profile display; the request lifecycle does not depend on them.
type Vehicle struct {
	VehicleID   string          `json:"vehicleID"`
	OwnerID     string          `json:"ownerID"`
	Type        VehicleType     `json:"type"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	PlateNumber string          `json:"plateNumber"`
	CapacityKg  decimal.Decimal `json:"capacityKg"` // > 0

	InsuranceExpiry  *time.Time `json:"insuranceExpiry,omitempty"`
	InspectionExpiry *time.Time `json:"inspectionExpiry,omitempty"`

	Status      VehicleStatus `json:"status"`
	Description string        `json:"description,omitempty"`
	AuditFields
	SoftDeleteFields
}

// IsInsuranceValid reports whether the insurance is present and unexpired.
func (v Vehicle) IsInsuranceValid(now time.Time) bool {
	return v.InsuranceExpiry != nil && !v.InsuranceExpiry.Before(now)
}

// IsInspectionValid reports whether the inspection is present and unexpired.
func (v Vehicle) IsInspectionValid(now time.Time) bool {
	return v.InspectionExpiry != nil && !v.InspectionExpiry.Before(now)
}
