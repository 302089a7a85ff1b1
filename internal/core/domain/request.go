package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the state of a transport request.
type RequestStatus string

const (
	StatusPending        RequestStatus = "PENDING"
	StatusOffersReceived RequestStatus = "OFFERS_RECEIVED"
	StatusAssigned       RequestStatus = "ASSIGNED"
	StatusInProgress     RequestStatus = "IN_PROGRESS"
	StatusDelivered      RequestStatus = "DELIVERED"
	StatusCancelled      RequestStatus = "CANCELLED"
)

// allowedTransitions is the full status machine. Terminal states map to an
// empty set. Any transition not listed here is rejected.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:        {StatusOffersReceived, StatusAssigned, StatusCancelled},
	StatusOffersReceived: {StatusAssigned, StatusPending, StatusCancelled},
	StatusAssigned:       {StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid reports whether the status is one of the known values.
func (s RequestStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the status machine permits s -> target.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// MerchandiseType categorizes the goods being shipped.
type MerchandiseType string

const (
	MerchandiseGeneral    MerchandiseType = "GENERAL"
	MerchandiseFragile    MerchandiseType = "FRAGILE"
	MerchandisePerishable MerchandiseType = "PERISHABLE"
	MerchandiseDangerous  MerchandiseType = "DANGEROUS"
	MerchandiseElectronic MerchandiseType = "ELECTRONIC"
	MerchandiseFurniture  MerchandiseType = "FURNITURE"
	MerchandiseFood       MerchandiseType = "FOOD"
	MerchandiseOther      MerchandiseType = "OTHER"
)

// Valid reports whether the merchandise type is a known value.
func (m MerchandiseType) Valid() bool {
	switch m {
	case MerchandiseGeneral, MerchandiseFragile, MerchandisePerishable, MerchandiseDangerous,
		MerchandiseElectronic, MerchandiseFurniture, MerchandiseFood, MerchandiseOther:
		return true
	}
	return false
}

// Priority is the urgency level of a request.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RecurringFrequency applies to recurring requests (PME/AGRICULTEUR use case).
type RecurringFrequency string

const (
	FrequencyDaily    RecurringFrequency = "DAILY"
	FrequencyWeekly   RecurringFrequency = "WEEKLY"
	FrequencyMonthly  RecurringFrequency = "MONTHLY"
	FrequencySeasonal RecurringFrequency = "SEASONAL"
)

// Valid reports whether the recurring frequency is a known value.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencySeasonal:
		return true
	}
	return false
}

// TransportRequest is the central entity of the marketplace: a shipment
// request from a client, optionally assigned to a vetted transporter.
//
// Invariants:
//   - AssignedTransporterID is non-nil only in ASSIGNED, IN_PROGRESS or
//     DELIVERED status.
//   - Once terminal (DELIVERED/CANCELLED) the record is immutable except for
//     soft delete and restore.
type TransportRequest struct {
	RequestID             string  `json:"requestID"`
	ClientID              string  `json:"clientID"`
	AssignedTransporterID *string `json:"assignedTransporterID,omitempty"`

	Title                  string          `json:"title"`
	MerchandiseType        MerchandiseType `json:"merchandiseType"`
	MerchandiseDescription string          `json:"merchandiseDescription"`
	Weight                 decimal.Decimal `json:"weight"` // kg, > 0
	Volume                 decimal.Decimal `json:"volume"` // m3, > 0

	PickupAddress       string `json:"pickupAddress"`
	PickupCity          string `json:"pickupCity"`
	PickupCoordinates   string `json:"pickupCoordinates,omitempty"`
	DeliveryAddress     string `json:"deliveryAddress"`
	DeliveryCity        string `json:"deliveryCity"`
	DeliveryCoordinates string `json:"deliveryCoordinates,omitempty"`

	PreferredPickupDate   time.Time  `json:"preferredPickupDate"`
	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate,omitempty"`

	Status   RequestStatus `json:"status"`
	Priority Priority      `json:"priority"`

	SpecialInstructions string              `json:"specialInstructions,omitempty"`
	EstimatedPrice      *decimal.Decimal    `json:"estimatedPrice,omitempty"`
	IsRecurring         bool                `json:"isRecurring"`
	RecurringFrequency  *RecurringFrequency `json:"recurringFrequency,omitempty"`

	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
	RecipientEmail string `json:"recipientEmail,omitempty"`

	AuditFields
	SoftDeleteFields
}

// IsAssignedTo reports whether the given transporter is assigned to the request.
func (r TransportRequest) IsAssignedTo(userID string) bool {
	return r.AssignedTransporterID != nil && *r.AssignedTransporterID == userID
}

// StatusHistoryEntry is one append-only audit row recording an accepted
// status transition. Never mutated or deleted.
type StatusHistoryEntry struct {
	EntryID   string        `json:"entryID"`
	RequestID string        `json:"requestID"`
	OldStatus RequestStatus `json:"oldStatus"`
	NewStatus RequestStatus `json:"newStatus"`
	ChangedBy string        `json:"changedBy"`
	Comment   string        `json:"comment,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
