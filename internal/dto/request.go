package dto

import (
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransportRequestRequest carries the fields for a new transport request.
type CreateTransportRequestRequest struct {
	Title                  string          `json:"title" binding:"required,max=200"`
	MerchandiseType        string          `json:"merchandiseType"`
	MerchandiseDescription string          `json:"merchandiseDescription" binding:"required"`
	Weight                 decimal.Decimal `json:"weight" binding:"required"`
	Volume                 decimal.Decimal `json:"volume" binding:"required"`

	PickupAddress       string `json:"pickupAddress" binding:"required"`
	PickupCity          string `json:"pickupCity" binding:"required,max=100"`
	PickupCoordinates   string `json:"pickupCoordinates"`
	DeliveryAddress     string `json:"deliveryAddress" binding:"required"`
	DeliveryCity        string `json:"deliveryCity" binding:"required,max=100"`
	DeliveryCoordinates string `json:"deliveryCoordinates"`

	PreferredPickupDate   time.Time  `json:"preferredPickupDate" binding:"required"`
	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate"`

	Priority            string           `json:"priority"`
	SpecialInstructions string           `json:"specialInstructions"`
	EstimatedPrice      *decimal.Decimal `json:"estimatedPrice"`
	IsRecurring         bool             `json:"isRecurring"`
	RecurringFrequency  string           `json:"recurringFrequency"`

	RecipientName  string `json:"recipientName" binding:"required,max=100"`
	RecipientPhone string `json:"recipientPhone" binding:"required,max=15"`
	RecipientEmail string `json:"recipientEmail" binding:"omitempty,email"`
}

// UpdateTransportRequestRequest is the enumerated partial update for a
// request: each field is applied only when present, and the whole set is
// validated before commit.
type UpdateTransportRequestRequest struct {
	Title                  *string          `json:"title"`
	MerchandiseType        *string          `json:"merchandiseType"`
	MerchandiseDescription *string          `json:"merchandiseDescription"`
	Weight                 *decimal.Decimal `json:"weight"`
	Volume                 *decimal.Decimal `json:"volume"`
	PickupAddress          *string          `json:"pickupAddress"`
	PickupCity             *string          `json:"pickupCity"`
	DeliveryAddress        *string          `json:"deliveryAddress"`
	DeliveryCity           *string          `json:"deliveryCity"`
	Priority               *string          `json:"priority"`
	SpecialInstructions    *string          `json:"specialInstructions"`
	EstimatedPrice         *decimal.Decimal `json:"estimatedPrice"`
}

// AssignTransporterRequest names the transporter a privileged actor assigns.
// Transporter actors self-assign; any supplied transporterID is ignored for
// them and the actor is substituted.
type AssignTransporterRequest struct {
	TransporterID *string `json:"transporterID"`
}

// ChangeStatusRequest moves a request through the status machine.
type ChangeStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// CancelRequestRequest cancels a request with an optional reason.
type CancelRequestRequest struct {
	Reason string `json:"reason"`
}

// ListRequestsParams narrows request listings. All fields are optional.
type ListRequestsParams struct {
	Status         string `form:"status"`
	City           string `form:"city"`
	Priority       string `form:"priority"`
	ClientID       string `form:"clientID"`
	TransporterID  string `form:"transporterID"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

// TransportRequestResponse is the outward representation of a request.
type TransportRequestResponse struct {
	RequestID             string  `json:"requestID"`
	ClientID              string  `json:"clientID"`
	AssignedTransporterID *string `json:"assignedTransporterID,omitempty"`

	Title                  string                 `json:"title"`
	MerchandiseType        domain.MerchandiseType `json:"merchandiseType"`
	MerchandiseDescription string                 `json:"merchandiseDescription"`
	Weight                 decimal.Decimal        `json:"weight"`
	Volume                 decimal.Decimal        `json:"volume"`

	PickupAddress       string `json:"pickupAddress"`
	PickupCity          string `json:"pickupCity"`
	PickupCoordinates   string `json:"pickupCoordinates,omitempty"`
	DeliveryAddress     string `json:"deliveryAddress"`
	DeliveryCity        string `json:"deliveryCity"`
	DeliveryCoordinates string `json:"deliveryCoordinates,omitempty"`

	PreferredPickupDate   time.Time  `json:"preferredPickupDate"`
	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate,omitempty"`

	Status   domain.RequestStatus `json:"status"`
	Priority domain.Priority      `json:"priority"`

	SpecialInstructions string                     `json:"specialInstructions,omitempty"`
	EstimatedPrice      *decimal.Decimal           `json:"estimatedPrice,omitempty"`
	IsRecurring         bool                       `json:"isRecurring"`
	RecurringFrequency  *domain.RecurringFrequency `json:"recurringFrequency,omitempty"`

	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
	RecipientEmail string `json:"recipientEmail,omitempty"`

	IsActive  bool       `json:"isActive"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToTransportRequestResponse maps a domain request to its response form.
func ToTransportRequestResponse(r *domain.TransportRequest) TransportRequestResponse {
	return TransportRequestResponse{
		RequestID:             r.RequestID,
		ClientID:              r.ClientID,
		AssignedTransporterID: r.AssignedTransporterID,

		Title:                  r.Title,
		MerchandiseType:        r.MerchandiseType,
		MerchandiseDescription: r.MerchandiseDescription,
		Weight:                 r.Weight,
		Volume:                 r.Volume,

		PickupAddress:       r.PickupAddress,
		PickupCity:          r.PickupCity,
		PickupCoordinates:   r.PickupCoordinates,
		DeliveryAddress:     r.DeliveryAddress,
		DeliveryCity:        r.DeliveryCity,
		DeliveryCoordinates: r.DeliveryCoordinates,

		PreferredPickupDate:   r.PreferredPickupDate,
		PreferredDeliveryDate: r.PreferredDeliveryDate,

		Status:   r.Status,
		Priority: r.Priority,

		SpecialInstructions: r.SpecialInstructions,
		EstimatedPrice:      r.EstimatedPrice,
		IsRecurring:         r.IsRecurring,
		RecurringFrequency:  r.RecurringFrequency,

		RecipientName:  r.RecipientName,
		RecipientPhone: r.RecipientPhone,
		RecipientEmail: r.RecipientEmail,

		IsActive:  r.IsActive,
		DeletedAt: r.DeletedAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.LastUpdatedAt,
	}
}

// ToTransportRequestResponses maps a slice of domain requests.
func ToTransportRequestResponses(requests []domain.TransportRequest) []TransportRequestResponse {
	out := make([]TransportRequestResponse, len(requests))
	for i := range requests {
		out[i] = ToTransportRequestResponse(&requests[i])
	}
	return out
}

// StatusHistoryResponse is the outward representation of an audit row.
type StatusHistoryResponse struct {
	EntryID   string               `json:"entryID"`
	RequestID string               `json:"requestID"`
	OldStatus domain.RequestStatus `json:"oldStatus"`
	NewStatus domain.RequestStatus `json:"newStatus"`
	ChangedBy string               `json:"changedBy"`
	Comment   string               `json:"comment,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ToStatusHistoryResponses maps domain history entries to their response form.
func ToStatusHistoryResponses(entries []domain.StatusHistoryEntry) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = StatusHistoryResponse{
			EntryID:   e.EntryID,
			RequestID: e.RequestID,
			OldStatus: e.OldStatus,
			NewStatus: e.NewStatus,
			ChangedBy: e.ChangedBy,
			Comment:   e.Comment,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
