package services

import (
	"fmt"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
)

// Action names an operation gated by the authorization matrix.
type Action string

const (
	ActionViewRequest       Action = "request:view"
	ActionCreateRequest     Action = "request:create"
	ActionEditRequest       Action = "request:edit"
	ActionDeleteRequest     Action = "request:delete"
	ActionRestoreRequest    Action = "request:restore"
	ActionPurgeRequest      Action = "request:purge"
	ActionAssignRequest     Action = "request:assign"
	ActionTransitionRequest Action = "request:transition"
	ActionCancelRequest     Action = "request:cancel"
	ActionVetTransporter    Action = "transporter:vet"
	ActionViewFinance       Action = "finance:view"
)

// Relation describes how the actor relates to the resource under decision.
// For actions without a concrete resource (create, finance views) the zero
// value is used.
type Relation struct {
	// IsOwner is true when the actor is the client of the request.
	IsOwner bool
	// IsAssignedTransporter is true when the actor is the request's
	// assigned transporter.
	IsAssignedTransporter bool
	// Vetted carries the transporter's approval state. Ignored for other
	// roles.
	Vetted bool
}

// Authorize is the pure decision function of the role matrix. It returns nil
// when the actor may perform the action and apperrors.ErrForbidden otherwise.
// Callers invoke it before every mutating request or vetting operation; a
// denial is always surfaced, never downgraded to a silent no-op.
func Authorize(role domain.Role, action Action, rel Relation) error {
	if allowed(role, action, rel) {
		return nil
	}
	return fmt.Errorf("%w: role %s may not perform %s", apperrors.ErrForbidden, role, action)
}

func allowed(role domain.Role, action Action, rel Relation) bool {
	// ADMIN and DATA ADMIN bypass ownership checks for everything.
	if role.IsAdministrative() {
		return true
	}

	// MODERATOR is privileged for visibility only.
	if role == domain.RoleModerator {
		return action == ActionViewRequest
	}

	if role.IsClient() {
		switch action {
		case ActionCreateRequest:
			return true
		case ActionViewRequest, ActionEditRequest, ActionDeleteRequest, ActionCancelRequest:
			return rel.IsOwner
		default:
			return false
		}
	}

	if role.IsTransporter() {
		// An unvetted transporter is denied all request visibility and
		// assignment actions regardless of ownership.
		if !rel.Vetted {
			return false
		}
		switch action {
		case ActionViewRequest:
			return true
		case ActionAssignRequest:
			return true
		case ActionTransitionRequest:
			return rel.IsAssignedTransporter
		default:
			return false
		}
	}

	return false
}

// TransporterMayTarget reports whether a transporter-initiated transition to
// the given status is inside the transporter's allowed subset of the
// transition table (only IN_PROGRESS and DELIVERED).
func TransporterMayTarget(target domain.RequestStatus) bool {
	return target == domain.StatusInProgress || target == domain.StatusDelivered
}
