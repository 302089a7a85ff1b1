package domain

import "time"

// Role is the closed set of user roles known to the platform.
type Role string

const (
	RoleDataAdmin    Role = "DATA ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleModerator    Role = "MODERATOR"
	RolePME          Role = "PME"
	RoleAgriculteur  Role = "AGRICULTEUR"
	RoleParticulier  Role = "PARTICULIER"
	RoleTransporteur Role = "TRANSPORTEUR"
)

// privilegedRoles and clientRoles are the two semantic role groups used by the
// authorization matrix. TRANSPORTEUR stands alone. Membership is static.
var (
	privilegedRoles = map[Role]struct{}{
		RoleDataAdmin: {},
		RoleAdmin:     {},
		RoleModerator: {},
	}
	clientRoles = map[Role]struct{}{
		RolePME:         {},
		RoleAgriculteur: {},
		RoleParticulier: {},
	}
)

// IsPrivileged reports whether the role belongs to the back-office group
// (DATA ADMIN, ADMIN, MODERATOR).
func (r Role) IsPrivileged() bool {
	_, ok := privilegedRoles[r]
	return ok
}

// IsAdministrative reports whether the role may mutate any request regardless
// of ownership. MODERATOR is privileged for visibility but not for mutation.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleDataAdmin
}

// IsClient reports whether the role belongs to the shipper group
// (PME, AGRICULTEUR, PARTICULIER).
func (r Role) IsClient() bool {
	_, ok := clientRoles[r]
	return ok
}

// IsTransporter reports whether the role is TRANSPORTEUR.
func (r Role) IsTransporter() bool {
	return r == RoleTransporteur
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r.IsPrivileged() || r.IsClient() || r.IsTransporter()
}

// User represents a platform user in the domain.
// Transporter vetting state (IsApproved, ApprovedBy, ApprovedAt) is only
// meaningful for TRANSPORTEUR users; it stays false/nil for everyone else.
type User struct {
	UserID       string `json:"userID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Address      string `json:"address"`

	IsVerified bool       `json:"isVerified"`
	IsBlocked  bool       `json:"isBlocked"`
	IsApproved bool       `json:"isApproved"`
	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	AuditFields
	SoftDeleteFields
}

// DisplayName returns the best human-readable identification available.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	case u.Email != "":
		return u.Email
	default:
		return u.Telephone
	}
}

// IsVettedTransporter reports whether the user may participate in request
// assignment: a TRANSPORTEUR approved by an administrator.
func (u User) IsVettedTransporter() bool {
	return u.Role.IsTransporter() && u.IsApproved
}
