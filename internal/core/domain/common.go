package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// SoftDeleteFields marks an entity as soft deletable.
// A delete flips IsActive to false and stamps DeletedAt; a restore clears both.
// Default reads return only active rows unless the caller asks for deleted ones.
type SoftDeleteFields struct {
	IsActive  bool       `json:"isActive"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// MarkDeleted flips the soft-delete flag and stamps the deletion time.
func (s *SoftDeleteFields) MarkDeleted(now time.Time) {
	s.IsActive = false
	s.DeletedAt = &now
}

// MarkRestored reverses a soft delete.
func (s *SoftDeleteFields) MarkRestored() {
	s.IsActive = true
	s.DeletedAt = nil
}
