package dto

import "github.com/afrilogistic/transport_marketplace/internal/core/domain"

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the outward representation of a user.
type UserResponse struct {
	UserID     string      `json:"userID"`
	FirstName  string      `json:"firstName,omitempty"`
	LastName   string      `json:"lastName,omitempty"`
	Email      string      `json:"email"`
	Telephone  string      `json:"telephone,omitempty"`
	Role       domain.Role `json:"role"`
	Address    string      `json:"address,omitempty"`
	IsVerified bool        `json:"isVerified"`
	IsApproved bool        `json:"isApproved"`
	IsActive   bool        `json:"isActive"`
	CreatedAt  string      `json:"createdAt"`
}

// ToUserResponse maps a domain user to its response form.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Telephone:  u.Telephone,
		Role:       u.Role,
		Address:    u.Address,
		IsVerified: u.IsVerified,
		IsApproved: u.IsApproved,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToUserResponses maps a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
