package handler

import (
	"github.com/glowdesk/booking-system/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=client business admin"`
	Phone    string `json:"phone"`

	// Business fields, honored only when role is "business".
	BusinessName  string `json:"business_name"`
	BusinessEmail string `json:"business_email" validate:"omitempty,email"`
	BusinessPhone string `json:"business_phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
	AuthProvider string `json:"auth_provider"`
	Phone        string `json:"phone,omitempty"`
}

type authResponse struct {
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token,omitempty"`
	User    *userResponse `json:"user,omitempty"`
}

// googleStatusResponse uses the camelCase key the frontend probes for.
type googleStatusResponse struct {
	GoogleAuthAvailable bool `json:"googleAuthAvailable"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Avatar:       u.Avatar,
		AuthProvider: u.AuthProvider,
		Phone:        u.Phone,
	}
}
