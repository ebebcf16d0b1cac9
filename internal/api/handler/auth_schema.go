package handler

import "github.com/mindtrack/stress-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Error carries raw detail on 500s only.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// --- Request types ---

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

// userPayload is the public user projection. It has no password field by
// construction.
type userPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type authResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    userPayload `json:"user"`
	Token   string      `json:"token"`
}

type meResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

func toUserPayload(u *domain.User) userPayload {
	return userPayload{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
