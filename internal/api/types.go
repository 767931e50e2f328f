// Package api defines the request and response types of the HTTP API.
// Request types carry Gin binding tags; the validation rules mirror the
// constraints enforced on the User entity.
package api

import "user_backend/internal/feature/users/domain/entity"

// RegisterRequest is the request body for POST /api/register.
type RegisterRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Email            string  `json:"email" binding:"required,email,max=255"`
	Password         string  `json:"password" binding:"required,min=6"`
	Age              *int    `json:"age" binding:"required,gte=0"`
	MembershipStatus *string `json:"membership_status" binding:"omitempty,max=255"`
}

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the request body for POST /api/users.
// It carries the same rules as RegisterRequest.
type CreateUserRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Email            string  `json:"email" binding:"required,email,max=255"`
	Password         string  `json:"password" binding:"required,min=6"`
	Age              *int    `json:"age" binding:"required,gte=0"`
	MembershipStatus *string `json:"membership_status" binding:"omitempty,max=255"`
}

// UpdateUserRequest is the request body for PUT /api/users/:id.
// All fields are optional; absent fields keep their stored values.
type UpdateUserRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=255"`
	Email            *string `json:"email" binding:"omitempty,email,max=255"`
	Password         *string `json:"password" binding:"omitempty,min=6"`
	Age              *int    `json:"age" binding:"omitempty,gte=0"`
	MembershipStatus *string `json:"membership_status" binding:"omitempty,max=255"`
}

// ErrorResponse is the generic error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success body: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the login success body.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreatedUserResponse is the body returned by POST /api/users.
// The user's password hash is excluded by the entity's JSON tags.
type CreatedUserResponse struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
}
