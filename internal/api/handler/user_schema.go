package handler

import (
	"time"

	"github.com/hirepath/jobportal-api/internal/core/domain"
)

// Every response body carries at least {message, success}. Error responses
// are rendered by the central error handler and never include user or token
// fields.

// errorResponse mirrors the central error handler's envelope for swagger.
type errorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type messageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Success bool         `json:"success"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

type accountEventResponse struct {
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

type activityResponse struct {
	Message string                 `json:"message"`
	Events  []accountEventResponse `json:"events"`
	Success bool                   `json:"success"`
}
