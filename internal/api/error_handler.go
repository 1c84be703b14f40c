package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirepath/jobportal-api/internal/core/domain"
)

// errorResponse is the canonical error envelope. Error responses never carry
// a user or token field.
type errorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "...", "success": false}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg, Success: false})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes. Bad credentials
	// deliberately answer 400 with a generic message so callers cannot
	// probe which emails are registered.
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrImageRequired),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAadhaarTaken),
		errors.Is(err, domain.ErrPANTaken),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		log.Error().Err(err).Str("path", c.Path()).Msg("asset upload failed")
		return http.StatusInternalServerError, domain.ErrUploadFailed.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
