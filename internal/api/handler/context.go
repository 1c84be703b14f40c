package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirepath/jobportal-api/internal/api/middleware"
)

// ctxUserID extracts the identity injected by the Auth middleware. Its
// presence proves the middleware ran; handlers treat it as a trusted,
// pre-resolved precondition and never re-verify the token.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated identity")
	}
	return userID, nil
}
