package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hirepath/jobportal-api/internal/api/metrics"
	"github.com/hirepath/jobportal-api/internal/api/middleware"
	"github.com/hirepath/jobportal-api/internal/core/domain"
	"github.com/hirepath/jobportal-api/internal/core/ports"
)

// sessionMaxAge matches the 24-hour token lifetime.
const sessionMaxAge = 24 * 60 * 60

// fileField is the multipart field carrying the attached file on both
// registration (profile image) and profile update (resume).
const fileField = "file"

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a new account from a multipart form.
//
// @Summary      Register a new account
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname     formData  string  true  "Full name"
// @Param        email        formData  string  true  "Email (unique)"
// @Param        phoneNumber  formData  string  true  "Phone number"
// @Param        password     formData  string  true  "Password"
// @Param        adharcard    formData  string  true  "Aadhaar number (unique)"
// @Param        pancard      formData  string  true  "PAN number (unique)"
// @Param        role         formData  string  true  "job-seeker or recruiter"
// @Param        file         formData  file    true  "Profile image"
// @Success      201  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	in := ports.RegisterInput{
		Fullname:    c.FormValue("fullname"),
		Email:       c.FormValue("email"),
		PhoneNumber: c.FormValue("phoneNumber"),
		Password:    c.FormValue("password"),
		Aadhaar:     c.FormValue("adharcard"),
		PAN:         c.FormValue("pancard"),
		Role:        c.FormValue("role"),
	}

	if fh, err := c.FormFile(fileField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open uploaded image: %w", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read uploaded image: %w", err)
		}
		in.Image = &ports.ImageInput{
			Data:        data,
			ContentType: fh.Header.Get("Content-Type"),
			Filename:    fh.Filename,
		}
	}

	user, err := h.userService.Register(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUploadFailed) {
			metrics.AssetUploadsTotal.WithLabelValues("profile_photo", "error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()
	metrics.AssetUploadsTotal.WithLabelValues("profile_photo", "ok").Inc()

	return c.JSON(http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("Account created successfully for %s", user.Fullname),
		Success: true,
	})
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.userService.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	c.SetCookie(sessionCookie(token, sessionMaxAge))

	return c.JSON(http.StatusOK, userResponse{
		Message: fmt.Sprintf("Welcome back %s", user.Fullname),
		User:    user,
		Success: true,
	})
}

// Logout clears the session cookie. It always succeeds and is idempotent;
// tokens already issued stay valid until natural expiry because no
// server-side revocation exists.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /users/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(sessionCookie("", -1))

	return c.JSON(http.StatusOK, messageResponse{
		Message: "Logged out successfully",
		Success: true,
	})
}

// UpdateProfile applies a partial profile mutation for the authenticated
// user. Only non-empty form fields overwrite stored values.
//
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        fullname     formData  string  false  "Full name"
// @Param        email        formData  string  false  "Email"
// @Param        phoneNumber  formData  string  false  "Phone number"
// @Param        bio          formData  string  false  "Bio"
// @Param        skills       formData  string  false  "Comma-separated skills (replaces the list)"
// @Param        file         formData  file    false  "Resume"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	in := ports.UpdateProfileInput{
		Fullname:    c.FormValue("fullname"),
		Email:       c.FormValue("email"),
		PhoneNumber: c.FormValue("phoneNumber"),
		Bio:         c.FormValue("bio"),
		Skills:      c.FormValue("skills"),
	}

	if fh, err := c.FormFile(fileField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open uploaded resume: %w", err)
		}
		defer f.Close()
		in.Resume = &ports.ResumeInput{
			Reader:   f,
			Size:     fh.Size,
			Filename: fh.Filename,
		}
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrUploadFailed) {
			metrics.AssetUploadsTotal.WithLabelValues("resume", "error").Inc()
		}
		return err
	}
	if in.Resume != nil {
		metrics.AssetUploadsTotal.WithLabelValues("resume", "ok").Inc()
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "Profile updated successfully",
		User:    user,
		Success: true,
	})
}

// Me returns the authenticated user's sanitized profile.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "Profile fetched successfully",
		User:    user,
		Success: true,
	})
}

// Activity lists the authenticated user's recent account events.
//
// @Summary      Recent account activity
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        limit  query     int  false  "Maximum number of events"
// @Success      200  {object}  activityResponse
// @Router       /users/activity [get]
func (h *UserHandler) Activity(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.userService.Activity(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}

	items := make([]accountEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, accountEventResponse{
			Action: ev.Action,
			Detail: ev.Detail,
			At:     ev.At,
		})
	}

	return c.JSON(http.StatusOK, activityResponse{
		Message: "Activity fetched successfully",
		Events:  items,
		Success: true,
	})
}

// sessionCookie builds the "token" cookie. A negative maxAge expires the
// cookie immediately (logout).
func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_credentials"
	case errors.Is(err, domain.ErrRoleMismatch):
		return "role_mismatch"
	default:
		return "error"
	}
}
