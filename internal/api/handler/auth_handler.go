package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindtrack/stress-api/internal/api/metrics"
	"github.com/mindtrack/stress-api/internal/core/domain"
	"github.com/mindtrack/stress-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please fill all fields"})
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please fill all fields"})
		case errors.Is(err, domain.ErrUserExists):
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "User already exists"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "User registered successfully",
		User:    toUserPayload(user),
		Token:   token,
	})
}

// Login authenticates a user and returns a session token. Unknown email and
// wrong password produce the identical response.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please provide email and password"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please provide email and password"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid credentials"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		User:    toUserPayload(user),
		Token:   token,
	})
}

// Me returns the authenticated caller's public profile.
//
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Message: "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, meResponse{
		Success: true,
		User:    toUserPayload(user),
	})
}
