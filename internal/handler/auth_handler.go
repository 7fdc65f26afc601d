package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/middleware"
	"fraccio/internal/service"
	"fraccio/pkg/logger"
	"fraccio/prometheus"
)

// AuthHandler serves login, invite signup and the session probe.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	token, profile, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		prometheus.RecordAuthError("login_failure")
		return serviceError(c, err)
	}

	log.Info("User logged in",
		zap.String("email", profile.Email),
		zap.String("role", string(profile.Role)))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":        profile.ID,
			"email":     profile.Email,
			"full_name": profile.FullName,
			"role":      profile.Role,
			"tenant_id": profile.TenantID,
		},
	})
}

func (h *AuthHandler) Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req struct {
		InviteToken string `json:"invite_token"`
		Name        string `json:"name"`
		Password    string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	inviteID, err := uuid.Parse(req.InviteToken)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}

	profile, err := h.auth.Signup(c.Request().Context(), service.SignupInput{
		InviteID: inviteID,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(c, err)
	}
	prometheus.RecordInviteOperation("accept")

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "account created",
		"user": echo.Map{
			"id":        profile.ID,
			"email":     profile.Email,
			"full_name": profile.FullName,
			"tenant_id": profile.TenantID,
		},
	})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        profile.ID,
		"email":     profile.Email,
		"full_name": profile.FullName,
		"role":      profile.Role,
		"tenant_id": profile.TenantID,
	})
}
