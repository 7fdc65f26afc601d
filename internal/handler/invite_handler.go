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

// InviteHandler serves the public invite resolver and the tenant-scoped
// invite management endpoints.
type InviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// Get resolves an invite token for the signup page. Expired invites read as
// absent.
func (h *InviteHandler) Get(c echo.Context) error {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}

	invite, err := h.invites.Get(c.Request().Context(), token)
	if err != nil {
		return serviceError(c, err)
	}
	if invite == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invitation not found"})
	}

	resp := echo.Map{
		"token":       invite.ID,
		"email":       invite.Email,
		"name":        invite.Name,
		"house_owner": invite.HouseOwner,
		"expires_at":  invite.ExpiresAt,
	}
	if invite.Tenant != nil {
		resp["tenant"] = echo.Map{"name": invite.Tenant.Name, "path": invite.Tenant.Path}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *InviteHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	var req struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		HouseID    uint   `json:"house_id"`
		HouseOwner bool   `json:"house_owner"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invite request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	invite, err := h.invites.Create(c.Request().Context(), profile, service.CreateInput{
		Email:      req.Email,
		Name:       req.Name,
		TenantID:   tenant.ID,
		HouseID:    req.HouseID,
		HouseOwner: req.HouseOwner,
	})
	if err != nil {
		return serviceError(c, err)
	}
	prometheus.RecordInviteOperation("create")

	return c.JSON(http.StatusCreated, echo.Map{
		"token":      invite.ID,
		"email":      invite.Email,
		"expires_at": invite.ExpiresAt,
	})
}

// Remove revokes an invite. Revoking an absent invite still returns 200.
func (h *InviteHandler) Remove(c echo.Context) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil || !profile.Role.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}
	if err := h.invites.Remove(c.Request().Context(), token); err != nil {
		return serviceError(c, err)
	}
	prometheus.RecordInviteOperation("revoke")
	return c.JSON(http.StatusOK, echo.Map{"message": "invitation revoked"})
}
