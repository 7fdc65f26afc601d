package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fraccio/internal/middleware"
	"fraccio/internal/service"
)

// TenantHandler serves the tenant dashboard.
type TenantHandler struct {
	houses        *service.HouseService
	announcements *service.AnnouncementService
}

func NewTenantHandler(houses *service.HouseService, announcements *service.AnnouncementService) *TenantHandler {
	return &TenantHandler{houses: houses, announcements: announcements}
}

// Dashboard returns the tenant header data plus the caller's house and the
// latest announcements, everything the landing page renders.
func (h *TenantHandler) Dashboard(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)
	ctx := c.Request().Context()

	resp := echo.Map{
		"tenant": echo.Map{
			"id":   tenant.ID,
			"name": tenant.Name,
			"path": tenant.Path,
		},
		"role": profile.Role,
	}

	house, owner, err := h.houses.MyHouse(ctx, profile)
	if err != nil {
		return serviceError(c, err)
	}
	if house != nil {
		resp["house"] = echo.Map{
			"id":      house.ID,
			"name":    house.Name,
			"address": house.Address,
			"owner":   owner,
		}
	}

	announcements, err := h.announcements.List(ctx, profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	const latest = 5
	if len(announcements) > latest {
		announcements = announcements[:latest]
	}
	resp["announcements"] = announcements

	return c.JSON(http.StatusOK, resp)
}
