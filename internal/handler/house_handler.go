package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/middleware"
	"fraccio/internal/service"
	"fraccio/pkg/logger"
)

// HouseHandler serves the per-tenant house directory and the caller's own
// house lookup.
type HouseHandler struct {
	houses *service.HouseService
}

func NewHouseHandler(houses *service.HouseService) *HouseHandler {
	return &HouseHandler{houses: houses}
}

func (h *HouseHandler) List(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	houses, err := h.houses.List(c.Request().Context(), profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"houses": houses})
}

func (h *HouseHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse house request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	house, err := h.houses.Create(c.Request().Context(), profile, tenant.ID, req.Name, req.Address)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info("House created",
		zap.Uint("house_id", house.ID),
		zap.String("tenant", tenant.Path))
	return c.JSON(http.StatusCreated, house)
}

// MyHouse returns the caller's house assignment within the tenant.
func (h *HouseHandler) MyHouse(c echo.Context) error {
	profile := middleware.CurrentProfile(c)

	house, owner, err := h.houses.MyHouse(c.Request().Context(), profile)
	if err != nil {
		return serviceError(c, err)
	}
	if house == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no house assigned"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":      house.ID,
		"name":    house.Name,
		"address": house.Address,
		"owner":   owner,
	})
}
