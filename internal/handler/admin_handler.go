package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/middleware"
	"fraccio/internal/service"
	"fraccio/pkg/logger"
	"fraccio/prometheus"
)

// AdminHandler serves the superadmin area and the per-tenant user directory.
type AdminHandler struct {
	admin   *service.AdminService
	tenants *service.TenantService
}

func NewAdminHandler(admin *service.AdminService, tenants *service.TenantService) *AdminHandler {
	return &AdminHandler{admin: admin, tenants: tenants}
}

func (h *AdminHandler) Stats(c echo.Context) error {
	profile := middleware.CurrentProfile(c)

	stats, err := h.admin.Stats(c.Request().Context(), profile)
	if err != nil {
		return serviceError(c, err)
	}
	prometheus.UpdateActiveTenants(int(stats.TotalTenants))
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Tenants(c echo.Context) error {
	profile := middleware.CurrentProfile(c)

	tenants, err := h.admin.TenantsWithStats(c.Request().Context(), profile)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants})
}

func (h *AdminHandler) CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	profile := middleware.CurrentProfile(c)

	var req struct {
		Name string `json:"name"`
		Path string `json:"path"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tenant request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Path == "" {
		req.Path = service.Slugify(req.Name)
	}

	tenant, err := h.tenants.Create(c.Request().Context(), profile, req.Name, req.Path)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

func (h *AdminHandler) Users(c echo.Context) error {
	profile := middleware.CurrentProfile(c)

	users, err := h.admin.AllUsers(c.Request().Context(), profile)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// TenantUsers returns the user directory for the current tenant.
func (h *AdminHandler) TenantUsers(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	users, err := h.admin.TenantUsers(c.Request().Context(), profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
