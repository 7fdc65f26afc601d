package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/model"
	"fraccio/pkg/logger"
	"fraccio/prometheus"
)

// TenantKey is the echo context key holding the resolved *model.Tenant.
const TenantKey = "tenant"

// TenantResolver resolves a tenant by its URL path slug.
type TenantResolver interface {
	GetByPath(ctx context.Context, path string) (*model.Tenant, error)
}

// TenantGuard resolves the :tenant path parameter and enforces membership:
// superadmins pass unconditionally, everyone else must be assigned to the
// resolved tenant. Runs after Auth.
func TenantGuard(tenants TenantResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			path := c.Param("tenant")
			tenant, err := tenants.GetByPath(c.Request().Context(), path)
			if err != nil {
				log.Error("Failed to resolve tenant", zap.String("path", path), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
			}
			if tenant == nil {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
			}

			profile := CurrentProfile(c)
			if profile == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}
			if profile.Role != model.RoleSuperadmin {
				if profile.TenantID == nil || *profile.TenantID != tenant.ID {
					prometheus.RecordTenantError(tenant.Path, "membership_denied")
					return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied to this tenant"})
				}
			}

			c.Set(TenantKey, tenant)
			return next(c)
		}
	}
}

// CurrentTenant returns the tenant set by TenantGuard, or nil.
func CurrentTenant(c echo.Context) *model.Tenant {
	tenant, _ := c.Get(TenantKey).(*model.Tenant)
	return tenant
}
