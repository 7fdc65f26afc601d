package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/model"
	"fraccio/pkg/jwtutil"
	"fraccio/pkg/logger"
	"fraccio/prometheus"
)

// ProfileKey is the echo context key holding the caller's *model.Profile.
const ProfileKey = "profile"

// ProfileLoader resolves a profile by id. The gorm profile store satisfies
// it.
type ProfileLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Auth validates the Bearer token and resolves the caller's profile. The
// profile row is authoritative for role and tenant assignment; the token
// only proves identity.
func Auth(profiles ProfileLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwtutil.ValidateToken(parts[1])
			if err != nil {
				log.Error("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			profile, err := profiles.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				log.Error("Failed to load profile", zap.String("user_id", claims.UserID.String()), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
			}
			if profile == nil {
				// Session exists but no linked profile row.
				prometheus.RecordAuthError("profile_not_found")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "profile not found"})
			}

			c.Set(ProfileKey, profile)
			return next(c)
		}
	}
}

// CurrentProfile returns the authenticated caller set by Auth, or nil.
func CurrentProfile(c echo.Context) *model.Profile {
	profile, _ := c.Get(ProfileKey).(*model.Profile)
	return profile
}
