package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/service"
	"fraccio/pkg/logger"
)

// serviceError maps service sentinels to HTTP responses. Unknown errors are
// logged and returned as opaque 500s.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNoHouseAssigned):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no house assigned to user"})
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrProfileNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "payment item not found"})
	case errors.Is(err, service.ErrAlreadyInvited):
		return c.JSON(http.StatusConflict, echo.Map{"error": "an invitation for this email already exists"})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case errors.Is(err, service.ErrPathTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "tenant path already taken"})
	case errors.Is(err, service.ErrInviteExpired):
		return c.JSON(http.StatusGone, echo.Map{"error": "invitation has expired"})
	default:
		logger.FromContext(c).Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
