package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/middleware"
	"fraccio/internal/service"
	"fraccio/pkg/logger"
)

// AnnouncementHandler serves tenant notices.
type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

func (h *AnnouncementHandler) List(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	announcements, err := h.announcements.List(c.Request().Context(), profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": announcements})
}

func (h *AnnouncementHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse announcement request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	announcement, err := h.announcements.Create(c.Request().Context(), profile, tenant.ID, req.Title, req.Body)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info("Announcement posted",
		zap.String("tenant", tenant.Path),
		zap.String("title", announcement.Title))
	return c.JSON(http.StatusCreated, announcement)
}
