package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/middleware"
	"fraccio/internal/model"
	"fraccio/internal/service"
	"fraccio/pkg/logger"
	"fraccio/prometheus"
)

// PaymentHandler serves payment items, checkout creation and payment reads.
type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) ListItems(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	items, err := h.payments.ListItems(c.Request().Context(), profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *PaymentHandler) CreateItem(c echo.Context) error {
	log := logger.FromContext(c)
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		PaymentType string  `json:"payment_type"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse payment item request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	item, err := h.payments.CreateItem(c.Request().Context(), profile, service.CreateItemInput{
		TenantID:    tenant.ID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		PaymentType: model.PaymentType(req.PaymentType),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Checkout creates a pending payment and redirects the caller to the hosted
// checkout page.
func (h *PaymentHandler) Checkout(c echo.Context) error {
	log := logger.FromContext(c)
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	var req struct {
		ItemID uint `json:"item_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse checkout request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}

	result, err := h.payments.Checkout(c.Request().Context(), profile, tenant, req.ItemID)
	if err != nil {
		prometheus.RecordCheckout("failed")
		return serviceError(c, err)
	}
	prometheus.RecordCheckout("created")

	return c.JSON(http.StatusOK, result)
}

// History returns the caller's own payments within the tenant.
func (h *PaymentHandler) History(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	payments, err := h.payments.History(c.Request().Context(), profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}

// BySession resolves a payment by checkout session id for the success page.
func (h *PaymentHandler) BySession(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	sessionID := c.Param("sessionID")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session id is required"})
	}

	payment, err := h.payments.BySession(c.Request().Context(), profile, tenant.ID, sessionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// AdminPayments returns every payment in the tenant, newest first.
func (h *PaymentHandler) AdminPayments(c echo.Context) error {
	tenant := middleware.CurrentTenant(c)
	profile := middleware.CurrentProfile(c)

	payments, err := h.payments.AdminPayments(c.Request().Context(), profile, tenant.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}
