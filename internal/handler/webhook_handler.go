package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fraccio/internal/service"
	"fraccio/pkg/logger"
	"fraccio/pkg/stripeutil"
	"fraccio/prometheus"
)

// Stripe caps event payloads well below this; anything larger is not a
// legitimate delivery.
const maxWebhookBody = 1 << 16

// WebhookHandler receives Stripe event deliveries.
type WebhookHandler struct {
	stripe   *stripeutil.Client
	webhooks *service.WebhookService
}

func NewWebhookHandler(stripe *stripeutil.Client, webhooks *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{stripe: stripe, webhooks: webhooks}
}

// HandleStripe verifies the delivery signature and applies the event. The
// raw body must be read before any JSON binding or the signature check
// would run against re-encoded bytes.
func (h *WebhookHandler) HandleStripe(c echo.Context) error {
	log := logger.FromContext(c)

	if !h.stripe.WebhookConfigured() {
		log.Error("Stripe webhook secret not configured")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "webhook not configured"})
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		log.Error("Failed to read webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if signature == "" {
		prometheus.RecordWebhookEvent("unknown", "error")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing signature"})
	}

	event, err := h.stripe.VerifyEvent(payload, signature)
	if err != nil {
		log.Error("Webhook signature verification failed", zap.Error(err))
		prometheus.RecordWebhookEvent("unknown", "error")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signature"})
	}

	// The service records the per-event outcome (processed, duplicate,
	// ignored) once it knows which one applies.
	if err := h.webhooks.HandleEvent(c.Request().Context(), event); err != nil {
		log.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.Error(err))
		prometheus.RecordWebhookEvent(string(event.Type), "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "processing failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
