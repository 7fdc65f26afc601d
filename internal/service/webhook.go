package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"fraccio/internal/model"
	"fraccio/prometheus"
)

// WebhookService reconciles payment status from Stripe events. Delivery is
// at-least-once and can arrive out of order; the event-id ledger plus the
// pending-only status transitions make replays and races no-ops.
type WebhookService struct {
	payments PaymentStore
	events   WebhookEventStore
	log      *zap.Logger
}

func NewWebhookService(payments PaymentStore, events WebhookEventStore, log *zap.Logger) *WebhookService {
	return &WebhookService{payments: payments, events: events, log: log}
}

// HandleEvent applies one verified Stripe event. Database update failures
// are logged and swallowed: no caller is waiting, and returning an error
// would only make Stripe redeliver an event we have already recorded.
func (s *WebhookService) HandleEvent(ctx context.Context, event stripe.Event) error {
	first, err := s.events.Record(ctx, event.ID, string(event.Type))
	if err != nil {
		// Keep processing: the status transitions below are safe to repeat.
		s.log.Error("Failed to record webhook event", zap.String("event_id", event.ID), zap.Error(err))
	} else if !first {
		s.log.Info("Duplicate webhook event skipped",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)))
		prometheus.RecordWebhookEvent(string(event.Type), "duplicate")
		return nil
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		s.handleCheckoutCompleted(ctx, event)
	case "checkout.session.expired":
		s.handleCheckoutExpired(ctx, event)
	case "payment_intent.succeeded":
		s.handleIntentSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		s.handleIntentFailed(ctx, event)
	default:
		s.log.Info("Unhandled webhook event type", zap.String("type", string(event.Type)))
		prometheus.RecordWebhookEvent(string(event.Type), "ignored")
		return nil
	}
	prometheus.RecordWebhookEvent(string(event.Type), "processed")
	return nil
}

func (s *WebhookService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.log.Error("Failed to parse checkout session event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	s.log.Info("Checkout session completed",
		zap.String("session_id", session.ID),
		zap.String("payment_status", string(session.PaymentStatus)))

	// Metadata is the only link back to the local payment row.
	rawID, ok := session.Metadata["payment_id"]
	if !ok {
		s.log.Error("Checkout session has no payment_id metadata", zap.String("session_id", session.ID))
		return
	}
	paymentID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		s.log.Error("Invalid payment_id metadata", zap.String("payment_id", rawID), zap.Error(err))
		return
	}

	intentID := ""
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}

	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		if err := s.payments.Complete(ctx, uint(paymentID), intentID); err != nil {
			s.log.Error("Failed to update payment status", zap.Uint64("payment_id", paymentID), zap.Error(err))
			return
		}
		prometheus.RecordPaymentStatus(string(model.PaymentStatusCompleted))
		s.log.Info("Payment status updated to completed", zap.Uint64("payment_id", paymentID))
		return
	}

	// Not paid yet: keep pending but remember the intent id so the
	// payment_intent events can find the row.
	if intentID != "" {
		if err := s.payments.SetIntentID(ctx, uint(paymentID), intentID); err != nil {
			s.log.Error("Failed to record payment intent id", zap.Uint64("payment_id", paymentID), zap.Error(err))
		}
	}
}

func (s *WebhookService) handleCheckoutExpired(ctx context.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.log.Error("Failed to parse checkout session event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	if err := s.payments.SetStatusBySession(ctx, session.ID, model.PaymentStatusCancelled); err != nil {
		s.log.Error("Failed to cancel payment", zap.String("session_id", session.ID), zap.Error(err))
		return
	}
	prometheus.RecordPaymentStatus(string(model.PaymentStatusCancelled))
	s.log.Info("Payment cancelled after checkout expired", zap.String("session_id", session.ID))
}

func (s *WebhookService) handleIntentSucceeded(ctx context.Context, event stripe.Event) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		s.log.Error("Failed to parse payment intent event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	s.log.Info("Payment intent succeeded",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount", intent.Amount))

	if err := s.payments.SetStatusByIntent(ctx, intent.ID, model.PaymentStatusCompleted); err != nil {
		s.log.Error("Failed to update payment status", zap.String("payment_intent_id", intent.ID), zap.Error(err))
		return
	}
	prometheus.RecordPaymentStatus(string(model.PaymentStatusCompleted))
	s.log.Info("Payment status updated to completed", zap.String("payment_intent_id", intent.ID))
}

func (s *WebhookService) handleIntentFailed(ctx context.Context, event stripe.Event) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		s.log.Error("Failed to parse payment intent event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	failureMessage := ""
	if intent.LastPaymentError != nil {
		failureMessage = intent.LastPaymentError.Msg
	}
	s.log.Warn("Payment intent failed",
		zap.String("payment_intent_id", intent.ID),
		zap.String("failure_message", failureMessage))

	if err := s.payments.SetStatusByIntent(ctx, intent.ID, model.PaymentStatusFailed); err != nil {
		s.log.Error("Failed to update payment status to failed", zap.String("payment_intent_id", intent.ID), zap.Error(err))
		return
	}
	prometheus.RecordPaymentStatus(string(model.PaymentStatusFailed))
	s.log.Info("Payment status updated to failed", zap.String("payment_intent_id", intent.ID))
}
