package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"fraccio/internal/model"
	"fraccio/prometheus"
)

func stripeEvent(t *testing.T, id, eventType string, object interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	assert.NoError(t, err)
	return stripe.Event{
		ID:   id,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestWebhookDuplicateEventIsSkipped(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_1", "checkout.session.completed").Return(false, nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_123",
		"payment_status": "paid",
		"metadata":       map[string]string{"payment_id": "99"},
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookCheckoutCompletedPaid(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_1", "checkout.session.completed").Return(true, nil)
	payments.On("Complete", mock.Anything, uint(99), "pi_test_456").Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_123",
		"payment_status": "paid",
		"payment_intent": map[string]string{"id": "pi_test_456"},
		"metadata":       map[string]string{"payment_id": "99"},
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertExpectations(t)
}

func TestWebhookCheckoutCompletedUnpaidKeepsPending(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_1", "checkout.session.completed").Return(true, nil)
	payments.On("SetIntentID", mock.Anything, uint(99), "pi_test_456").Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_123",
		"payment_status": "unpaid",
		"payment_intent": map[string]string{"id": "pi_test_456"},
		"metadata":       map[string]string{"payment_id": "99"},
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	payments.AssertExpectations(t)
}

func TestWebhookCheckoutCompletedMissingMetadata(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_1", "checkout.session.completed").Return(true, nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_123",
		"payment_status": "paid",
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookCheckoutExpiredCancels(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_2", "checkout.session.expired").Return(true, nil)
	payments.On("SetStatusBySession", mock.Anything, "cs_test_123", model.PaymentStatusCancelled).Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_2", "checkout.session.expired", map[string]interface{}{
		"id": "cs_test_123",
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertExpectations(t)
}

func TestWebhookIntentSucceeded(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_3", "payment_intent.succeeded").Return(true, nil)
	payments.On("SetStatusByIntent", mock.Anything, "pi_test_456", model.PaymentStatusCompleted).Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_3", "payment_intent.succeeded", map[string]interface{}{
		"id":     "pi_test_456",
		"amount": 35050,
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertExpectations(t)
}

func TestWebhookIntentFailed(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_4", "payment_intent.payment_failed").Return(true, nil)
	payments.On("SetStatusByIntent", mock.Anything, "pi_test_456", model.PaymentStatusFailed).Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_4", "payment_intent.payment_failed", map[string]interface{}{
		"id": "pi_test_456",
		"last_payment_error": map[string]interface{}{
			"message": "card_declined",
		},
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertExpectations(t)
}

func TestWebhookUnknownEventAcknowledged(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_5", "invoice.created").Return(true, nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_5", "invoice.created", map[string]interface{}{"id": "in_1"})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
}

func TestWebhookEventOutcomeMetrics(t *testing.T) {
	processed := prometheus.WebhookEventCounter.WithLabelValues("payment_intent.succeeded", "processed")
	duplicate := prometheus.WebhookEventCounter.WithLabelValues("payment_intent.succeeded", "duplicate")
	ignored := prometheus.WebhookEventCounter.WithLabelValues("invoice.created", "ignored")
	processedBefore := testutil.ToFloat64(processed)
	duplicateBefore := testutil.ToFloat64(duplicate)
	ignoredBefore := testutil.ToFloat64(ignored)

	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_m1", "payment_intent.succeeded").Return(true, nil).Once()
	events.On("Record", mock.Anything, "evt_m1", "payment_intent.succeeded").Return(false, nil).Once()
	events.On("Record", mock.Anything, "evt_m2", "invoice.created").Return(true, nil)
	payments.On("SetStatusByIntent", mock.Anything, "pi_test_456", model.PaymentStatusCompleted).Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	succeeded := stripeEvent(t, "evt_m1", "payment_intent.succeeded", map[string]interface{}{"id": "pi_test_456"})
	assert.NoError(t, svc.HandleEvent(context.Background(), succeeded))
	assert.NoError(t, svc.HandleEvent(context.Background(), succeeded))
	unknown := stripeEvent(t, "evt_m2", "invoice.created", map[string]interface{}{"id": "in_1"})
	assert.NoError(t, svc.HandleEvent(context.Background(), unknown))

	assert.Equal(t, processedBefore+1, testutil.ToFloat64(processed))
	assert.Equal(t, duplicateBefore+1, testutil.ToFloat64(duplicate))
	assert.Equal(t, ignoredBefore+1, testutil.ToFloat64(ignored))
}

func TestWebhookPaymentStatusMetrics(t *testing.T) {
	completed := prometheus.PaymentStatusCounter.WithLabelValues(string(model.PaymentStatusCompleted))
	cancelled := prometheus.PaymentStatusCounter.WithLabelValues(string(model.PaymentStatusCancelled))
	failed := prometheus.PaymentStatusCounter.WithLabelValues(string(model.PaymentStatusFailed))
	completedBefore := testutil.ToFloat64(completed)
	cancelledBefore := testutil.ToFloat64(cancelled)
	failedBefore := testutil.ToFloat64(failed)

	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	payments.On("SetStatusByIntent", mock.Anything, "pi_ok", model.PaymentStatusCompleted).Return(nil)
	payments.On("SetStatusBySession", mock.Anything, "cs_gone", model.PaymentStatusCancelled).Return(nil)
	payments.On("SetStatusByIntent", mock.Anything, "pi_bad", model.PaymentStatusFailed).Return(nil)
	payments.On("SetStatusByIntent", mock.Anything, "pi_err", model.PaymentStatusFailed).Return(errors.New("db down"))

	svc := NewWebhookService(payments, events, zap.NewNop())
	assert.NoError(t, svc.HandleEvent(context.Background(),
		stripeEvent(t, "evt_s1", "payment_intent.succeeded", map[string]interface{}{"id": "pi_ok"})))
	assert.NoError(t, svc.HandleEvent(context.Background(),
		stripeEvent(t, "evt_s2", "checkout.session.expired", map[string]interface{}{"id": "cs_gone"})))
	assert.NoError(t, svc.HandleEvent(context.Background(),
		stripeEvent(t, "evt_s3", "payment_intent.payment_failed", map[string]interface{}{"id": "pi_bad"})))
	// A failed database update is not a status transition.
	assert.NoError(t, svc.HandleEvent(context.Background(),
		stripeEvent(t, "evt_s4", "payment_intent.payment_failed", map[string]interface{}{"id": "pi_err"})))

	assert.Equal(t, completedBefore+1, testutil.ToFloat64(completed))
	assert.Equal(t, cancelledBefore+1, testutil.ToFloat64(cancelled))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestWebhookLedgerFailureStillProcesses(t *testing.T) {
	payments := new(mockPaymentStore)
	events := new(mockEventStore)
	events.On("Record", mock.Anything, "evt_6", "checkout.session.expired").Return(false, errors.New("db down"))
	payments.On("SetStatusBySession", mock.Anything, "cs_test_123", model.PaymentStatusCancelled).Return(nil)

	svc := NewWebhookService(payments, events, zap.NewNop())
	event := stripeEvent(t, "evt_6", "checkout.session.expired", map[string]interface{}{
		"id": "cs_test_123",
	})

	assert.NoError(t, svc.HandleEvent(context.Background(), event))
	payments.AssertExpectations(t)
}
