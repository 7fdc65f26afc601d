package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fraccio/internal/model"
	"fraccio/prometheus"
)

// PaymentStore persists payment items and payments.
type PaymentStore struct {
	db *gorm.DB
}

func (s *PaymentStore) CreateItem(ctx context.Context, item *model.PaymentItem) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(item).Error
}

// ActiveItem re-fetches an item by id, tenant and active flag. This is the
// trust boundary for checkout: a stale, deactivated or cross-tenant item id
// comes back as (nil, nil).
func (s *PaymentStore) ActiveItem(ctx context.Context, id uint, tenantID uuid.UUID) (*model.PaymentItem, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var item model.PaymentItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_active = ?", id, tenantID, true).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListActiveItems returns the tenant's payable items, newest first.
func (s *PaymentStore) ListActiveItems(ctx context.Context, tenantID uuid.UUID) ([]model.PaymentItem, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var items []model.PaymentItem
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *PaymentStore) Create(ctx context.Context, payment *model.Payment) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(payment).Error
}

// SetSessionID attaches the external checkout session id right after
// creation.
func (s *PaymentStore) SetSessionID(ctx context.Context, paymentID uint, sessionID string) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("stripe_session_id", sessionID).Error
}

func (s *PaymentStore) GetByID(ctx context.Context, id uint) (*model.Payment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentStore) GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, "stripe_session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByUser returns the user's payments within a tenant with house names
// resolved, newest first.
func (s *PaymentStore) ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]model.Payment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Preload("House").
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// ListByTenant returns every payment in the tenant with house and payer
// resolved, newest first.
func (s *PaymentStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Payment, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Preload("House").
		Preload("Profile").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// Complete marks the payment identified by its local id as completed and
// records the payment intent id. Terminal rows are left untouched, which is
// what makes duplicate webhook delivery a no-op.
func (s *PaymentStore) Complete(ctx context.Context, paymentID uint, intentID string) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":                   model.PaymentStatusCompleted,
			"stripe_payment_intent_id": intentID,
		}).Error
}

// SetIntentID records the payment intent id without changing status. Used
// when the checkout completed event arrives before the session is paid.
func (s *PaymentStore) SetIntentID(ctx context.Context, paymentID uint, intentID string) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("stripe_payment_intent_id", intentID).Error
}

// SetStatusByIntent transitions the payment matched by payment intent id.
// Only pending rows move; completed/failed/cancelled are terminal.
func (s *PaymentStore) SetStatusByIntent(ctx context.Context, intentID string, status model.PaymentStatus) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("stripe_payment_intent_id = ? AND status = ?", intentID, model.PaymentStatusPending).
		Update("status", status).Error
}

// SetStatusBySession transitions the payment matched by checkout session id.
func (s *PaymentStore) SetStatusBySession(ctx context.Context, sessionID string, status model.PaymentStatus) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("stripe_session_id = ? AND status = ?", sessionID, model.PaymentStatusPending).
		Update("status", status).Error
}
