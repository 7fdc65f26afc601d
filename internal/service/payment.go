package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fraccio/internal/model"
	"fraccio/pkg/stripeutil"
)

// PaymentService owns payment items, checkout creation and payment reads.
type PaymentService struct {
	payments PaymentStore
	houses   HouseStore
	provider CheckoutProvider
	baseURL  string
	log      *zap.Logger
}

func NewPaymentService(payments PaymentStore, houses HouseStore, provider CheckoutProvider, baseURL string, log *zap.Logger) *PaymentService {
	return &PaymentService{payments: payments, houses: houses, provider: provider, baseURL: baseURL, log: log}
}

// requireTenant checks the caller belongs to the requested tenant.
func requireTenant(caller *model.Profile, tenantID uuid.UUID) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if caller.TenantID == nil || *caller.TenantID != tenantID {
		return ErrUnauthorized
	}
	return nil
}

// CreateItemInput carries a new payment item. Amount is in major currency
// units.
type CreateItemInput struct {
	TenantID    uuid.UUID
	Name        string
	Description string
	Amount      float64
	PaymentType model.PaymentType
}

// CreateItem defines a payable charge for the tenant. Admin only.
func (s *PaymentService) CreateItem(ctx context.Context, caller *model.Profile, in CreateItemInput) (*model.PaymentItem, error) {
	if err := requireTenant(caller, in.TenantID); err != nil {
		return nil, err
	}
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !in.PaymentType.Valid() {
		return nil, fmt.Errorf("%w: invalid payment type", ErrValidation)
	}

	item := &model.PaymentItem{
		TenantID:    in.TenantID,
		Name:        in.Name,
		Amount:      in.Amount,
		Currency:    model.DefaultCurrency,
		PaymentType: in.PaymentType,
		IsActive:    true,
	}
	if in.Description != "" {
		item.Description = &in.Description
	}
	if err := s.payments.CreateItem(ctx, item); err != nil {
		s.log.Error("Failed to create payment item", zap.String("tenant_id", in.TenantID.String()), zap.Error(err))
		return nil, err
	}

	s.log.Info("Payment item created",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("amount", item.Amount))
	return item, nil
}

// ListItems returns the tenant's active payment items.
func (s *PaymentService) ListItems(ctx context.Context, caller *model.Profile, tenantID uuid.UUID) ([]model.PaymentItem, error) {
	if err := requireTenant(caller, tenantID); err != nil {
		return nil, err
	}
	return s.payments.ListActiveItems(ctx, tenantID)
}

// History returns the caller's own payments within the tenant.
func (s *PaymentService) History(ctx context.Context, caller *model.Profile, tenantID uuid.UUID) ([]model.Payment, error) {
	if err := requireTenant(caller, tenantID); err != nil {
		return nil, err
	}
	return s.payments.ListByUser(ctx, tenantID, caller.ID)
}

// AdminPayments returns every payment in the tenant. Admin only.
func (s *PaymentService) AdminPayments(ctx context.Context, caller *model.Profile, tenantID uuid.UUID) ([]model.Payment, error) {
	if err := requireTenant(caller, tenantID); err != nil {
		return nil, err
	}
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.payments.ListByTenant(ctx, tenantID)
}

// BySession resolves a payment by its checkout session id for the success
// page. The caller must own the payment or be a tenant admin.
func (s *PaymentService) BySession(ctx context.Context, caller *model.Profile, tenantID uuid.UUID, sessionID string) (*model.Payment, error) {
	if err := requireTenant(caller, tenantID); err != nil {
		return nil, err
	}
	payment, err := s.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.TenantID != tenantID {
		return nil, ErrNotFound
	}
	if payment.UserID != caller.ID && !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return payment, nil
}

// CheckoutResult is what the client needs to redirect to the hosted page.
type CheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// Checkout creates a pending payment record and a hosted checkout session
// for an active payment item. The tenant is the one already resolved by the
// route guard; the amount always comes from the stored item. Nothing from
// the client reaches the payment row.
func (s *PaymentService) Checkout(ctx context.Context, caller *model.Profile, tenant *model.Tenant, itemID uint) (*CheckoutResult, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if caller.TenantID == nil || *caller.TenantID != tenant.ID {
		s.log.Error("User does not belong to tenant",
			zap.String("user", caller.Email),
			zap.String("requested_tenant", tenant.ID.String()))
		return nil, ErrUnauthorized
	}

	// Re-fetch the item by id, tenant and active flag: the trust boundary
	// against stale, deactivated or cross-tenant item ids.
	item, err := s.payments.ActiveItem(ctx, itemID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	house, err := s.houses.UserHouse(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if house == nil {
		s.log.Error("User has no assigned house", zap.String("user", caller.Email))
		return nil, ErrNoHouseAssigned
	}
	// Defense in depth against inconsistent data.
	if house.TenantID != tenant.ID {
		s.log.Error("House does not belong to tenant",
			zap.Uint("house_id", house.ID),
			zap.String("house_tenant", house.TenantID.String()),
			zap.String("requested_tenant", tenant.ID.String()))
		return nil, ErrUnauthorized
	}

	description := item.Name
	if item.Description != nil && *item.Description != "" {
		description = *item.Description
	}

	payment := &model.Payment{
		TenantID:    tenant.ID,
		UserID:      caller.ID,
		HouseID:     house.ID,
		Amount:      item.Amount,
		Currency:    item.Currency,
		Status:      model.PaymentStatusPending,
		PaymentType: item.PaymentType,
		Description: description,
	}
	if err := s.payments.Create(ctx, payment); err != nil || payment.ID == 0 {
		s.log.Error("Failed to create payment record", zap.Error(err))
		return nil, ErrPaymentRecordFailed
	}

	itemDescription := ""
	if item.Description != nil {
		itemDescription = *item.Description
	}

	session, err := s.provider.CreateCheckoutSession(stripeutil.CheckoutParams{
		Name:        item.Name,
		Description: itemDescription,
		Amount:      int64(math.Round(item.Amount * 100)),
		Currency:    model.DefaultCurrency,
		SuccessURL:  fmt.Sprintf("%s/%s/pagos/success?session_id={CHECKOUT_SESSION_ID}", s.baseURL, tenant.Path),
		CancelURL:   fmt.Sprintf("%s/%s/pagos/cancel", s.baseURL, tenant.Path),
		Metadata: map[string]string{
			"payment_id": fmt.Sprintf("%d", payment.ID),
			"tenant_id":  tenant.ID.String(),
			"user_id":    caller.Email,
			"house_id":   fmt.Sprintf("%d", house.ID),
		},
	})
	if err != nil {
		s.log.Error("Failed to create checkout session", zap.Uint("payment_id", payment.ID), zap.Error(err))
		return nil, err
	}

	// Best effort: the session already exists and remains recoverable via
	// its metadata on the next webhook event.
	if err := s.payments.SetSessionID(ctx, payment.ID, session.ID); err != nil {
		s.log.Error("Failed to update payment with session ID",
			zap.Uint("payment_id", payment.ID),
			zap.Error(err))
	}

	s.log.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.Uint("payment_id", payment.ID),
		zap.Float64("amount", item.Amount))
	return &CheckoutResult{URL: session.URL, SessionID: session.ID}, nil
}
