package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fraccio/internal/model"
	"fraccio/pkg/stripeutil"
)

type mockTenantStore struct {
	mock.Mock
}

func (m *mockTenantStore) Create(ctx context.Context, tenant *model.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *mockTenantStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantStore) GetByPath(ctx context.Context, path string) (*model.Tenant, error) {
	args := m.Called(ctx, path)
	if t, ok := args.Get(0).(*model.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantStore) List(ctx context.Context) ([]model.Tenant, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]model.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantStore) ListWithStats(ctx context.Context) ([]model.TenantWithStats, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]model.TenantWithStats); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTenantStore) Recent(ctx context.Context, limit int) ([]model.Tenant, error) {
	args := m.Called(ctx, limit)
	if t, ok := args.Get(0).([]model.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProfileStore struct {
	mock.Mock
}

func (m *mockProfileStore) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileStore) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	if p, ok := args.Get(0).(*model.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TenantUser, error) {
	args := m.Called(ctx, tenantID)
	if u, ok := args.Get(0).([]model.TenantUser); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileStore) ListAll(ctx context.Context) ([]model.AdminUser, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]model.AdminUser); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProfileStore) Recent(ctx context.Context, limit int) ([]model.Profile, error) {
	args := m.Called(ctx, limit)
	if p, ok := args.Get(0).([]model.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHouseStore struct {
	mock.Mock
}

func (m *mockHouseStore) Create(ctx context.Context, house *model.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *mockHouseStore) GetByID(ctx context.Context, id uint) (*model.House, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*model.House); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHouseStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.House, error) {
	args := m.Called(ctx, tenantID)
	if h, ok := args.Get(0).([]model.House); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHouseStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHouseStore) AddUser(ctx context.Context, houseID uint, userID uuid.UUID) error {
	args := m.Called(ctx, houseID, userID)
	return args.Error(0)
}

func (m *mockHouseStore) AddOwner(ctx context.Context, houseID uint, userID uuid.UUID) error {
	args := m.Called(ctx, houseID, userID)
	return args.Error(0)
}

func (m *mockHouseStore) UserHouse(ctx context.Context, userID uuid.UUID) (*model.House, error) {
	args := m.Called(ctx, userID)
	if h, ok := args.Get(0).(*model.House); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHouseStore) IsOwner(ctx context.Context, houseID uint, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, houseID, userID)
	return args.Bool(0), args.Error(1)
}

type mockInviteStore struct {
	mock.Mock
}

func (m *mockInviteStore) Create(ctx context.Context, invite *model.Invite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *mockInviteStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Invite, error) {
	args := m.Called(ctx, id)
	if i, ok := args.Get(0).(*model.Invite); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInviteStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPaymentStore struct {
	mock.Mock
}

func (m *mockPaymentStore) CreateItem(ctx context.Context, item *model.PaymentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockPaymentStore) ActiveItem(ctx context.Context, id uint, tenantID uuid.UUID) (*model.PaymentItem, error) {
	args := m.Called(ctx, id, tenantID)
	if i, ok := args.Get(0).(*model.PaymentItem); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentStore) ListActiveItems(ctx context.Context, tenantID uuid.UUID) ([]model.PaymentItem, error) {
	args := m.Called(ctx, tenantID)
	if i, ok := args.Get(0).([]model.PaymentItem); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentStore) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentStore) SetSessionID(ctx context.Context, paymentID uint, sessionID string) error {
	args := m.Called(ctx, paymentID, sessionID)
	return args.Error(0)
}

func (m *mockPaymentStore) GetByID(ctx context.Context, id uint) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentStore) GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error) {
	args := m.Called(ctx, sessionID)
	if p, ok := args.Get(0).(*model.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentStore) ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, tenantID, userID)
	if p, ok := args.Get(0).([]model.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, tenantID)
	if p, ok := args.Get(0).([]model.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentStore) Complete(ctx context.Context, paymentID uint, intentID string) error {
	args := m.Called(ctx, paymentID, intentID)
	return args.Error(0)
}

func (m *mockPaymentStore) SetIntentID(ctx context.Context, paymentID uint, intentID string) error {
	args := m.Called(ctx, paymentID, intentID)
	return args.Error(0)
}

func (m *mockPaymentStore) SetStatusByIntent(ctx context.Context, intentID string, status model.PaymentStatus) error {
	args := m.Called(ctx, intentID, status)
	return args.Error(0)
}

func (m *mockPaymentStore) SetStatusBySession(ctx context.Context, sessionID string, status model.PaymentStatus) error {
	args := m.Called(ctx, sessionID, status)
	return args.Error(0)
}

type mockAnnouncementStore struct {
	mock.Mock
}

func (m *mockAnnouncementStore) Create(ctx context.Context, a *model.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAnnouncementStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Announcement, error) {
	args := m.Called(ctx, tenantID)
	if a, ok := args.Get(0).([]model.Announcement); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnnouncementStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	args := m.Called(ctx, eventID, eventType)
	return args.Bool(0), args.Error(1)
}

type mockCheckoutProvider struct {
	mock.Mock
}

func (m *mockCheckoutProvider) CreateCheckoutSession(p stripeutil.CheckoutParams) (*stripeutil.CheckoutSession, error) {
	args := m.Called(p)
	if s, ok := args.Get(0).(*stripeutil.CheckoutSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
