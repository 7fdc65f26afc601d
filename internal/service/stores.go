package service

import (
	"context"

	"github.com/google/uuid"

	"fraccio/internal/model"
	"fraccio/pkg/stripeutil"
)

// Narrow store contracts consumed by the services. The gorm-backed
// repositories in internal/store satisfy them; tests substitute mocks.

type TenantStore interface {
	Create(ctx context.Context, tenant *model.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	GetByPath(ctx context.Context, path string) (*model.Tenant, error)
	List(ctx context.Context) ([]model.Tenant, error)
	ListWithStats(ctx context.Context) ([]model.TenantWithStats, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]model.Tenant, error)
}

type ProfileStore interface {
	Create(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TenantUser, error)
	ListAll(ctx context.Context) ([]model.AdminUser, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]model.Profile, error)
}

type HouseStore interface {
	Create(ctx context.Context, house *model.House) error
	GetByID(ctx context.Context, id uint) (*model.House, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.House, error)
	Count(ctx context.Context) (int64, error)
	AddUser(ctx context.Context, houseID uint, userID uuid.UUID) error
	AddOwner(ctx context.Context, houseID uint, userID uuid.UUID) error
	UserHouse(ctx context.Context, userID uuid.UUID) (*model.House, error)
	IsOwner(ctx context.Context, houseID uint, userID uuid.UUID) (bool, error)
}

type InviteStore interface {
	Create(ctx context.Context, invite *model.Invite) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invite, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentStore interface {
	CreateItem(ctx context.Context, item *model.PaymentItem) error
	ActiveItem(ctx context.Context, id uint, tenantID uuid.UUID) (*model.PaymentItem, error)
	ListActiveItems(ctx context.Context, tenantID uuid.UUID) ([]model.PaymentItem, error)
	Create(ctx context.Context, payment *model.Payment) error
	SetSessionID(ctx context.Context, paymentID uint, sessionID string) error
	GetByID(ctx context.Context, id uint) (*model.Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error)
	ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]model.Payment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Payment, error)
	Complete(ctx context.Context, paymentID uint, intentID string) error
	SetIntentID(ctx context.Context, paymentID uint, intentID string) error
	SetStatusByIntent(ctx context.Context, intentID string, status model.PaymentStatus) error
	SetStatusBySession(ctx context.Context, sessionID string, status model.PaymentStatus) error
}

type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Announcement, error)
	Count(ctx context.Context) (int64, error)
}

type WebhookEventStore interface {
	Record(ctx context.Context, eventID, eventType string) (bool, error)
}

// CheckoutProvider creates hosted checkout sessions with the payment
// processor.
type CheckoutProvider interface {
	CreateCheckoutSession(p stripeutil.CheckoutParams) (*stripeutil.CheckoutSession, error)
}
