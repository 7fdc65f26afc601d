package store

import (
	"gorm.io/gorm"
)

// Stores bundles the per-table repositories over a shared gorm handle.
type Stores struct {
	Tenants       *TenantStore
	Profiles      *ProfileStore
	Houses        *HouseStore
	Invites       *InviteStore
	Payments      *PaymentStore
	Announcements *AnnouncementStore
	Events        *WebhookEventStore
}

// New builds the repository set. cache may be nil, which disables tenant
// caching.
func New(db *gorm.DB, cache *TenantCache) *Stores {
	return &Stores{
		Tenants:       &TenantStore{db: db, cache: cache},
		Profiles:      &ProfileStore{db: db},
		Houses:        &HouseStore{db: db},
		Invites:       &InviteStore{db: db},
		Payments:      &PaymentStore{db: db},
		Announcements: &AnnouncementStore{db: db},
		Events:        &WebhookEventStore{db: db},
	}
}
