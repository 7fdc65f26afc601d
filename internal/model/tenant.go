package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents one housing development (fraccionamiento).
// This is the top-level multi-tenancy boundary: every tenant-scoped row
// carries a tenant_id and every tenant-scoped request is checked against it.
type Tenant struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `json:"name" gorm:"type:varchar(100);not null"`
	// Path is the URL-routable slug. Globally unique and immutable once links
	// reference it.
	Path      string    `json:"path" gorm:"type:varchar(63);uniqueIndex;not null"`
	Address   *string   `json:"address,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantWithStats is the admin directory projection: a tenant plus its
// user and house counts.
type TenantWithStats struct {
	Tenant
	UsersCount  int64 `json:"users_count"`
	HousesCount int64 `json:"houses_count"`
}
