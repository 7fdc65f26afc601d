package model

import (
	"time"

	"github.com/google/uuid"
)

// InviteTTL is how long an invite stays valid after creation.
const InviteTTL = 7 * 24 * time.Hour

// Invite grants one email address permission to sign up under a specific
// tenant and house. The row id doubles as the invite token embedded in the
// accept-invite link. The (email, tenant_id) unique index is what enforces
// the single-live-invite rule; expired rows are reaped lazily on read.
type Invite struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email      string    `json:"email" gorm:"type:varchar(100);uniqueIndex:idx_invites_email_tenant;not null"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	TenantID   uuid.UUID `json:"tenant_id" gorm:"type:uuid;uniqueIndex:idx_invites_email_tenant;not null"`
	HouseID    uint      `json:"house_id" gorm:"not null"`
	HouseOwner bool      `json:"house_owner" gorm:"default:false"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// Expired reports whether the invite is past its expiration.
func (i Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
