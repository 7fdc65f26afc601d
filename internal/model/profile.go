package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a user account. It doubles as the authentication
// identity (email + password hash) and the authorization record (role +
// tenant assignment). TenantID stays nil until an invite is accepted or a
// superadmin assigns one; once set it gates all tenant-scoped access.
type Profile struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	FullName     string     `json:"full_name" gorm:"type:varchar(100);not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt    time.Time  `json:"created_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// TenantUser is the per-tenant user directory projection used by the
// usuarios page: profile basics plus the houses the user occupies.
type TenantUser struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	HouseOwner bool      `json:"house_owner"`
	HouseNames []string  `json:"house_names"`
}

// AdminUser is the superadmin directory projection: any profile with its
// tenant name resolved (empty when unassigned).
type AdminUser struct {
	ID         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty"`
	TenantName string     `json:"tenant_name"`
	CreatedAt  time.Time  `json:"created_at"`
}
