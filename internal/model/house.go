package model

import (
	"time"

	"github.com/google/uuid"
)

// House is a property unit within a tenant.
type House struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(30);not null"`
	Address   string    `json:"address" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// HouseUser links a profile to a house as an occupant. A profile may be
// linked to a given house at most once.
type HouseUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	HouseID   uint      `json:"house_id" gorm:"uniqueIndex:idx_house_users_house_user;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_house_users_house_user;not null"`
	CreatedAt time.Time `json:"created_at"`

	House *House `json:"house,omitempty" gorm:"foreignKey:HouseID"`
}

// HouseOwner marks an occupant as the owner of a house. Ownership is a
// strict subset of occupancy: every owner also has a HouseUser row.
type HouseOwner struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	HouseID   uint      `json:"house_id" gorm:"uniqueIndex:idx_house_owners_house_user;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_house_owners_house_user;not null"`
	CreatedAt time.Time `json:"created_at"`

	House *House `json:"house,omitempty" gorm:"foreignKey:HouseID"`
}
