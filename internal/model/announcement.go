package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a tenant-wide notice shown on the anuncios page.
type Announcement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at"`
}
