package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentType classifies what a charge is for.
type PaymentType string

const (
	PaymentTypeMaintenance PaymentType = "maintenance"
	PaymentTypeAssessment  PaymentType = "assessment"
	PaymentTypeFine        PaymentType = "fine"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeMaintenance, PaymentTypeAssessment, PaymentTypeFine:
		return true
	}
	return false
}

// PaymentStatus tracks a payment through the checkout flow. Transitions are
// one-directional out of pending; completed, failed and cancelled are
// terminal.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// DefaultCurrency is the only currency this deployment accepts.
const DefaultCurrency = "mxn"

// PaymentItem is a payable charge template scoped to a tenant, e.g. the
// monthly maintenance fee. Only active items are offered for payment.
type PaymentItem struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	TenantID    uuid.UUID   `json:"tenant_id" gorm:"type:uuid;index;not null"`
	Name        string      `json:"name" gorm:"type:varchar(100);not null"`
	Description *string     `json:"description,omitempty" gorm:"type:text"`
	Amount      float64     `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency    string      `json:"currency" gorm:"type:varchar(3);not null;default:'mxn'"`
	PaymentType PaymentType `json:"payment_type" gorm:"type:varchar(20);not null"`
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Payment is one instance of a user paying against a PaymentItem. Amount and
// currency are copied from the item at creation time and never re-read or
// accepted from the client afterwards.
type Payment struct {
	ID                    uint          `json:"id" gorm:"primaryKey"`
	TenantID              uuid.UUID     `json:"tenant_id" gorm:"type:uuid;index;not null"`
	UserID                uuid.UUID     `json:"user_id" gorm:"type:uuid;index;not null"`
	HouseID               uint          `json:"house_id" gorm:"not null"`
	Amount                float64       `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency              string        `json:"currency" gorm:"type:varchar(3);not null"`
	Status                PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentType           PaymentType   `json:"payment_type" gorm:"type:varchar(20);not null"`
	Description           string        `json:"description" gorm:"type:text"`
	StripeSessionID       string        `json:"stripe_session_id" gorm:"type:varchar(255);index"`
	StripePaymentIntentID string        `json:"stripe_payment_intent_id" gorm:"type:varchar(255);index"`
	ReceiptURL            *string       `json:"receipt_url,omitempty" gorm:"type:text"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`

	House   *House   `json:"house,omitempty" gorm:"foreignKey:HouseID"`
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}
