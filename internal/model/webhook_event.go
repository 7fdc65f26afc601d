package model

import "time"

// WebhookEvent records a processed Stripe event id. The webhook endpoint is
// delivered at-least-once; inserting here before applying effects makes a
// replayed event a no-op instead of an incidental one.
type WebhookEvent struct {
	ID         string    `json:"id" gorm:"type:varchar(255);primaryKey"`
	Type       string    `json:"type" gorm:"type:varchar(100);not null"`
	ReceivedAt time.Time `json:"received_at"`
}
