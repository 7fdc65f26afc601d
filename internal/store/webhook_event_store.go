package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fraccio/internal/model"
	"fraccio/prometheus"
)

// WebhookEventStore records processed Stripe event ids for idempotency.
type WebhookEventStore struct {
	db *gorm.DB
}

// Record inserts the event id and reports whether this delivery is the
// first. A replayed id conflicts with the primary key and returns false.
func (s *WebhookEventStore) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	event := model.WebhookEvent{
		ID:         eventID,
		Type:       eventType,
		ReceivedAt: time.Now(),
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
