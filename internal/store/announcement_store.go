package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fraccio/internal/model"
	"fraccio/prometheus"
)

// AnnouncementStore persists tenant announcements.
type AnnouncementStore struct {
	db *gorm.DB
}

func (s *AnnouncementStore) Create(ctx context.Context, a *model.Announcement) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(a).Error
}

func (s *AnnouncementStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Announcement, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var announcements []model.Announcement
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (s *AnnouncementStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	err := s.db.WithContext(ctx).Model(&model.Announcement{}).Count(&count).Error
	return count, err
}
