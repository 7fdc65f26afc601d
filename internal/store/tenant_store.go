package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fraccio/internal/model"
	"fraccio/prometheus"
)

// TenantStore persists tenants. Reads return (nil, nil) when the row is
// absent; uniqueness of the path slug is enforced by the database index.
type TenantStore struct {
	db    *gorm.DB
	cache *TenantCache
}

func (s *TenantStore) Create(ctx context.Context, tenant *model.Tenant) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, tenant.Path)
	}
	return nil
}

func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	err := s.db.WithContext(ctx).First(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *TenantStore) GetByPath(ctx context.Context, path string) (*model.Tenant, error) {
	if s.cache != nil {
		if tenant := s.cache.GetByPath(ctx, path); tenant != nil {
			return tenant, nil
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	err := s.db.WithContext(ctx).First(&tenant, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, &tenant)
	}
	return &tenant, nil
}

func (s *TenantStore) List(ctx context.Context) ([]model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenants []model.Tenant
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

// ListWithStats returns all tenants with their user and house counts.
func (s *TenantStore) ListWithStats(ctx context.Context) ([]model.TenantWithStats, error) {
	tenants, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	out := make([]model.TenantWithStats, 0, len(tenants))
	for _, t := range tenants {
		var users, houses int64
		if err := s.db.WithContext(ctx).Model(&model.Profile{}).Where("tenant_id = ?", t.ID).Count(&users).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&model.House{}).Where("tenant_id = ?", t.ID).Count(&houses).Error; err != nil {
			return nil, err
		}
		out = append(out, model.TenantWithStats{Tenant: t, UsersCount: users, HousesCount: houses})
	}
	return out, nil
}

func (s *TenantStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	err := s.db.WithContext(ctx).Model(&model.Tenant{}).Count(&count).Error
	return count, err
}

// Recent returns the most recently created tenants, newest first.
func (s *TenantStore) Recent(ctx context.Context, limit int) ([]model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenants []model.Tenant
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&tenants).Error
	return tenants, err
}
