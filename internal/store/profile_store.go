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

// ProfileStore persists user profiles.
type ProfileStore struct {
	db *gorm.DB
}

func (s *ProfileStore) Create(ctx context.Context, profile *model.Profile) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(profile).Error
}

// Delete removes a profile outright. Used only as the compensating action
// when signup fails after the identity was created.
func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(&model.Profile{}, "id = ?", id).Error
}

func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var profile model.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var profile model.Profile
	err := s.db.WithContext(ctx).First(&profile, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByTenant returns the tenant user directory with house names and
// ownership resolved.
func (s *ProfileStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TenantUser, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var profiles []model.Profile
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	out := make([]model.TenantUser, 0, len(profiles))
	for _, p := range profiles {
		var names []string
		err := s.db.WithContext(ctx).
			Model(&model.HouseUser{}).
			Joins("JOIN houses ON houses.id = house_users.house_id").
			Where("house_users.user_id = ?", p.ID).
			Pluck("houses.name", &names).Error
		if err != nil {
			return nil, err
		}

		var owners int64
		if err := s.db.WithContext(ctx).Model(&model.HouseOwner{}).Where("user_id = ?", p.ID).Count(&owners).Error; err != nil {
			return nil, err
		}

		out = append(out, model.TenantUser{
			ID:         p.ID,
			FullName:   p.FullName,
			Email:      p.Email,
			HouseOwner: owners > 0,
			HouseNames: names,
		})
	}
	return out, nil
}

// ListAll returns every profile with its tenant name resolved, newest first.
func (s *ProfileStore) ListAll(ctx context.Context) ([]model.AdminUser, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var profiles []model.Profile
	if err := s.db.WithContext(ctx).Preload("Tenant").Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	out := make([]model.AdminUser, 0, len(profiles))
	for _, p := range profiles {
		u := model.AdminUser{
			ID:        p.ID,
			FullName:  p.FullName,
			Email:     p.Email,
			Role:      p.Role,
			TenantID:  p.TenantID,
			CreatedAt: p.CreatedAt,
		}
		if p.Tenant != nil {
			u.TenantName = p.Tenant.Name
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *ProfileStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	err := s.db.WithContext(ctx).Model(&model.Profile{}).Count(&count).Error
	return count, err
}

// Recent returns the most recently created profiles, newest first.
func (s *ProfileStore) Recent(ctx context.Context, limit int) ([]model.Profile, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var profiles []model.Profile
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}
