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

// HouseStore persists houses and the occupant/owner association rows.
type HouseStore struct {
	db *gorm.DB
}

func (s *HouseStore) Create(ctx context.Context, house *model.House) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(house).Error
}

func (s *HouseStore) GetByID(ctx context.Context, id uint) (*model.House, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var house model.House
	err := s.db.WithContext(ctx).First(&house, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &house, nil
}

// ListByTenant returns the tenant's houses; absent rows come back as an
// empty slice, not an error.
func (s *HouseStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.House, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var houses []model.House
	err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&houses).Error
	if err != nil {
		return nil, err
	}
	return houses, nil
}

func (s *HouseStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	err := s.db.WithContext(ctx).Model(&model.House{}).Count(&count).Error
	return count, err
}

// AddUser records an occupancy link.
func (s *HouseStore) AddUser(ctx context.Context, houseID uint, userID uuid.UUID) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(&model.HouseUser{HouseID: houseID, UserID: userID}).Error
}

// AddOwner records an ownership link. Owners must also hold an occupancy
// link; callers create both.
func (s *HouseStore) AddOwner(ctx context.Context, houseID uint, userID uuid.UUID) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(&model.HouseOwner{HouseID: houseID, UserID: userID}).Error
}

// UserHouse resolves the caller's house assignment with the house and its
// tenant preloaded. Returns (nil, nil) when the user has no assignment.
func (s *HouseStore) UserHouse(ctx context.Context, userID uuid.UUID) (*model.House, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var link model.HouseUser
	err := s.db.WithContext(ctx).
		Preload("House").
		Preload("House.Tenant").
		First(&link, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link.House, nil
}

// IsOwner reports whether the user holds an ownership link for the house.
func (s *HouseStore) IsOwner(ctx context.Context, houseID uint, userID uuid.UUID) (bool, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	err := s.db.WithContext(ctx).Model(&model.HouseOwner{}).
		Where("house_id = ? AND user_id = ?", houseID, userID).
		Count(&count).Error
	return count > 0, err
}
