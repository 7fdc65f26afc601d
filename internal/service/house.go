package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fraccio/internal/model"
)

// HouseService exposes the per-tenant house directory.
type HouseService struct {
	houses HouseStore
	log    *zap.Logger
}

func NewHouseService(houses HouseStore, log *zap.Logger) *HouseService {
	return &HouseService{houses: houses, log: log}
}

// List returns the tenant's houses. Admin or superadmin only; no rows is an
// empty list, not an error.
func (s *HouseService) List(ctx context.Context, caller *model.Profile, tenantID uuid.UUID) ([]model.House, error) {
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	houses, err := s.houses.ListByTenant(ctx, tenantID)
	if err != nil {
		s.log.Error("Failed to list houses", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}
	if houses == nil {
		houses = []model.House{}
	}
	return houses, nil
}

// Create adds a house to the tenant. Admin or superadmin only.
func (s *HouseService) Create(ctx context.Context, caller *model.Profile, tenantID uuid.UUID, name, address string) (*model.House, error) {
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if len(name) < 3 || len(name) > 30 {
		return nil, fmt.Errorf("%w: name must be 3-30 characters", ErrValidation)
	}
	if len(address) < 5 {
		return nil, fmt.Errorf("%w: address must be at least 5 characters", ErrValidation)
	}

	house := &model.House{TenantID: tenantID, Name: name, Address: address}
	if err := s.houses.Create(ctx, house); err != nil {
		s.log.Error("Failed to create house", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}
	return house, nil
}

// MyHouse resolves the caller's house assignment, with ownership flag.
// Returns (nil, false, nil) when the caller has no house.
func (s *HouseService) MyHouse(ctx context.Context, caller *model.Profile) (*model.House, bool, error) {
	house, err := s.houses.UserHouse(ctx, caller.ID)
	if err != nil {
		return nil, false, err
	}
	if house == nil {
		return nil, false, nil
	}
	owner, err := s.houses.IsOwner(ctx, house.ID, caller.ID)
	if err != nil {
		return nil, false, err
	}
	return house, owner, nil
}
