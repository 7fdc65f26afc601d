package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fraccio/internal/model"
)

// AdminService backs the superadmin area: platform-wide stats and
// directories.
type AdminService struct {
	tenants       TenantStore
	profiles      ProfileStore
	houses        HouseStore
	announcements AnnouncementStore
	log           *zap.Logger
}

func NewAdminService(tenants TenantStore, profiles ProfileStore, houses HouseStore, announcements AnnouncementStore, log *zap.Logger) *AdminService {
	return &AdminService{
		tenants:       tenants,
		profiles:      profiles,
		houses:        houses,
		announcements: announcements,
		log:           log,
	}
}

// DashboardStats aggregates the superadmin dashboard numbers.
type DashboardStats struct {
	TotalTenants       int64           `json:"total_tenants"`
	TotalUsers         int64           `json:"total_users"`
	TotalHouses        int64           `json:"total_houses"`
	TotalAnnouncements int64           `json:"total_announcements"`
	RecentTenants      []model.Tenant  `json:"recent_tenants"`
	RecentUsers        []model.Profile `json:"recent_users"`
}

const recentLimit = 5

// Stats returns platform totals plus the five most recent tenants and
// users. Superadmin only.
func (s *AdminService) Stats(ctx context.Context, caller *model.Profile) (*DashboardStats, error) {
	if caller.Role != model.RoleSuperadmin {
		return nil, ErrUnauthorized
	}

	stats := &DashboardStats{}
	var err error
	if stats.TotalTenants, err = s.tenants.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.profiles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalHouses, err = s.houses.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAnnouncements, err = s.announcements.Count(ctx); err != nil {
		return nil, err
	}
	if stats.RecentTenants, err = s.tenants.Recent(ctx, recentLimit); err != nil {
		s.log.Error("Failed to fetch recent tenants", zap.Error(err))
		return nil, err
	}
	if stats.RecentUsers, err = s.profiles.Recent(ctx, recentLimit); err != nil {
		s.log.Error("Failed to fetch recent users", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// TenantsWithStats returns every tenant with user and house counts.
// Superadmin only.
func (s *AdminService) TenantsWithStats(ctx context.Context, caller *model.Profile) ([]model.TenantWithStats, error) {
	if caller.Role != model.RoleSuperadmin {
		return nil, ErrUnauthorized
	}
	return s.tenants.ListWithStats(ctx)
}

// AllUsers returns every profile with its tenant name. Superadmin only.
func (s *AdminService) AllUsers(ctx context.Context, caller *model.Profile) ([]model.AdminUser, error) {
	if caller.Role != model.RoleSuperadmin {
		return nil, ErrUnauthorized
	}
	return s.profiles.ListAll(ctx)
}

// TenantUsers returns the user directory for one tenant. Admin only.
func (s *AdminService) TenantUsers(ctx context.Context, caller *model.Profile, tenantID uuid.UUID) ([]model.TenantUser, error) {
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.profiles.ListByTenant(ctx, tenantID)
}
