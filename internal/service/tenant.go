package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fraccio/internal/model"
)

// TenantService exposes the tenant directory.
type TenantService struct {
	tenants TenantStore
	log     *zap.Logger
}

func NewTenantService(tenants TenantStore, log *zap.Logger) *TenantService {
	return &TenantService{tenants: tenants, log: log}
}

// List returns all tenants. Superadmin only.
func (s *TenantService) List(ctx context.Context, caller *model.Profile) ([]model.Tenant, error) {
	if caller.Role != model.RoleSuperadmin {
		return nil, ErrUnauthorized
	}
	return s.tenants.List(ctx)
}

// GetByPath returns the tenant for the URL slug, or nil when absent.
func (s *TenantService) GetByPath(ctx context.Context, path string) (*model.Tenant, error) {
	return s.tenants.GetByPath(ctx, path)
}

// GetByID returns the tenant by id, or nil when absent.
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// Create registers a new tenant. Superadmin only; a taken path surfaces as
// ErrPathTaken via the unique index.
func (s *TenantService) Create(ctx context.Context, caller *model.Profile, name, path string) (*model.Tenant, error) {
	if caller.Role != model.RoleSuperadmin {
		return nil, ErrUnauthorized
	}
	if len(name) < 3 {
		return nil, fmt.Errorf("%w: name must be at least 3 characters", ErrValidation)
	}
	if len(path) < 3 {
		return nil, fmt.Errorf("%w: path must be at least 3 characters", ErrValidation)
	}
	if Slugify(path) != path {
		return nil, fmt.Errorf("%w: path must be a lowercase slug", ErrValidation)
	}

	tenant := &model.Tenant{Name: name, Path: path}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPathTaken
		}
		s.log.Error("Failed to create tenant", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	s.log.Info("Tenant created", zap.String("tenant_id", tenant.ID.String()), zap.String("path", path))
	return tenant, nil
}

var (
	nonWordRun = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenTrim = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-routable path segment from a display name:
// lowercase, non-word runs collapsed to single hyphens, leading/trailing
// hyphens trimmed. Uniqueness is enforced only by the database constraint.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonWordRun.ReplaceAllString(slug, "-")
	slug = hyphenTrim.ReplaceAllString(slug, "")
	return slug
}
