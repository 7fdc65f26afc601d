package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fraccio/internal/model"
)

// AnnouncementService exposes tenant-wide notices.
type AnnouncementService struct {
	announcements AnnouncementStore
	log           *zap.Logger
}

func NewAnnouncementService(announcements AnnouncementStore, log *zap.Logger) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, log: log}
}

// List returns the tenant's announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context, caller *model.Profile, tenantID uuid.UUID) ([]model.Announcement, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if caller.Role != model.RoleSuperadmin {
		if err := requireTenant(caller, tenantID); err != nil {
			return nil, err
		}
	}
	return s.announcements.ListByTenant(ctx, tenantID)
}

// Create posts an announcement. Admin or superadmin only.
func (s *AnnouncementService) Create(ctx context.Context, caller *model.Profile, tenantID uuid.UUID, title, body string) (*model.Announcement, error) {
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if title == "" || body == "" {
		return nil, fmt.Errorf("%w: title and body are required", ErrValidation)
	}

	a := &model.Announcement{
		TenantID:  tenantID,
		Title:     title,
		Body:      body,
		CreatedBy: caller.ID,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		s.log.Error("Failed to create announcement", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, err
	}
	return a, nil
}
