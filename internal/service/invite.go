package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fraccio/internal/model"
	"fraccio/internal/store"
)

// InviteService issues and resolves time-boxed signup invitations.
type InviteService struct {
	invites InviteStore
	log     *zap.Logger
}

func NewInviteService(invites InviteStore, log *zap.Logger) *InviteService {
	return &InviteService{invites: invites, log: log}
}

// CreateInput carries a new invitation. The admin gate is enforced here
// because invitations mint tenant access.
type CreateInput struct {
	Email      string
	Name       string
	TenantID   uuid.UUID
	HouseID    uint
	HouseOwner bool
}

// Create issues an invite expiring in 7 days. A live invite for the same
// (email, tenant) pair fails with ErrAlreadyInvited, enforced by the
// store's unique index rather than a racy read-then-write.
func (s *InviteService) Create(ctx context.Context, caller *model.Profile, in CreateInput) (*model.Invite, error) {
	if !caller.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.HouseID == 0 {
		return nil, fmt.Errorf("%w: house is required", ErrValidation)
	}

	invite := &model.Invite{
		Email:      in.Email,
		Name:       in.Name,
		TenantID:   in.TenantID,
		HouseID:    in.HouseID,
		HouseOwner: in.HouseOwner,
		ExpiresAt:  time.Now().Add(model.InviteTTL),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		if errors.Is(err, store.ErrDuplicateInvite) {
			return nil, ErrAlreadyInvited
		}
		s.log.Error("Failed to create invite", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	// No outbound mail: the token is returned to the admin UI, which shares
	// the accept link.
	s.log.Info("User invited",
		zap.String("email", in.Email),
		zap.String("tenant_id", in.TenantID.String()),
		zap.Uint("house_id", in.HouseID))
	return invite, nil
}

// Get resolves an invite token. Expiration is lazy: an expired invite is
// deleted on read and reported as absent.
func (s *InviteService) Get(ctx context.Context, token uuid.UUID) (*model.Invite, error) {
	invite, err := s.invites.GetByID(ctx, token)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, nil
	}
	if invite.Expired(time.Now()) {
		if err := s.invites.Delete(ctx, invite.ID); err != nil {
			s.log.Error("Failed to delete expired invite", zap.String("invite_id", invite.ID.String()), zap.Error(err))
		}
		return nil, nil
	}
	return invite, nil
}

// Remove deletes an invite by token. Removing an absent invite succeeds.
func (s *InviteService) Remove(ctx context.Context, token uuid.UUID) error {
	return s.invites.Delete(ctx, token)
}
