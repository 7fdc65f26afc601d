package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fraccio/internal/model"
	"fraccio/pkg/jwtutil"
)

const minPasswordLength = 6

// AuthService handles login and the invite-driven signup flow.
type AuthService struct {
	profiles ProfileStore
	houses   HouseStore
	invites  InviteStore
	log      *zap.Logger
}

func NewAuthService(profiles ProfileStore, houses HouseStore, invites InviteStore, log *zap.Logger) *AuthService {
	return &AuthService{profiles: profiles, houses: houses, invites: invites, log: log}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.Profile, error) {
	if email == "" || len(password) < minPasswordLength {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if profile == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(profile)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// SignupInput carries the accept-invite form. Email is sourced from the
// invite, never from the client.
type SignupInput struct {
	InviteID uuid.UUID
	Name     string
	Password string
}

// Signup consumes an invite: it creates the account, links it to the
// invite's house (owner and occupant, or occupant only) and deletes the
// invite. If a house link fails after the account exists, the account is
// rolled back so no orphaned identity is left behind. Invite deletion
// failure is logged but does not fail the signup.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.Profile, error) {
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	invite, err := s.invites.GetByID(ctx, in.InviteID)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, ErrNotFound
	}
	if invite.Expired(time.Now()) {
		if err := s.invites.Delete(ctx, invite.ID); err != nil {
			s.log.Error("Failed to delete expired invite", zap.String("invite_id", invite.ID.String()), zap.Error(err))
		}
		return nil, ErrInviteExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tenantID := invite.TenantID
	profile := &model.Profile{
		Email:        invite.Email,
		FullName:     in.Name,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		TenantID:     &tenantID,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if invite.HouseOwner {
		if err := s.houses.AddOwner(ctx, invite.HouseID, profile.ID); err != nil {
			s.rollbackProfile(ctx, profile.ID)
			return nil, fmt.Errorf("failed to link house owner: %w", err)
		}
	}

	if err := s.houses.AddUser(ctx, invite.HouseID, profile.ID); err != nil {
		s.rollbackProfile(ctx, profile.ID)
		return nil, fmt.Errorf("failed to link house user: %w", err)
	}

	if err := s.invites.Delete(ctx, invite.ID); err != nil {
		// The account is usable even if the invite row lingers; it will be
		// reaped on its next read after expiry.
		s.log.Error("Failed to delete consumed invite",
			zap.String("invite_id", invite.ID.String()),
			zap.Error(err))
	}

	s.log.Info("User signed up",
		zap.String("email", profile.Email),
		zap.String("tenant_id", tenantID.String()),
		zap.Bool("house_owner", invite.HouseOwner))
	return profile, nil
}

func (s *AuthService) rollbackProfile(ctx context.Context, id uuid.UUID) {
	if err := s.profiles.Delete(ctx, id); err != nil {
		s.log.Error("Failed to roll back profile after signup failure",
			zap.String("profile_id", id.String()),
			zap.Error(err))
	}
}
