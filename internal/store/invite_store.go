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

// ErrDuplicateInvite reports a live invite already existing for the same
// (email, tenant) pair. It is produced by the unique index on the table, so
// two concurrent identical requests cannot both succeed.
var ErrDuplicateInvite = errors.New("invite already exists for email and tenant")

// InviteStore persists invites.
type InviteStore struct {
	db *gorm.DB
}

func (s *InviteStore) Create(ctx context.Context, invite *model.Invite) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if invite.ExpiresAt.IsZero() {
		invite.ExpiresAt = time.Now().Add(model.InviteTTL)
	}
	err := s.db.WithContext(ctx).Create(invite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateInvite
	}
	return err
}

func (s *InviteStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Invite, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var invite model.Invite
	err := s.db.WithContext(ctx).Preload("Tenant").First(&invite, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// Delete removes the invite by id. Deleting an absent invite is not an
// error.
func (s *InviteStore) Delete(ctx context.Context, id uuid.UUID) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(&model.Invite{}, "id = ?", id).Error
}
