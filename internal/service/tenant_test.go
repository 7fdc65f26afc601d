package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fraccio/internal/model"
)

func superadminProfile() *model.Profile {
	return &model.Profile{ID: uuid.New(), Email: "root@example.com", Role: model.RoleSuperadmin}
}

func adminProfile(tenantID uuid.UUID) *model.Profile {
	return &model.Profile{ID: uuid.New(), Email: "admin@example.com", Role: model.RoleAdmin, TenantID: &tenantID}
}

func userProfile(tenantID uuid.UUID) *model.Profile {
	return &model.Profile{ID: uuid.New(), Email: "user@example.com", Role: model.RoleUser, TenantID: &tenantID}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Los Pinos", "los-pinos"},
		{"  Villa   del Mar  ", "villa-del-mar"},
		{"Privada-Norte", "privada-norte"},
		{"UPPER", "upper"},
		{"a!@#b", "a-b"},
		{"---", ""},
		{"residencial2000", "residencial2000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestTenantCreateRequiresSuperadmin(t *testing.T) {
	tenants := new(mockTenantStore)
	svc := NewTenantService(tenants, zap.NewNop())

	_, err := svc.Create(context.Background(), adminProfile(uuid.New()), "Los Pinos", "los-pinos")
	assert.ErrorIs(t, err, ErrUnauthorized)
	tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTenantCreateValidation(t *testing.T) {
	tenants := new(mockTenantStore)
	svc := NewTenantService(tenants, zap.NewNop())
	caller := superadminProfile()

	_, err := svc.Create(context.Background(), caller, "ab", "los-pinos")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), caller, "Los Pinos", "Los Pinos")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTenantCreatePathTaken(t *testing.T) {
	tenants := new(mockTenantStore)
	tenants.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	svc := NewTenantService(tenants, zap.NewNop())

	_, err := svc.Create(context.Background(), superadminProfile(), "Los Pinos", "los-pinos")
	assert.ErrorIs(t, err, ErrPathTaken)
}

func TestTenantCreateSuccess(t *testing.T) {
	tenants := new(mockTenantStore)
	tenants.On("Create", mock.Anything, mock.MatchedBy(func(tn *model.Tenant) bool {
		return tn.Name == "Los Pinos" && tn.Path == "los-pinos"
	})).Return(nil)
	svc := NewTenantService(tenants, zap.NewNop())

	tenant, err := svc.Create(context.Background(), superadminProfile(), "Los Pinos", "los-pinos")
	assert.NoError(t, err)
	assert.Equal(t, "los-pinos", tenant.Path)
	tenants.AssertExpectations(t)
}

func TestTenantListRequiresSuperadmin(t *testing.T) {
	tenants := new(mockTenantStore)
	svc := NewTenantService(tenants, zap.NewNop())

	_, err := svc.List(context.Background(), userProfile(uuid.New()))
	assert.ErrorIs(t, err, ErrUnauthorized)
}
