package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"fraccio/internal/model"
	"fraccio/pkg/config"
	"fraccio/pkg/jwtutil"
)

type stubProfileLoader struct {
	profile *model.Profile
}

func (s stubProfileLoader) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if s.profile != nil && s.profile.ID == id {
		return s.profile, nil
	}
	return nil, nil
}

type stubTenantResolver struct {
	tenant *model.Tenant
}

func (s stubTenantResolver) GetByPath(ctx context.Context, path string) (*model.Tenant, error) {
	if s.tenant != nil && s.tenant.Path == path {
		return s.tenant, nil
	}
	return nil, nil
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func newAuthContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMissingToken(t *testing.T) {
	mw := Auth(stubProfileLoader{})
	c, rec := newAuthContext("")

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	mw := Auth(stubProfileLoader{})
	c, rec := newAuthContext("Token abc")

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	mw := Auth(stubProfileLoader{})
	c, rec := newAuthContext("Bearer not-a-jwt")

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLoadsProfile(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	profile := &model.Profile{ID: uuid.New(), Email: "vecino@example.com", Role: model.RoleUser}
	token, err := jwtutil.GenerateToken(profile)
	assert.NoError(t, err)

	mw := Auth(stubProfileLoader{profile: profile})
	c, rec := newAuthContext("Bearer " + token)

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, profile.ID, CurrentProfile(c).ID)
}

func TestAuthUnknownProfile(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	token, err := jwtutil.GenerateToken(&model.Profile{ID: uuid.New(), Email: "gone@example.com"})
	assert.NoError(t, err)

	mw := Auth(stubProfileLoader{})
	c, rec := newAuthContext("Bearer " + token)

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func newTenantContext(path string, profile *model.Profile) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("tenant")
	c.SetParamValues(path)
	if profile != nil {
		c.Set(ProfileKey, profile)
	}
	return c, rec
}

func TestTenantGuardUnknownTenant(t *testing.T) {
	mw := TenantGuard(stubTenantResolver{})
	c, rec := newTenantContext("ghost", &model.Profile{Role: model.RoleUser})

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTenantGuardMemberAllowed(t *testing.T) {
	tenant := &model.Tenant{ID: uuid.New(), Name: "Los Pinos", Path: "los-pinos"}
	profile := &model.Profile{ID: uuid.New(), Role: model.RoleUser, TenantID: &tenant.ID}

	mw := TenantGuard(stubTenantResolver{tenant: tenant})
	c, rec := newTenantContext("los-pinos", profile)

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenant.ID, CurrentTenant(c).ID)
}

func TestTenantGuardForeignMemberDenied(t *testing.T) {
	tenant := &model.Tenant{ID: uuid.New(), Name: "Los Pinos", Path: "los-pinos"}
	otherTenant := uuid.New()
	profile := &model.Profile{ID: uuid.New(), Role: model.RoleUser, TenantID: &otherTenant}

	mw := TenantGuard(stubTenantResolver{tenant: tenant})
	c, rec := newTenantContext("los-pinos", profile)

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantGuardUnassignedDenied(t *testing.T) {
	tenant := &model.Tenant{ID: uuid.New(), Name: "Los Pinos", Path: "los-pinos"}
	profile := &model.Profile{ID: uuid.New(), Role: model.RoleUser}

	mw := TenantGuard(stubTenantResolver{tenant: tenant})
	c, rec := newTenantContext("los-pinos", profile)

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantGuardSuperadminBypass(t *testing.T) {
	tenant := &model.Tenant{ID: uuid.New(), Name: "Los Pinos", Path: "los-pinos"}
	profile := &model.Profile{ID: uuid.New(), Role: model.RoleSuperadmin}

	mw := TenantGuard(stubTenantResolver{tenant: tenant})
	c, rec := newTenantContext("los-pinos", profile)

	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
