package admin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/exclusivefashions/storefront/pkg/config"
	"github.com/exclusivefashions/storefront/pkg/db/dbtest"
	"github.com/exclusivefashions/storefront/pkg/db/models"
	"github.com/exclusivefashions/storefront/pkg/enums"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessions struct {
	mu      sync.Mutex
	live    map[string]string
	openErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{live: map[string]string{}}
}

func (m *memorySessions) Open(_ context.Context, accessID, userID string) error {
	if m.openErr != nil {
		return m.openErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[accessID] = userID
	return nil
}

func (m *memorySessions) HasSession(_ context.Context, accessID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live[accessID]
	return ok, nil
}

func (m *memorySessions) Revoke(_ context.Context, accessID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, accessID)
	return nil
}

func testHasher() *security.Hasher {
	return security.NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
}

func newTestService(t *testing.T) (Service, *Repository, *memorySessions) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	sessions := newMemorySessions()
	svc, err := NewService(ServiceParams{
		Users:    repo,
		Sessions: sessions,
		Hasher:   testHasher(),
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "exclusive-fashions",
			ExpirationMinutes: 60,
		},
	})
	require.NoError(t, err)
	return svc, repo, sessions
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Users: NewRepository(nil)})
	require.Error(t, err)
}

func TestEnsureAccountCreatesThenUpdates(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureAccount(ctx, " Owner@Example.com ", "first-password", enums.AdminRoleOwner)
	require.NoError(t, err)
	assert.True(t, created)

	user, err := repo.FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, enums.AdminRoleOwner, user.Role)
	firstHash := user.PasswordHash

	created, err = svc.EnsureAccount(ctx, "owner@example.com", "second-password", enums.AdminRoleStaff)
	require.NoError(t, err)
	assert.False(t, created)

	user, err = repo.FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, enums.AdminRoleStaff, user.Role)
	assert.NotEqual(t, firstHash, user.PasswordHash)
}

func TestEnsureAccountValidates(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.EnsureAccount(context.Background(), "", "password", enums.AdminRoleOwner)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.EnsureAccount(context.Background(), "a@example.com", "password", enums.AdminRole("root"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, repo, sessions := newTestService(t)
	ctx := context.Background()

	_, err := svc.EnsureAccount(ctx, "owner@example.com", "correct-horse", enums.AdminRoleOwner)
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginRequest{Email: "OWNER@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "owner@example.com", result.Principal.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

	user, err := repo.FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)

	principal, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, enums.AdminRoleOwner, principal.Role)
	assert.Equal(t, result.Principal.AccessID, principal.AccessID)
	assert.Len(t, sessions.live, 1)

	require.NoError(t, svc.Logout(ctx, result.Token))
	assert.Empty(t, sessions.live)

	_, err = svc.Authenticate(ctx, result.Token)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	_, err := svc.EnsureAccount(ctx, "staff@example.com", "right-password", enums.AdminRoleStaff)
	require.NoError(t, err)

	cases := []LoginRequest{
		{Email: "staff@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "right-password"},
		{Email: "", Password: "right-password"},
		{Email: "staff@example.com", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized), "email=%q", req.Email)
	}
	assert.Empty(t, sessions.live)
}

func TestLoginSurfacesSessionFailure(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()
	_, err := svc.EnsureAccount(ctx, "owner@example.com", "correct-horse", enums.AdminRoleOwner)
	require.NoError(t, err)

	sessions.openErr = errors.New("redis down")
	_, err = svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "correct-horse"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = svc.Authenticate(context.Background(), "not.a.jwt")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	assert.NoError(t, svc.Logout(context.Background(), "not.a.jwt"))
}

func TestRepositoryLowercasesEmail(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	user := &models.AdminUser{Email: "Mixed@Case.COM", PasswordHash: "x", Role: enums.AdminRoleStaff}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "MIXED@case.com")
	require.NoError(t, err)
	assert.Equal(t, "mixed@case.com", found.Email)
}

func TestRepositoryCreateDuplicateIsConflict(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.AdminUser{Email: "owner@example.com", PasswordHash: "x", Role: enums.AdminRoleOwner}))
	err := repo.Create(ctx, &models.AdminUser{Email: "OWNER@example.com", PasswordHash: "y", Role: enums.AdminRoleOwner})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}
