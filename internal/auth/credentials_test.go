package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
	"github.com/gamenight/backend/internal/storage/sqlite"
)

func newCredentialService(t *testing.T) *CredentialService {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewCredentialService(store, NewJWTManager("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	svc := newCredentialService(t)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice", "password-one")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdministrator, alice.Role, "first account must be administrator")

	bob, err := svc.Register(ctx, "bob", "password-two")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStandard, bob.Role, "later accounts must be standard")

	_, err = svc.Register(ctx, "Alice", "password-three")
	assert.ErrorIs(t, err, apperr.ErrConflict, "username must be unique case-insensitively")

	_, err = svc.Register(ctx, "", "password-four")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Register(ctx, "dave", "short")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLogin(t *testing.T) {
	svc := newCredentialService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password-one")
	require.NoError(t, err)

	t.Run("valid credentials issue a parsable session", func(t *testing.T) {
		token, account, err := svc.Login(ctx, "alice", "password-one")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", account.Username)

		identity, err := svc.ParseSession(token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, identity.ID)
		assert.Equal(t, "alice", identity.Username)
		assert.Equal(t, models.RoleAdministrator, identity.Role)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ALICE", "password-one")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "password-one")
		assert.ErrorIs(t, err, apperr.ErrAuthentication)
		assert.EqualError(t, err, "not found")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, apperr.ErrAuthentication)
		assert.EqualError(t, err, "wrong password")
	})
}

func TestChangePassword(t *testing.T) {
	svc := newCredentialService(t)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice", "password-one")
	require.NoError(t, err)

	t.Run("fails closed on wrong old password", func(t *testing.T) {
		changed, err := svc.ChangePassword(ctx, alice.ID, "wrong-password", "password-two")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("fails closed on missing account", func(t *testing.T) {
		changed, err := svc.ChangePassword(ctx, 999, "password-one", "password-two")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("rotates the credential on success", func(t *testing.T) {
		changed, err := svc.ChangePassword(ctx, alice.ID, "password-one", "password-two")
		require.NoError(t, err)
		assert.True(t, changed)

		_, _, err = svc.Login(ctx, "alice", "password-one")
		assert.ErrorIs(t, err, apperr.ErrAuthentication, "old password must stop working")

		_, _, err = svc.Login(ctx, "alice", "password-two")
		assert.NoError(t, err, "new password must work")
	})
}

// brokenStorage fails every call the way a storage outage would.
type brokenStorage struct{ err error }

func (b brokenStorage) CreateAccount(context.Context, string, string, string) (*models.Account, error) {
	return nil, b.err
}

func (b brokenStorage) GetAccountByUsername(context.Context, string) (*models.Account, error) {
	return nil, b.err
}

func (b brokenStorage) GetAccountByID(context.Context, int64) (*models.Account, error) {
	return nil, b.err
}

func (b brokenStorage) UpdateAccountPassword(context.Context, int64, string, string) error {
	return b.err
}

func TestStorageFailuresStayInternal(t *testing.T) {
	boom := errors.New("disk I/O error")
	svc := NewCredentialService(brokenStorage{err: boom}, NewJWTManager("test-secret", time.Hour))
	ctx := context.Background()

	t.Run("login", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "password-one")
		require.ErrorIs(t, err, boom, "storage failure must propagate")
		assert.NotErrorIs(t, err, apperr.ErrAuthentication, "storage failure must not read as bad credentials")
	})

	t.Run("change password", func(t *testing.T) {
		changed, err := svc.ChangePassword(ctx, 1, "password-one", "password-two")
		require.ErrorIs(t, err, boom, "storage failure must propagate, not fail closed")
		assert.False(t, changed)
	})
}

func TestParseSessionInvalid(t *testing.T) {
	svc := newCredentialService(t)

	identity, err := svc.ParseSession("garbage")
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
	assert.True(t, identity.IsAnonymous(), "failed parse must leave the requester anonymous")
}
