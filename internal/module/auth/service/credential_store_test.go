package service_test

import (
	"context"
	"testing"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticCredentialStorePlaintext(t *testing.T) {
	store := service.NewStaticCredentialStore(admin, `0987poiu"@&)`, "")

	identity, err := store.Verify(context.Background(), "operator", `0987poiu"@&)`)
	require.NoError(t, err)
	assert.Equal(t, admin, *identity)

	cases := []struct{ username, password string }{
		{"operator", "wrong"},
		{"someone", `0987poiu"@&)`},
		{"", ""},
		{"operator", ""},
	}
	for _, c := range cases {
		_, err := store.Verify(context.Background(), c.username, c.password)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials, "%s/%s", c.username, c.password)
	}
}

func TestStaticCredentialStoreBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	store := service.NewStaticCredentialStore(admin, "", string(hash))

	_, err = store.Verify(context.Background(), "operator", "hunter2")
	assert.NoError(t, err)

	_, err = store.Verify(context.Background(), "operator", string(hash))
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestNewCredentialStoreFromConfig(t *testing.T) {
	_, err := service.NewCredentialStore(shared.SetupCfg(nil))
	assert.Error(t, err)

	store, err := service.NewCredentialStore(shared.SetupCfg(map[string]interface{}{
		"auth.user.username": "operator",
		"auth.user.password": "pw",
	}))
	require.NoError(t, err)

	identity, err := store.Verify(context.Background(), "operator", "pw")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), identity.UserID)
	assert.Equal(t, "admin", identity.Role)
	assert.Equal(t, "Marketplace Admin", identity.DisplayName)
}
