package services

import (
	"testing"

	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	store := NewFakeUserStore()
	svc := NewUserService(store)

	user, err := svc.Register("alice@example.com", "alice", "s3cret-password")
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret-password", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-password")))

	stored, err := store.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, "alice", stored.Nickname)
}

func TestUserService_Register_Conflicts(t *testing.T) {
	store := NewFakeUserStore()
	svc := NewUserService(store)

	_, err := svc.Register("alice@example.com", "alice", "s3cret-password")
	require.NoError(t, err)

	_, err = svc.Register("alice@example.com", "someone-else", "s3cret-password")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register("other@example.com", "alice", "s3cret-password")
	assert.ErrorIs(t, err, ErrNicknameTaken)
}

func TestUserService_Authenticate(t *testing.T) {
	store := NewFakeUserStore()
	svc := NewUserService(store)

	registered, err := svc.Register("alice@example.com", "alice", "s3cret-password")
	require.NoError(t, err)

	user, err := svc.Authenticate("alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "s3cret-password")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetByIDAndList(t *testing.T) {
	store := NewFakeUserStore()
	svc := NewUserService(store)

	alice, err := svc.Register("alice@example.com", "alice", "s3cret-password")
	require.NoError(t, err)
	_, err = svc.Register("bob@example.com", "bob", "s3cret-password")
	require.NoError(t, err)

	got, err := svc.GetByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	users, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
