package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdarmaan6204/nutri-tracker/repository/memory"
)

func newAuthService() (*AuthService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, tokens), users
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	user, token, err := svc.Signup(ctx, "Alice", "alice", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	loggedIn, loginToken, err := svc.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, _, err := svc.Signup(ctx, "Alice", "alice", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Other Alice", "alice", "different")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, _, err := svc.Signup(ctx, "Alice", "alice", "hunter22")
	require.NoError(t, err)

	// Unknown user and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(ctx, "nobody", "hunter22")
	_, _, wrongPassErr := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthService_SignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, _, err := svc.Signup(ctx, "", "alice", "hunter22")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Signup(ctx, "Alice", "", "hunter22")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Signup(ctx, "Alice", "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_ProfileOfVanishedUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService()

	user, _, err := svc.Signup(ctx, "Alice", "alice", "hunter22")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	users.Delete(ctx, user.ID)
	_, err = svc.Profile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
