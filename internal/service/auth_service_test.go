package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/nutrition-service/internal/config"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}, repo)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "user@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	token, _, err := svc.Login(ctx, "user@example.com", "hunter22")
	require.NoError(t, err)

	subject, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "user@example.com", "different")
	require.Error(t, err)

	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "DUPLICATE_ACCOUNT", de.Code)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user@example.com", "hunter22")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "other@example.com", password: "hunter22"},
		{name: "wrong password", email: "user@example.com", password: "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.email, tt.password)
			require.Error(t, err)

			// Unknown email and bad password must be indistinguishable.
			var de *apperrors.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
		})
	}
}
