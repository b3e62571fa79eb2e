package service

import (
	"context"
	"errors"
	"testing"

	"github.com/srikumaragency/b-admin-prod-03/internal/config"
	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *model.Admin) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &model.Admin{
		ID:           uuid.New(),
		Email:        "owner@suncrackers.com",
		Name:         "Owner",
		PasswordHash: string(hash),
		Rol:          "admin",
		IsActive:     true,
	}
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8, JWTRefreshHours: 24}
	return NewAuthService(newStubAdminRepo(admin), cfg), admin
}

func TestLogin_ValidCredentials(t *testing.T) {
	svc, admin := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "OWNER@suncrackers.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, admin.ID.String(), resp.Admin.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "owner@suncrackers.com", Password: "nope"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "s3cret!"})
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLogin_UsernameAlias(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "owner@suncrackers.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "owner@suncrackers.com", Password: "s3cret!"})
	require.NoError(t, err)

	t.Run("refresh token issues a new pair", func(t *testing.T) {
		resp, err := svc.Refresh(context.Background(), login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("access token is refused", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), login.AccessToken)
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("garbage is refused", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not-a-token")
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})
}
