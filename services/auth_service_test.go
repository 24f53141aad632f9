package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/testhelpers"
)

func TestLoginAndValidate(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	auth := NewAuthService(testSecret)

	admin, err := auth.CreateAdmin(ctx, "Admin@Agence.fr", "motdepasse", "Alex")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "admin@agence.fr", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, dto.LoginRequest{Email: "nobody@agence.fr", Password: "motdepasse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := auth.Login(ctx, dto.LoginRequest{Email: "admin@agence.fr", Password: "motdepasse"})
	require.NoError(t, err)
	assert.Equal(t, "/admin", resp.Redirect)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), resp.ExpiresAt, time.Minute)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.True(t, auth.Principal(claims).IsAdmin())

	_, err = NewAuthService("other-secret").ValidateToken(resp.Token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	auth := NewAuthService(testSecret)
	auth.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, _, err := auth.GenerateToken(models.User{Base: models.Base{ID: "u1"}, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewAuthService(testSecret).ValidateToken(token)
	assert.Error(t, err)
}

func TestClientTokenWithoutClientRejected(t *testing.T) {
	auth := NewAuthService(testSecret)
	token, _, err := auth.GenerateToken(models.User{Base: models.Base{ID: "u1"}, Role: models.RoleClient})
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	auth := NewAuthService(testSecret)
	admin, err := auth.CreateAdmin(ctx, "a@agence.fr", "motdepasse", "A")
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "nouveaumdp"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, auth.ChangePassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "motdepasse", NewPassword: "nouveaumdp"}))
	_, err = auth.Login(ctx, dto.LoginRequest{Email: "a@agence.fr", Password: "nouveaumdp"})
	assert.NoError(t, err)
}

func TestCreateAdminRejectsDuplicateAndShortPassword(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	auth := NewAuthService(testSecret)

	_, err := auth.CreateAdmin(ctx, "a@agence.fr", "short", "A")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = auth.CreateAdmin(ctx, "a@agence.fr", "motdepasse", "A")
	require.NoError(t, err)
	_, err = auth.CreateAdmin(ctx, "a@agence.fr", "motdepasse", "A")
	assert.ErrorIs(t, err, ErrConflict)
}
