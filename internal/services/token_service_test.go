package services

import (
	"testing"
	"time"

	"github.com/bitwatch/bitwatch-api/internal/config"
	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 30 * 24 * time.Hour,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Nickname: "alice",
		Role:     models.RoleUser,
	}
}

func TestTokenService_AccessTokenClaims(t *testing.T) {
	cfg := testTokenConfig()
	svc := NewTokenService(cfg)
	user := testUser()

	raw, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.AccessTokenSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.AccessTokenExpiry), exp.Time, 5*time.Second)
}

func TestTokenService_RefreshRoundTrip(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	user := testUser()

	raw, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestTokenService_VerifyRefreshToken_Invalid(t *testing.T) {
	cfg := testTokenConfig()
	svc := NewTokenService(cfg)
	user := testUser()

	valid, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	expiredCfg := testTokenConfig()
	expiredCfg.RefreshTokenExpiry = -time.Minute
	expired, err := NewTokenService(expiredCfg).IssueRefreshToken(user)
	require.NoError(t, err)

	wrongSecretCfg := testTokenConfig()
	wrongSecretCfg.RefreshTokenSecret = "some-other-secret"
	wrongSecret, err := NewTokenService(wrongSecretCfg).IssueRefreshToken(user)
	require.NoError(t, err)

	// Signed with the access secret instead of the refresh secret.
	crossSigned, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "tampered token", raw: valid + "x"},
		{name: "expired token", raw: expired},
		{name: "wrong secret", raw: wrongSecret},
		{name: "access token used as refresh", raw: crossSigned},
		{name: "garbage", raw: "not-a-jwt"},
		{name: "empty", raw: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.VerifyRefreshToken(test.raw)
			assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		})
	}
}

func TestTokenService_RotationKeepsClaims(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	user := testUser()

	first, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(first)
	require.NoError(t, err)

	// Rotation re-issues from the same user; the new token must carry the
	// same identity.
	rotated, err := svc.IssueRefreshToken(&models.User{ID: claims.UserID, Email: claims.Email})
	require.NoError(t, err)

	rotatedClaims, err := svc.VerifyRefreshToken(rotated)
	require.NoError(t, err)
	assert.Equal(t, user.ID, rotatedClaims.UserID)
	assert.Equal(t, user.Email, rotatedClaims.Email)
}
