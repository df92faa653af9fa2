package service

import (
	"context"
	"testing"
	"time"

	"class-companion/internal/config"
	"class-companion/internal/dto"
	"class-companion/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnerService_RegisterAndValidate(t *testing.T) {
	svc, err := NewLearnerService(config.JWTConfig{SecretKey: "test-secret", LearnerTokenTTL: time.Hour})
	require.NoError(t, err)
	ctx := context.Background()

	resp, err := svc.Register(ctx)
	require.NoError(t, err)
	assert.True(t, util.IsULID(resp.LearnerID))
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	learnerID, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.LearnerID, learnerID)
}

func TestLearnerService_RandomSecretWhenUnset(t *testing.T) {
	a, err := NewLearnerService(config.JWTConfig{})
	require.NoError(t, err)
	b, err := NewLearnerService(config.JWTConfig{})
	require.NoError(t, err)

	resp, err := a.Register(context.Background())
	require.NoError(t, err)
	_, err = a.ValidateToken(context.Background(), resp.Token)
	assert.NoError(t, err)
	_, err = b.ValidateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrInvalidLearnerToken)
}

func TestLearnerService_RejectsBadTokens(t *testing.T) {
	cfg := config.JWTConfig{SecretKey: "test-secret", LearnerTokenTTL: time.Hour}
	svc, err := NewLearnerService(cfg)
	require.NoError(t, err)
	ctx := context.Background()

	sign := func(claims dto.LearnerClaims, secret string) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}
	now := time.Now()
	valid := func(sub string) dto.LearnerClaims {
		return dto.LearnerClaims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "class-companion",
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
	}
	expired := valid(util.NewULID())
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	wrongIssuer := valid(util.NewULID())
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(valid(util.NewULID()), "other-secret")},
		{"expired", sign(expired, "test-secret")},
		{"wrong issuer", sign(wrongIssuer, "test-secret")},
		{"non-ulid subject", sign(valid("local"), "test-secret")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidLearnerToken)
		})
	}
}

func TestLearnerService_ExpiryUsesClock(t *testing.T) {
	svc, err := NewLearnerService(config.JWTConfig{SecretKey: "test-secret", LearnerTokenTTL: time.Hour})
	require.NoError(t, err)
	ls := svc.(*learnerService)
	start := time.Now()
	ls.now = func() time.Time { return start }

	resp, err := svc.Register(context.Background())
	require.NoError(t, err)

	ls.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrInvalidLearnerToken)
}
