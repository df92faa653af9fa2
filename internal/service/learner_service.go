package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"class-companion/internal/config"
	"class-companion/internal/dto"
	"class-companion/internal/logger"
	"class-companion/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// DefaultLearnerID scopes requests that carry no learner token.
	DefaultLearnerID  = "local"
	learnerIssuer     = "class-companion"
	defaultLearnerTTL = 30 * 24 * time.Hour
)

var ErrInvalidLearnerToken = errors.New("invalid learner token")

// LearnerService issues and validates self-signed learner tokens.
type LearnerService interface {
	Register(ctx context.Context) (*dto.LearnerTokenResponse, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

type learnerService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewLearnerService signs tokens with cfg.SecretKey. Without a secret a random
// one is generated, so tokens do not survive a restart.
func NewLearnerService(cfg config.JWTConfig) (LearnerService, error) {
	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate learner token secret: %w", err)
		}
		logger.Get().Warn("jwt.secret_key is not set; learner tokens are valid until restart")
	}
	ttl := cfg.LearnerTokenTTL
	if ttl <= 0 {
		ttl = defaultLearnerTTL
	}
	return &learnerService{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (s *learnerService) Register(ctx context.Context) (*dto.LearnerTokenResponse, error) {
	learnerID := util.NewULID()
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.LearnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    learnerIssuer,
			Subject:   learnerID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign learner token: %w", err)
	}
	logger.Get().Info("Registered learner", zap.String("learner", learnerID))
	return &dto.LearnerTokenResponse{LearnerID: learnerID, Token: token, ExpiresAt: expiresAt.UTC()}, nil
}

// ValidateToken returns the learner id carried by token.
func (s *learnerService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims := &dto.LearnerClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(learnerIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("Learner token expired", zap.Error(err))
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidLearnerToken, err)
	}
	if !parsed.Valid || !util.IsULID(claims.Subject) {
		return "", ErrInvalidLearnerToken
	}
	return claims.Subject, nil
}
