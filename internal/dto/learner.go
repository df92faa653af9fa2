package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LearnerClaims are the JWT claims of a learner token. Subject is the learner id.
type LearnerClaims struct {
	jwt.RegisteredClaims
}

// LearnerTokenResponse is returned when a learner is registered
type LearnerTokenResponse struct {
	LearnerID string    `json:"learnerId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
