package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"class-companion/internal/dto"
	"class-companion/internal/middleware"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Manual mock of service.LearnerService
type ManualMockLearnerService struct {
	ValidateTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *ManualMockLearnerService) Register(ctx context.Context) (*dto.LearnerTokenResponse, error) {
	panic("not implemented in mock")
}

func (m *ManualMockLearnerService) ValidateToken(ctx context.Context, token string) (string, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return "", errors.New("ValidateTokenFunc not set on mock")
}

func TestLearner(t *testing.T) {
	mockSvc := &ManualMockLearnerService{
		ValidateTokenFunc: func(ctx context.Context, token string) (string, error) {
			if token == "good" {
				return "01HZX3V9Q6K0M4S8T2W5Y7B1CD", nil
			}
			return "", service.ErrInvalidLearnerToken
		},
	}

	tests := []struct {
		name            string
		authHeader      string
		expectedStatus  int
		expectedLearner string
	}{
		{"No Auth Header", "", fiber.StatusOK, "local"},
		{"Valid Token", "Bearer good", fiber.StatusOK, "01HZX3V9Q6K0M4S8T2W5Y7B1CD"},
		{"Invalid Token", "Bearer bad", fiber.StatusUnauthorized, ""},
		{"Wrong Scheme", "Basic abc", fiber.StatusUnauthorized, ""},
		{"Empty Token", "Bearer ", fiber.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/whoami", middleware.Learner(mockSvc), func(c *fiber.Ctx) error {
				return c.SendString(middleware.LearnerID(c))
			})

			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedLearner != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.expectedLearner, string(body))
			}
		})
	}
}
