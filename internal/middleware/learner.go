package middleware

import (
	"strings"

	"class-companion/internal/logger"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	LearnerIDKey        = "learnerID" // Key for storing the learner id in fiber.Ctx locals
)

// Learner scopes every request to one learner. A valid bearer token selects
// the learner it was issued to; a request without an Authorization header is
// served as the default learner. Anything else is rejected.
func Learner(learners service.LearnerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			c.Locals(LearnerIDKey, service.DefaultLearnerID)
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		learnerID, err := learners.ValidateToken(c.Context(), tokenString)
		if err != nil {
			logger.Get().Debug("Learner token rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(LearnerIDKey, learnerID)
		return c.Next()
	}
}

// LearnerID returns the learner the request is scoped to.
func LearnerID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LearnerIDKey).(string); ok && id != "" {
		return id
	}
	return service.DefaultLearnerID
}
