package middleware

import (
	"errors"
	"time"

	"class-companion/internal/domain"
	"class-companion/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// responseStatus predicts the status ErrorHandler will write for err, since
// the error handler runs after this middleware returns.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return fiber.StatusBadRequest
	}
	var derr *domain.DomainError
	if errors.As(err, &derr) {
		return StatusFor(derr.Code)
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code
	}
	return fiber.StatusInternalServerError
}

// RequestLogger logs every HTTP request once it has been handled.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		status := responseStatus(c, err)
		level := zapcore.InfoLevel
		if status >= fiber.StatusInternalServerError {
			level = zapcore.ErrorLevel
		}
		logger.Get().Check(level, "HTTP Request").Write(
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("learner", LearnerID(c)),
		)

		return err
	}
}
