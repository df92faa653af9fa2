package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"class-companion/internal/domain"
	"class-companion/internal/logger"
	"class-companion/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	t.Cleanup(restore)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/locked", func(c *fiber.Ctx) error { return domain.NewStageLockedError(domain.StageBusinessCase) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{"/ok", http.StatusOK, zapcore.InfoLevel},
		{"/locked", http.StatusLocked, zapcore.InfoLevel},
		{"/boom", http.StatusInternalServerError, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			entries := logs.FilterMessage("HTTP Request").FilterField(zap.String("path", tt.path)).AllUntimed()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.EqualValues(t, tt.status, fields["status"])
			assert.Equal(t, "local", fields["learner"])
		})
	}
}
