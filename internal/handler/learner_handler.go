package handler

import (
	"context"
	"time"

	"class-companion/internal/domain"
	"class-companion/internal/dto"
	"class-companion/internal/logger"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// LearnerHandler registers learners and reports service health.
type LearnerHandler struct {
	learners service.LearnerService
	store    domain.Store
	backend  string
}

func NewLearnerHandler(learners service.LearnerService, store domain.Store, backend string) *LearnerHandler {
	return &LearnerHandler{learners: learners, store: store, backend: backend}
}

// Register godoc
// @Summary Register a learner
// @Description Issues a new learner id and a bearer token scoping later requests to it
// @Tags learners
// @Produce json
// @Success 201 {object} dto.LearnerTokenResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /learners [post]
func (h *LearnerHandler) Register(c *fiber.Ctx) error {
	resp, err := h.learners.Register(c.UserContext())
	if err != nil {
		return domain.NewInternalError("failed to register learner", err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Health godoc
// @Summary Health check
// @Description Pings the configured key-value store
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *LearnerHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Get().Error("Health check failed", zap.String("backend", h.backend), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Storage: h.backend})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Storage: h.backend})
}
