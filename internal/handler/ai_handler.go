package handler

import (
	"errors"

	"class-companion/internal/domain"
	"class-companion/internal/dto"
	"class-companion/internal/logger"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// aiFailureMessage is the only detail an AI proxy failure exposes to callers.
const aiFailureMessage = "Failed to get AI response"

// AIHandler proxies prompts to the configured AI providers.
type AIHandler struct {
	service service.AIService
}

func NewAIHandler(service service.AIService) *AIHandler {
	return &AIHandler{service: service}
}

// respondAIError answers 400 for missing fields and a generic 500 for everything else.
func respondAIError(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verrs.Error()})
	}
	logger.Get().Error("AI proxy request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: aiFailureMessage})
}

// Query godoc
// @Summary Single-turn AI completion
// @Description The optional context is sent as the system message
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.AIQueryRequest true "Prompt"
// @Success 200 {object} dto.AIQueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ai/query [post]
func (h *AIHandler) Query(c *fiber.Ctx) error {
	var req dto.AIQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	out, err := h.service.Query(c.UserContext(), req.Prompt, req.Context)
	if err != nil {
		return respondAIError(c, err)
	}
	return c.JSON(dto.AIQueryResponse{Response: out})
}

// OpenRouterCompletion godoc
// @Summary OpenRouter completion
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.CompletionRequest true "Prompt"
// @Success 200 {object} dto.CompletionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /openrouter-completion [post]
func (h *AIHandler) OpenRouterCompletion(c *fiber.Ctx) error {
	var req dto.CompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	out, err := h.service.Completion(c.UserContext(), req.Prompt)
	if err != nil {
		return respondAIError(c, err)
	}
	return c.JSON(dto.CompletionResponse{Completion: out})
}

// OpenAIAssistant godoc
// @Summary Retrieval-augmented completion via an OpenAI assistant
// @Description Citations in the answer are returned as sources
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.AssistantRequest true "Prompt and assistant"
// @Success 200 {object} dto.AssistantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /openai-assistant [post]
func (h *AIHandler) OpenAIAssistant(c *fiber.Ctx) error {
	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	reply, err := h.service.AssistantCompletion(c.UserContext(), req.AssistantID, req.Prompt)
	if err != nil {
		return respondAIError(c, err)
	}
	sources := reply.Sources
	if sources == nil {
		sources = []domain.Source{}
	}
	return c.JSON(dto.AssistantResponse{Completion: reply.Completion, Sources: sources})
}

// Chat godoc
// @Summary Chat completion passthrough
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Messages and model"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	out, err := h.service.Chat(c.UserContext(), req.Model, req.Messages)
	if err != nil {
		return respondAIError(c, err)
	}
	return c.JSON(dto.ChatResponse{Choices: []dto.ChatChoice{
		{Message: domain.ChatMessage{Role: domain.RoleAssistant, Content: out}},
	}})
}
