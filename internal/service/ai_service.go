package service

import (
	"context"
	"strings"

	"class-companion/internal/domain"
	"class-companion/internal/logger"
	"class-companion/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AIService backs the AI proxy endpoints. Identical requests in flight at
// the same time share one upstream call.
type AIService interface {
	Query(ctx context.Context, prompt, systemContext string) (string, error)
	Completion(ctx context.Context, prompt string) (string, error)
	AssistantCompletion(ctx context.Context, assistantID, prompt string) (*domain.AssistantReply, error)
	Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error)
}

type aiService struct {
	openRouter         port.CompletionProvider
	chat               port.CompletionProvider
	assistant          port.AssistantProvider
	defaultAssistantID string
	group              singleflight.Group
}

func NewAIService(openRouter, chat port.CompletionProvider, assistant port.AssistantProvider, defaultAssistantID string) AIService {
	return &aiService{
		openRouter:         openRouter,
		chat:               chat,
		assistant:          assistant,
		defaultAssistantID: defaultAssistantID,
	}
}

func flightKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func (s *aiService) Query(ctx context.Context, prompt, systemContext string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ValidationErrors{domain.NewMissingFieldError("prompt")}
	}
	v, err, shared := s.group.Do(flightKey("query", prompt, systemContext), func() (interface{}, error) {
		return s.openRouter.Complete(ctx, domain.CompletionRequest{Prompt: prompt, Context: systemContext})
	})
	if err != nil {
		logger.Get().Error("AI query failed", zap.Error(err))
		return "", err
	}
	if shared {
		logger.Get().Debug("AI query shared with an in-flight request")
	}
	return v.(string), nil
}

func (s *aiService) Completion(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ValidationErrors{domain.NewMissingFieldError("prompt")}
	}
	v, err, _ := s.group.Do(flightKey("completion", prompt), func() (interface{}, error) {
		return s.openRouter.Complete(ctx, domain.CompletionRequest{Prompt: prompt})
	})
	if err != nil {
		logger.Get().Error("OpenRouter completion failed", zap.Error(err))
		return "", err
	}
	return v.(string), nil
}

func (s *aiService) AssistantCompletion(ctx context.Context, assistantID, prompt string) (*domain.AssistantReply, error) {
	if assistantID == "" {
		assistantID = s.defaultAssistantID
	}
	var missing []domain.ValidationError
	if strings.TrimSpace(prompt) == "" {
		missing = append(missing, domain.NewMissingFieldError("prompt"))
	}
	if assistantID == "" {
		missing = append(missing, domain.NewMissingFieldError("assistantId"))
	}
	if len(missing) > 0 {
		return nil, domain.ValidationErrors(missing)
	}

	v, err, _ := s.group.Do(flightKey("assistant", assistantID, prompt), func() (interface{}, error) {
		return s.assistant.Ask(ctx, assistantID, prompt)
	})
	if err != nil {
		logger.Get().Error("Assistant completion failed", zap.String("assistant_id", assistantID), zap.Error(err))
		return nil, err
	}
	return v.(*domain.AssistantReply), nil
}

func (s *aiService) Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error) {
	var missing []domain.ValidationError
	if len(messages) == 0 {
		missing = append(missing, domain.NewMissingFieldError("messages"))
	}
	if strings.TrimSpace(model) == "" {
		missing = append(missing, domain.NewMissingFieldError("model"))
	}
	if len(missing) > 0 {
		return "", domain.ValidationErrors(missing)
	}

	parts := []string{"chat", model}
	for _, m := range messages {
		parts = append(parts, m.Role, m.Content)
	}
	v, err, _ := s.group.Do(flightKey(parts...), func() (interface{}, error) {
		return s.chat.Chat(ctx, model, messages)
	})
	if err != nil {
		logger.Get().Error("AI chat failed", zap.String("model", model), zap.Error(err))
		return "", err
	}
	return v.(string), nil
}
