package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"class-companion/internal/config"
	"class-companion/internal/domain"
	"class-companion/internal/logger"
	"class-companion/internal/port"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// contentGenerator is the slice of llms.Model this adapter needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// CompletionProvider implements port.CompletionProvider on any OpenAI-compatible
// chat-completions API through langchaingo. OpenRouter and OpenAI both use it.
type CompletionProvider struct {
	name  string
	model contentGenerator
}

var _ port.CompletionProvider = (*CompletionProvider)(nil)

// NewCompletionProvider builds a provider from cfg. Without an API key every
// call fails with an AI_UNCONFIGURED error instead of reaching the network.
func NewCompletionProvider(name string, cfg config.ProviderConfig, httpClient *http.Client) (*CompletionProvider, error) {
	if cfg.APIKey == "" {
		logger.Get().Warn("AI provider has no API key; requests will fail", zap.String("provider", name))
		return &CompletionProvider{name: name}, nil
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", name, err)
	}
	return &CompletionProvider{name: name, model: llm}, nil
}

func newCompletionProviderWithModel(name string, model contentGenerator) *CompletionProvider {
	return &CompletionProvider{name: name, model: model}
}

func (p *CompletionProvider) Name() string { return p.name }

func (p *CompletionProvider) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	messages := make([]domain.ChatMessage, 0, 2)
	if strings.TrimSpace(req.Context) != "" {
		messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: req.Context})
	}
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: req.Prompt})
	return p.Chat(ctx, req.Model, messages)
}

func (p *CompletionProvider) Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error) {
	if p.model == nil {
		return "", domain.NewAIUnconfiguredError(p.name)
	}
	if len(messages) == 0 {
		return "", domain.NewInvalidInputError("at least one message is required")
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(chatMessageType(m.Role), m.Content))
	}

	var opts []llms.CallOption
	if model != "" {
		opts = append(opts, llms.WithModel(model))
	}

	l := logger.Get()
	resp, err := p.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("AI request timed out", zap.String("provider", p.name), zap.Error(err))
		} else {
			l.Error("AI request failed", zap.String("provider", p.name), zap.Error(err))
		}
		return "", domain.NewAIServiceError(fmt.Errorf("%s: %w", p.name, err))
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewAIServiceError(fmt.Errorf("%s: empty response", p.name))
	}
	return resp.Choices[0].Content, nil
}

func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case domain.RoleSystem:
		return llms.ChatMessageTypeSystem
	case domain.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
