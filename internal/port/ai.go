package port

import (
	"context"

	"class-companion/internal/domain"
)

// CompletionProvider generates text from a chat-completion model.
type CompletionProvider interface {
	// Complete answers a single prompt. req.Context, when set, is sent as the system message.
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
	// Chat forwards a full conversation. An empty model uses the provider default.
	Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error)
	Name() string
}

// AssistantProvider runs a prompt against a retrieval-augmented assistant.
type AssistantProvider interface {
	Ask(ctx context.Context, assistantID, prompt string) (*domain.AssistantReply, error)
}
