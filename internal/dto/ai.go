package dto

import "class-companion/internal/domain"

// AIQueryRequest is a single-turn prompt with optional system context
// @Description Request body for /ai/query
type AIQueryRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
}

type AIQueryResponse struct {
	Response string `json:"response"`
}

type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

type CompletionResponse struct {
	Completion string `json:"completion"`
}

type AssistantRequest struct {
	Prompt      string `json:"prompt"`
	AssistantID string `json:"assistantId"`
}

type AssistantResponse struct {
	Completion string          `json:"completion"`
	Sources    []domain.Source `json:"sources"`
}

// ChatRequest is passed through to a chat-completions model
type ChatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
	Model    string               `json:"model"`
}

type ChatChoice struct {
	Message domain.ChatMessage `json:"message"`
}

type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}
