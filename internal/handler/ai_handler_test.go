package handler_test

import (
	"net/http"
	"testing"

	"class-companion/internal/domain"
	"class-companion/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAIHandler_Query(t *testing.T) {
	s := newTestServer(t)
	s.completion.On("Complete", mock.Anything, domain.CompletionRequest{Prompt: "hi", Context: "tutor"}).Return("hello", nil)

	var out dto.AIQueryResponse
	resp := s.do(t, request{method: "POST", path: "/api/ai/query", body: dto.AIQueryRequest{Prompt: "hi", Context: "tutor"}}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", out.Response)
}

func TestAIHandler_OpenRouterCompletion(t *testing.T) {
	s := newTestServer(t)
	s.completion.On("Complete", mock.Anything, domain.CompletionRequest{Prompt: "sum"}).Return("42", nil)

	var out dto.CompletionResponse
	resp := s.do(t, request{method: "POST", path: "/api/openrouter-completion", body: `{"prompt":"sum"}`}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", out.Completion)
}

func TestAIHandler_Assistant(t *testing.T) {
	s := newTestServer(t)
	s.assistant.On("Ask", mock.Anything, "asst_default", "cite").Return(&domain.AssistantReply{
		Completion: "See [1]",
		Sources:    []domain.Source{{Type: domain.SourceFileCitation, Text: "[1]", Filename: "guide.pdf", FileID: "file_9"}},
	}, nil)

	var out dto.AssistantResponse
	resp := s.do(t, request{method: "POST", path: "/api/openai-assistant", body: `{"prompt":"cite"}`}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "See [1]", out.Completion)
	require.Len(t, out.Sources, 1)
	assert.Equal(t, "file_9", out.Sources[0].FileID)
}

func TestAIHandler_Chat(t *testing.T) {
	s := newTestServer(t)
	msgs := []domain.ChatMessage{{Role: domain.RoleUser, Content: "ping"}}
	s.chat.On("Chat", mock.Anything, "gpt-4o-mini", msgs).Return("pong", nil)

	var out dto.ChatResponse
	resp := s.do(t, request{method: "POST", path: "/api/ai/chat", body: dto.ChatRequest{Messages: msgs, Model: "gpt-4o-mini"}}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out.Choices, 1)
	assert.Equal(t, "pong", out.Choices[0].Message.Content)
}

func TestAIHandler_Errors(t *testing.T) {
	s := newTestServer(t)
	s.completion.On("Complete", mock.Anything, mock.Anything).Return("", domain.NewAIServiceError(assert.AnError))

	var out dto.ErrorResponse
	resp := s.do(t, request{method: "POST", path: "/api/ai/query", body: `{}`}, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out.Error, "prompt")

	resp = s.do(t, request{method: "POST", path: "/api/ai/chat", body: `{"messages":[]}`}, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, request{method: "POST", path: "/api/openrouter-completion", body: `{"prompt":"x"}`}, &out)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to get AI response", out.Error)
}
