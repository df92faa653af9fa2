package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"class-companion/internal/adapter"
	"class-companion/internal/config"
	"class-companion/internal/course"
	"class-companion/internal/domain"
	"class-companion/internal/handler"
	"class-companion/internal/middleware"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- testify mocks for the AI ports ---

type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionProvider) Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error) {
	args := m.Called(ctx, model, messages)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionProvider) Name() string { return "mock" }

type MockAssistantProvider struct {
	mock.Mock
}

func (m *MockAssistantProvider) Ask(ctx context.Context, assistantID, prompt string) (*domain.AssistantReply, error) {
	args := m.Called(ctx, assistantID, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssistantReply), args.Error(1)
}

type testServer struct {
	app        *fiber.App
	store      *adapter.MemoryStoreAdapter
	learners   service.LearnerService
	completion *MockCompletionProvider
	chat       *MockCompletionProvider
	assistant  *MockAssistantProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	courseStore, err := course.Load("")
	require.NoError(t, err)

	store := adapter.NewMemoryStoreAdapter()
	persistence := service.NewProgressPersistence(store, "companion")
	progress := service.NewProgressService(courseStore, persistence)

	completion := new(MockCompletionProvider)
	chat := new(MockCompletionProvider)
	assistant := new(MockAssistantProvider)
	wizard := service.NewWizardService(persistence, progress, completion,
		config.WizardConfig{LessonID: 3, SubLessonID: "3.2", ExerciseID: "workflow-redesign"})
	ai := service.NewAIService(completion, chat, assistant, "asst_default")

	learners, err := service.NewLearnerService(config.JWTConfig{SecretKey: "handler-test", LearnerTokenTTL: time.Hour})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, handler.Handlers{
		Progress:     handler.NewProgressHandler(courseStore, progress),
		ExerciseData: handler.NewExerciseDataHandler(progress),
		Wizard:       handler.NewWizardHandler(wizard),
		AI:           handler.NewAIHandler(ai),
		Learner:      handler.NewLearnerHandler(learners, store, "memory"),
	}, learners)

	return &testServer{
		app:        app,
		store:      store,
		learners:   learners,
		completion: completion,
		chat:       chat,
		assistant:  assistant,
	}
}

type request struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

// do runs req against the app and decodes a JSON response into out when out is non-nil.
func (s *testServer) do(t *testing.T, req request, out interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	switch b := req.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	case []byte:
		body = bytes.NewBuffer(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}

	httpReq := httptest.NewRequest(req.method, req.path, body)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := s.app.Test(httpReq, -1)
	require.NoError(t, err)
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp
}
