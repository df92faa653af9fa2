package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"class-companion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAIFixture() (*MockCompletionProvider, *MockCompletionProvider, *MockAssistantProvider, AIService) {
	openRouter := new(MockCompletionProvider)
	chat := new(MockCompletionProvider)
	assistant := new(MockAssistantProvider)
	return openRouter, chat, assistant, NewAIService(openRouter, chat, assistant, "asst_default")
}

func fields(err error) []string {
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, len(verrs))
	for i, v := range verrs {
		out[i] = v.Field
	}
	return out
}

func TestAIService_Validation(t *testing.T) {
	_, _, _, svc := newAIFixture()
	ctx := context.Background()

	_, err := svc.Query(ctx, "  ", "")
	assert.Equal(t, []string{"prompt"}, fields(err))

	_, err = svc.Completion(ctx, "")
	assert.Equal(t, []string{"prompt"}, fields(err))

	_, err = svc.Chat(ctx, "", nil)
	assert.Equal(t, []string{"messages", "model"}, fields(err))

	noDefault := NewAIService(nil, nil, new(MockAssistantProvider), "")
	_, err = noDefault.AssistantCompletion(ctx, "", "")
	assert.Equal(t, []string{"prompt", "assistantId"}, fields(err))
}

func TestAIService_Query(t *testing.T) {
	openRouter, _, _, svc := newAIFixture()
	openRouter.On("Complete", mock.Anything, domain.CompletionRequest{Prompt: "hi", Context: "be brief"}).
		Return("hello", nil).Once()

	out, err := svc.Query(context.Background(), "hi", "be brief")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	openRouter.AssertExpectations(t)
}

func TestAIService_ErrorPropagates(t *testing.T) {
	openRouter, chat, assistant, svc := newAIFixture()
	upstream := domain.NewAIServiceError(errors.New("502 from upstream"))
	openRouter.On("Complete", mock.Anything, mock.Anything).Return("", upstream)
	chat.On("Chat", mock.Anything, "gpt-4o", mock.Anything).Return("", upstream)
	assistant.On("Ask", mock.Anything, "asst_default", "q").Return(nil, upstream)
	ctx := context.Background()

	_, err := svc.Completion(ctx, "q")
	assert.ErrorIs(t, err, upstream)

	_, err = svc.Chat(ctx, "gpt-4o", []domain.ChatMessage{{Role: domain.RoleUser, Content: "q"}})
	assert.ErrorIs(t, err, upstream)

	_, err = svc.AssistantCompletion(ctx, "", "q")
	assert.ErrorIs(t, err, upstream)
}

func TestAIService_AssistantUsesExplicitID(t *testing.T) {
	_, _, assistant, svc := newAIFixture()
	reply := &domain.AssistantReply{
		Completion: "See the guide.",
		Sources:    []domain.Source{{Type: domain.SourceFileCitation, Filename: "guide.pdf", FileID: "file_1"}},
	}
	assistant.On("Ask", mock.Anything, "asst_custom", "where?").Return(reply, nil).Once()

	got, err := svc.AssistantCompletion(context.Background(), "asst_custom", "where?")
	require.NoError(t, err)
	assert.Equal(t, reply, got)
	assistant.AssertExpectations(t)
}

func TestAIService_ConcurrentIdenticalRequestsShareOneCall(t *testing.T) {
	openRouter, _, _, svc := newAIFixture()
	release := make(chan time.Time)
	openRouter.On("Complete", mock.Anything, mock.Anything).
		WaitUntil(release).
		Return("shared", nil).Once()

	const callers = 5
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := svc.Completion(context.Background(), "same prompt")
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
	openRouter.AssertNumberOfCalls(t, "Complete", 1)
}
