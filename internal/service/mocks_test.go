package service

import (
	"context"

	"class-companion/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockStore ---
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.Store = (*MockStore)(nil)

// --- MockCompletionProvider ---
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

func (m *MockCompletionProvider) Name() string {
	return "mock"
}

// --- MockAssistantProvider ---
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

// staticCourse is a CourseSource over a fixed tree.
type staticCourse struct {
	lessons []*domain.Lesson
}

func (c staticCourse) Lessons() []*domain.Lesson {
	return domain.CloneLessons(c.lessons)
}

func testCourse() staticCourse {
	return staticCourse{lessons: []*domain.Lesson{
		{
			ID:    1,
			Title: "Basics",
			SubLessons: []*domain.SubLesson{
				{ID: "1.1", Title: "Goals", Exercises: []*domain.Exercise{
					{ID: "goal", Type: domain.ExerciseText, Label: "Goal"},
					{ID: "tools", Type: domain.ExerciseCheckbox, Label: "Tools", Options: []string{"a", "b", "c"}},
					{ID: "level", Type: domain.ExerciseRadioWithText, Label: "Level", Options: []string{"x", "y"}},
				}},
				{ID: "1.2", Title: "More"},
			},
		},
		{
			ID:    2,
			Title: "Steps",
			SubLessons: []*domain.SubLesson{
				{ID: "2.1", Title: "Wizard", Exercises: []*domain.Exercise{
					{ID: "flow", Type: domain.ExerciseMultiStep, Label: "Flow", Steps: []*domain.Exercise{
						{ID: "s1", Type: domain.ExerciseText, Label: "S1"},
						{ID: "s2", Type: domain.ExerciseMultiStep, Label: "S2", Steps: []*domain.Exercise{
							{ID: "s2a", Type: domain.ExerciseText, Label: "S2A"},
						}},
					}},
				}},
			},
		},
		{
			ID:    3,
			Title: "Redesign",
			SubLessons: []*domain.SubLesson{
				{ID: "3.2", Title: "Wizard", Exercises: []*domain.Exercise{
					{ID: "workflow-redesign", Type: domain.ExerciseComponent, Label: "Wizard", Component: "WorkflowRedesignWizard"},
				}},
			},
		},
	}}
}
