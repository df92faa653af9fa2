package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExercise_ReadAnswerArity(t *testing.T) {
	tests := []struct {
		name     string
		exercise Exercise
		wantList bool
		wantText string
		wantVals []string
	}{
		{"unanswered checkbox", Exercise{Type: ExerciseCheckbox}, true, "", []string{}},
		{"checkbox with list", Exercise{Type: ExerciseCheckbox, Answer: ListAnswer("a", "b").Ptr()}, true, "a, b", []string{"a", "b"}},
		{"checkbox with stray text", Exercise{Type: ExerciseCheckbox, Answer: TextAnswer("a").Ptr()}, true, "a", []string{"a"}},
		{"unanswered text", Exercise{Type: ExerciseText}, false, "", []string{}},
		{"textarea", Exercise{Type: ExerciseTextarea, Answer: TextAnswer("long").Ptr()}, false, "long", []string{"long"}},
		{"text with stray list", Exercise{Type: ExerciseText, Answer: ListAnswer("x", "y").Ptr()}, false, "x, y", []string{"x, y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.exercise.ReadAnswer()
			assert.Equal(t, tt.wantList, got.IsList())
			assert.Equal(t, tt.wantText, got.Text())
			assert.Equal(t, tt.wantVals, got.Values())
		})
	}
}

func TestAnswer_JSON(t *testing.T) {
	b, err := json.Marshal(ListAnswer())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	b, err = json.Marshal(TextAnswer("hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `"hi"`, string(b))

	var a Answer
	require.NoError(t, json.Unmarshal([]byte(`["x","y"]`), &a))
	assert.True(t, a.Equal(ListAnswer("x", "y")))

	require.NoError(t, json.Unmarshal([]byte(`"plain"`), &a))
	assert.True(t, a.Equal(TextAnswer("plain")))

	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &a))
}

func TestExercise_OmitsAbsentAnswer(t *testing.T) {
	b, err := json.Marshal(&Exercise{ID: "e", Type: ExerciseText, Label: "E"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "answer")
}

func TestAnswer_PtrDoesNotAlias(t *testing.T) {
	src := []string{"a"}
	a := ListAnswer(src...)
	p := a.Ptr()
	src[0] = "changed"
	assert.Equal(t, []string{"a"}, p.Values())
}

func TestWithReadAnswers(t *testing.T) {
	lessons := sampleLessons()
	lessons[0].SubLessons[0].Exercises[0].Answer = ListAnswer("x", "y").Ptr()

	got := WithReadAnswers(lessons)

	ex := got[0].SubLessons[0].Exercises
	assert.True(t, ex[0].Answer.Equal(TextAnswer("x, y")))
	require.NotNil(t, ex[1].Answer)
	assert.True(t, ex[1].Answer.IsList())
	assert.Equal(t, []string{}, ex[1].Answer.Values())
	assert.True(t, ex[2].Answer.Equal(TextAnswer("")))

	draft := got[1].SubLessons[0].Exercises[0]
	assert.Nil(t, draft.Answer)
	require.NotNil(t, draft.Steps[0].Answer)
	assert.Equal(t, "", draft.Steps[0].Answer.Text())

	assert.True(t, lessons[0].SubLessons[0].Exercises[0].Answer.IsList())
	assert.Nil(t, lessons[0].SubLessons[0].Exercises[1].Answer)
}
