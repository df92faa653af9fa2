package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidID(t *testing.T) {
	for _, id := range []string{"1.2", "prompt-builder", "pain_point", "step_3", "100%", "a"} {
		assert.True(t, IsValidID(id), id)
	}
	for _, id := range []string{"", "_lead", ".hidden", "has space", "../etc", "a/b", "a!b", strings.Repeat("a", MaxIDLength+1)} {
		assert.False(t, IsValidID(id), id)
	}
}

func TestValidateCourse_RejectsInvalidIDs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]*Lesson)
	}{
		{"sub-lesson", func(l []*Lesson) { l[0].SubLessons[0].ID = "1 1" }},
		{"exercise", func(l []*Lesson) { l[0].SubLessons[0].Exercises[0].ID = "goal/1" }},
		{"step", func(l []*Lesson) { l[1].SubLessons[0].Exercises[0].Steps[0].ID = "../a" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons := sampleLessons()
			tt.mutate(lessons)
			assert.Error(t, ValidateCourse(lessons))
		})
	}

	lessons := sampleLessons()
	lessons[0].SubLessons[0].Exercises[0].ID = "learning_goal"
	assert.NoError(t, ValidateCourse(lessons))
}
