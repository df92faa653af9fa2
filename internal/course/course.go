package course

import (
	_ "embed"
	"fmt"
	"os"

	"class-companion/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed sample_course.yaml
var sampleCourse []byte

type document struct {
	Lessons []*domain.Lesson `yaml:"lessons"`
}

// Store holds the static course content. It is read-only after Load.
type Store struct {
	lessons []*domain.Lesson
}

// Load parses the course at path. An empty path loads the embedded sample course.
func Load(path string) (*Store, error) {
	data := sampleCourse
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read course file %s: %w", path, err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes and validates a YAML course document.
func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse course: %w", err)
	}
	if len(doc.Lessons) == 0 {
		return nil, fmt.Errorf("course has no lessons")
	}
	if err := domain.ValidateCourse(doc.Lessons); err != nil {
		return nil, fmt.Errorf("invalid course: %w", err)
	}
	return &Store{lessons: doc.Lessons}, nil
}

// Lessons returns a fresh deep copy of the course content.
func (s *Store) Lessons() []*domain.Lesson {
	return domain.CloneLessons(s.lessons)
}

// HasExercise reports whether the course defines the given exercise.
func (s *Store) HasExercise(lessonID int, subLessonID, exerciseID string) bool {
	l, ok := domain.FindLesson(s.lessons, lessonID)
	if !ok {
		return false
	}
	sub, ok := l.FindSubLesson(subLessonID)
	if !ok {
		return false
	}
	_, ok = sub.FindExercise(exerciseID)
	return ok
}
