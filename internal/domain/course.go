package domain

import (
	"fmt"
	"regexp"
)

// ExerciseType names the form control an exercise is answered with.
type ExerciseType string

const (
	ExerciseText          ExerciseType = "text"
	ExerciseTextarea      ExerciseType = "textarea"
	ExerciseDate          ExerciseType = "date"
	ExerciseRadio         ExerciseType = "radio"
	ExerciseSelect        ExerciseType = "select"
	ExerciseCheckbox      ExerciseType = "checkbox"
	ExerciseMultiStep     ExerciseType = "multi-step"
	ExerciseRadioWithText ExerciseType = "radio-with-text"
	ExerciseComponent     ExerciseType = "component"
	ExerciseLink          ExerciseType = "link"
)

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseText, ExerciseTextarea, ExerciseDate, ExerciseRadio, ExerciseSelect,
		ExerciseCheckbox, ExerciseMultiStep, ExerciseRadioWithText, ExerciseComponent, ExerciseLink:
		return true
	}
	return false
}

// Lesson is the top level of the course tree. Lesson ids are unique across the course.
type Lesson struct {
	ID         int          `json:"id" yaml:"id"`
	Title      string       `json:"title" yaml:"title"`
	SubLessons []*SubLesson `json:"subLessons" yaml:"subLessons"`
}

// SubLesson ids are unique within their lesson. Completed is a manual flag
// and is never derived from the exercises' answers.
type SubLesson struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title" yaml:"title"`
	Completed bool        `json:"completed" yaml:"completed"`
	Exercises []*Exercise `json:"exercises,omitempty" yaml:"exercises,omitempty"`
}

// Exercise ids are unique within their sub-lesson; step ids are unique within
// the step tree of one exercise. A multi-step exercise nests further exercises in Steps.
type Exercise struct {
	ID             string       `json:"id" yaml:"id"`
	Type           ExerciseType `json:"type" yaml:"type"`
	Label          string       `json:"label" yaml:"label"`
	Description    string       `json:"description,omitempty" yaml:"description,omitempty"`
	Options        []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Steps          []*Exercise  `json:"steps,omitempty" yaml:"steps,omitempty"`
	Answer         *Answer      `json:"answer,omitempty" yaml:"-"`
	FollowUpAnswer *string      `json:"followUpAnswer,omitempty" yaml:"-"`
	Component      string       `json:"component,omitempty" yaml:"component,omitempty"`
	Link           string       `json:"link,omitempty" yaml:"link,omitempty"`
}

// IsComposite reports whether the exercise is a multi-step node with children.
func (e *Exercise) IsComposite() bool {
	return e.Type == ExerciseMultiStep
}

// ReadAnswer returns the answer in the arity the exercise type demands:
// checkbox exercises always read back as a list (empty when unanswered),
// every other type as a single string.
func (e *Exercise) ReadAnswer() Answer {
	if AcceptsListAnswer(e.Type) {
		if e.Answer == nil {
			return ListAnswer()
		}
		return ListAnswer(e.Answer.Values()...)
	}
	if e.Answer == nil {
		return TextAnswer("")
	}
	return TextAnswer(e.Answer.Text())
}

// WithReadAnswers returns a copy of lessons in which every answerable exercise
// carries its answer in read arity. Composite exercises are normalized through
// their steps. Link and component exercises are left as stored.
func WithReadAnswers(lessons []*Lesson) []*Lesson {
	out := CloneLessons(lessons)
	for _, l := range out {
		for _, s := range l.SubLessons {
			for _, e := range s.Exercises {
				normalizeAnswer(e)
			}
		}
	}
	return out
}

func normalizeAnswer(e *Exercise) {
	if e.IsComposite() {
		for _, st := range e.Steps {
			normalizeAnswer(st)
		}
		return
	}
	if e.Type == ExerciseLink || e.Type == ExerciseComponent {
		return
	}
	e.Answer = e.ReadAnswer().Ptr()
}

// FindLesson returns the lesson with the given id.
func FindLesson(lessons []*Lesson, lessonID int) (*Lesson, bool) {
	for _, l := range lessons {
		if l.ID == lessonID {
			return l, true
		}
	}
	return nil, false
}

// FindSubLesson returns the sub-lesson with the given id inside lesson.
func (l *Lesson) FindSubLesson(subLessonID string) (*SubLesson, bool) {
	for _, s := range l.SubLessons {
		if s.ID == subLessonID {
			return s, true
		}
	}
	return nil, false
}

// FindExercise returns the exercise with the given id inside the sub-lesson.
func (s *SubLesson) FindExercise(exerciseID string) (*Exercise, bool) {
	for _, e := range s.Exercises {
		if e.ID == exerciseID {
			return e, true
		}
	}
	return nil, false
}

// FindStep searches the whole step tree under e, depth first.
func (e *Exercise) FindStep(stepID string) (*Exercise, bool) {
	for _, st := range e.Steps {
		if st.ID == stepID {
			return st, true
		}
		if found, ok := st.FindStep(stepID); ok {
			return found, true
		}
	}
	return nil, false
}

// CloneLessons deep-copies a lesson tree so callers never alias static content.
func CloneLessons(lessons []*Lesson) []*Lesson {
	if lessons == nil {
		return nil
	}
	out := make([]*Lesson, len(lessons))
	for i, l := range lessons {
		cp := *l
		cp.SubLessons = make([]*SubLesson, len(l.SubLessons))
		for j, s := range l.SubLessons {
			sc := *s
			sc.Exercises = cloneExercises(s.Exercises)
			cp.SubLessons[j] = &sc
		}
		out[i] = &cp
	}
	return out
}

func cloneExercises(exercises []*Exercise) []*Exercise {
	if exercises == nil {
		return nil
	}
	out := make([]*Exercise, len(exercises))
	for i, e := range exercises {
		cp := *e
		if e.Options != nil {
			cp.Options = append([]string(nil), e.Options...)
		}
		if e.Answer != nil {
			cp.Answer = e.Answer.Ptr()
		}
		if e.FollowUpAnswer != nil {
			f := *e.FollowUpAnswer
			cp.FollowUpAnswer = &f
		}
		cp.Steps = cloneExercises(e.Steps)
		out[i] = &cp
	}
	return out
}

// MaxIDLength bounds sub-lesson, exercise and step ids.
const MaxIDLength = 128

// Course ids are short slugs such as "1.2", "prompt-builder" or "pain_point".
var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.%-]*$`)

// IsValidID reports whether id may name a sub-lesson, exercise or step.
func IsValidID(id string) bool {
	return len(id) <= MaxIDLength && validID.MatchString(id)
}

// ValidateCourse checks id format and uniqueness within every sibling scope
// and that every exercise type is known.
func ValidateCourse(lessons []*Lesson) error {
	lessonIDs := make(map[int]struct{}, len(lessons))
	for _, l := range lessons {
		if l == nil {
			return NewValidationError("lesson entry is empty")
		}
		if _, dup := lessonIDs[l.ID]; dup {
			return NewValidationError(fmt.Sprintf("duplicate lesson id %d", l.ID))
		}
		lessonIDs[l.ID] = struct{}{}

		subIDs := make(map[string]struct{}, len(l.SubLessons))
		for _, s := range l.SubLessons {
			if s == nil || s.ID == "" {
				return NewValidationError(fmt.Sprintf("lesson %d has a sub-lesson without id", l.ID))
			}
			if !IsValidID(s.ID) {
				return NewValidationError(fmt.Sprintf("lesson %d has invalid sub-lesson id %q", l.ID, s.ID))
			}
			if _, dup := subIDs[s.ID]; dup {
				return NewValidationError(fmt.Sprintf("duplicate sub-lesson id %q in lesson %d", s.ID, l.ID))
			}
			subIDs[s.ID] = struct{}{}

			exIDs := make(map[string]struct{}, len(s.Exercises))
			for _, e := range s.Exercises {
				if e == nil || e.ID == "" {
					return NewValidationError(fmt.Sprintf("sub-lesson %q has an exercise without id", s.ID))
				}
				if !IsValidID(e.ID) {
					return NewValidationError(fmt.Sprintf("sub-lesson %q has invalid exercise id %q", s.ID, e.ID))
				}
				if _, dup := exIDs[e.ID]; dup {
					return NewValidationError(fmt.Sprintf("duplicate exercise id %q in sub-lesson %q", e.ID, s.ID))
				}
				exIDs[e.ID] = struct{}{}
				if err := validateExercise(e, make(map[string]struct{})); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateExercise(e *Exercise, stepIDs map[string]struct{}) error {
	if !e.Type.Valid() {
		return NewValidationError(fmt.Sprintf("exercise %q has unknown type %q", e.ID, e.Type))
	}
	for _, st := range e.Steps {
		if st == nil || st.ID == "" {
			return NewValidationError(fmt.Sprintf("exercise %q has a step without id", e.ID))
		}
		if !IsValidID(st.ID) {
			return NewValidationError(fmt.Sprintf("exercise %q has invalid step id %q", e.ID, st.ID))
		}
		if _, dup := stepIDs[st.ID]; dup {
			return NewValidationError(fmt.Sprintf("duplicate step id %q under exercise %q", st.ID, e.ID))
		}
		stepIDs[st.ID] = struct{}{}
		if err := validateExercise(st, stepIDs); err != nil {
			return err
		}
	}
	return nil
}

// CourseValidationError reports malformed course content.
type CourseValidationError struct {
	message string
}

func (e *CourseValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &CourseValidationError{message: message}
}
