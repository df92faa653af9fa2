package domain

// Tree updates below never mutate their input. They return a new lesson slice
// in which only the nodes on the path from the root to the changed node are
// reallocated; every other lesson, sub-lesson, exercise and step keeps its
// pointer identity. A lookup miss returns the input slice itself and false.

// WithSubLessonStatus sets the completed flag of one sub-lesson.
func WithSubLessonStatus(lessons []*Lesson, lessonID int, subLessonID string, completed bool) ([]*Lesson, bool) {
	return updateSubLesson(lessons, lessonID, subLessonID, func(s *SubLesson) (*SubLesson, bool) {
		cp := *s
		cp.Completed = completed
		return &cp, true
	})
}

// WithExerciseAnswer replaces the answer of a top-level exercise, keeping the arity of answer.
func WithExerciseAnswer(lessons []*Lesson, lessonID int, subLessonID, exerciseID string, answer Answer) ([]*Lesson, bool) {
	return updateExercise(lessons, lessonID, subLessonID, exerciseID, func(e *Exercise) (*Exercise, bool) {
		cp := *e
		cp.Answer = answer.Ptr()
		return &cp, true
	})
}

// WithFollowUpAnswer replaces the follow-up text of a top-level exercise.
func WithFollowUpAnswer(lessons []*Lesson, lessonID int, subLessonID, exerciseID, followUp string) ([]*Lesson, bool) {
	return updateExercise(lessons, lessonID, subLessonID, exerciseID, func(e *Exercise) (*Exercise, bool) {
		cp := *e
		f := followUp
		cp.FollowUpAnswer = &f
		return &cp, true
	})
}

// WithStepAnswer replaces the answer of the step whose id matches stepID
// anywhere in the exercise's step tree.
func WithStepAnswer(lessons []*Lesson, lessonID int, subLessonID, exerciseID, stepID string, answer Answer) ([]*Lesson, bool) {
	return updateExercise(lessons, lessonID, subLessonID, exerciseID, func(e *Exercise) (*Exercise, bool) {
		steps, ok := replaceStep(e.Steps, stepID, func(st *Exercise) *Exercise {
			cp := *st
			cp.Answer = answer.Ptr()
			return &cp
		})
		if !ok {
			return e, false
		}
		cp := *e
		cp.Steps = steps
		return &cp, true
	})
}

// WithToggledOption adds option to, or removes it from, a list answer of a
// top-level exercise. Other selected options and their order are preserved.
// Exercises without list arity are a miss.
func WithToggledOption(lessons []*Lesson, lessonID int, subLessonID, exerciseID, option string, checked bool) ([]*Lesson, bool) {
	return updateExercise(lessons, lessonID, subLessonID, exerciseID, func(e *Exercise) (*Exercise, bool) {
		if !AcceptsListAnswer(e.Type) {
			return e, false
		}
		var current []string
		if e.Answer != nil {
			current = e.Answer.Values()
		}
		next := make([]string, 0, len(current)+1)
		present := false
		for _, v := range current {
			if v == option {
				present = true
				if !checked {
					continue
				}
			}
			next = append(next, v)
		}
		if checked && !present {
			next = append(next, option)
		}
		cp := *e
		cp.Answer = ListAnswer(next...).Ptr()
		return &cp, true
	})
}

func updateSubLesson(lessons []*Lesson, lessonID int, subLessonID string, fn func(*SubLesson) (*SubLesson, bool)) ([]*Lesson, bool) {
	for li, l := range lessons {
		if l.ID != lessonID {
			continue
		}
		for si, s := range l.SubLessons {
			if s.ID != subLessonID {
				continue
			}
			updated, ok := fn(s)
			if !ok {
				return lessons, false
			}
			subs := make([]*SubLesson, len(l.SubLessons))
			copy(subs, l.SubLessons)
			subs[si] = updated

			lc := *l
			lc.SubLessons = subs

			out := make([]*Lesson, len(lessons))
			copy(out, lessons)
			out[li] = &lc
			return out, true
		}
		return lessons, false
	}
	return lessons, false
}

func updateExercise(lessons []*Lesson, lessonID int, subLessonID, exerciseID string, fn func(*Exercise) (*Exercise, bool)) ([]*Lesson, bool) {
	return updateSubLesson(lessons, lessonID, subLessonID, func(s *SubLesson) (*SubLesson, bool) {
		for ei, e := range s.Exercises {
			if e.ID != exerciseID {
				continue
			}
			updated, ok := fn(e)
			if !ok {
				return s, false
			}
			exercises := make([]*Exercise, len(s.Exercises))
			copy(exercises, s.Exercises)
			exercises[ei] = updated

			sc := *s
			sc.Exercises = exercises
			return &sc, true
		}
		return s, false
	})
}

// replaceStep walks the step tree depth first and rebuilds only the path to the match.
func replaceStep(steps []*Exercise, stepID string, fn func(*Exercise) *Exercise) ([]*Exercise, bool) {
	for i, st := range steps {
		var replacement *Exercise
		if st.ID == stepID {
			replacement = fn(st)
		} else if len(st.Steps) > 0 {
			children, ok := replaceStep(st.Steps, stepID, fn)
			if !ok {
				continue
			}
			cp := *st
			cp.Steps = children
			replacement = &cp
		} else {
			continue
		}
		out := make([]*Exercise, len(steps))
		copy(out, steps)
		out[i] = replacement
		return out, true
	}
	return steps, false
}
