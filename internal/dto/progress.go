package dto

import "class-companion/internal/domain"

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubLessonStatusRequest sets the manual completion flag of a sub-lesson
// @Description Request body for marking a sub-lesson complete or incomplete
type SubLessonStatusRequest struct {
	Completed *bool `json:"completed"`
}

// AnswerRequest carries a string or a list of strings
// @Description Request body for answering an exercise or step
type AnswerRequest struct {
	Answer *domain.Answer `json:"answer" swaggertype:"string"`
}

type FollowUpRequest struct {
	FollowUpAnswer *string `json:"followUpAnswer"`
}

// ToggleOptionRequest checks or unchecks one checkbox option
type ToggleOptionRequest struct {
	Option  string `json:"option"`
	Checked *bool  `json:"checked"`
}

// UpdateResponse reports whether the target was found and the tree version after the call
type UpdateResponse struct {
	Updated bool  `json:"updated"`
	Version int64 `json:"version"`
}

// CourseResponse is the static course plus the control each exercise type renders with
type CourseResponse struct {
	Lessons  []*domain.Lesson                       `json:"lessons"`
	Controls map[domain.ExerciseType]domain.Control `json:"controls"`
}

type ProgressResponse struct {
	Lessons []*domain.Lesson `json:"lessons"`
	Version int64            `json:"version"`
}

type ExerciseDataRequest struct {
	Value *string `json:"value"`
}

type ExerciseDataResponse struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}
