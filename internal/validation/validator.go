package validation

import (
	"regexp"
	"strconv"
	"strings"

	"class-companion/internal/domain"
	"class-companion/internal/util"
)

const (
	maxAnswerLength = 20000
	maxOptionLength = 500
)

// Widget kinds are camelCase words such as "aiResponse".
var validKind = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLessonID parses a lesson id path parameter.
func (v *Validator) ValidateLessonID(raw string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("lessonId")}
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("lessonId", raw)}
	}
	return id, nil
}

// ValidateID checks a sub-lesson, exercise or step id.
func (v *Validator) ValidateID(field, value string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(value) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if len(value) > domain.MaxIDLength {
		errors = append(errors, domain.NewOutOfRangeError(field, len(value), 1, domain.MaxIDLength))
	} else if !domain.IsValidID(value) {
		errors = append(errors, domain.NewInvalidFormatError(field, value))
	}

	return errors
}

// ValidateKind checks the widget kind of a composite exercise-data key.
func (v *Validator) ValidateKind(kind string) domain.ValidationErrors {
	if strings.TrimSpace(kind) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("kind")}
	}
	if len(kind) > domain.MaxIDLength || !validKind.MatchString(kind) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("kind", kind)}
	}
	return nil
}

// ValidateAnswer checks the body of an answer update.
func (v *Validator) ValidateAnswer(answer *domain.Answer) domain.ValidationErrors {
	if answer == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("answer")}
	}
	if n := len(answer.Text()); n > maxAnswerLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError("answer", n, 0, maxAnswerLength)}
	}
	return nil
}

// ValidateFollowUp checks a follow-up answer body.
func (v *Validator) ValidateFollowUp(followUp *string) domain.ValidationErrors {
	if followUp == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("followUpAnswer")}
	}
	if len(*followUp) > maxAnswerLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError("followUpAnswer", len(*followUp), 0, maxAnswerLength)}
	}
	return nil
}

// ValidateToggle checks a checkbox toggle body.
func (v *Validator) ValidateToggle(option string, checked *bool) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if option == "" {
		errors = append(errors, domain.NewMissingFieldError("option"))
	} else if len(option) > maxOptionLength {
		errors = append(errors, domain.NewOutOfRangeError("option", len(option), 1, maxOptionLength))
	}
	if checked == nil {
		errors = append(errors, domain.NewMissingFieldError("checked"))
	}

	return errors
}

// ValidateIfMatch parses an optional If-Match header carrying a tree version.
// Quotes are tolerated so ETag-style values work too.
func (v *Validator) ValidateIfMatch(raw string) (*int64, domain.ValidationErrors) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return nil, nil
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || version < 0 {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("If-Match", raw)}
	}
	return &version, nil
}

// ValidateLearnerID accepts the default learner or a ULID issued at registration.
func (v *Validator) ValidateLearnerID(learnerID, defaultID string) domain.ValidationErrors {
	if strings.TrimSpace(learnerID) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("learner")}
	}
	if learnerID != defaultID && !util.IsULID(learnerID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("learner", learnerID)}
	}
	return nil
}
