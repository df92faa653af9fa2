package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Progress and wizard errors
	CodeInvalidImportFormat ErrorCode = "INVALID_IMPORT_FORMAT"
	CodeVersionConflict     ErrorCode = "VERSION_CONFLICT"
	CodeStageLocked         ErrorCode = "STAGE_LOCKED"
	CodeStageIncomplete     ErrorCode = "STAGE_INCOMPLETE"

	// AI proxy errors
	CodeAIServiceError ErrorCode = "AI_SERVICE_ERROR"
	CodeAIUnconfigured ErrorCode = "AI_UNCONFIGURED"
)

// InvalidImportFormatMessage is the fixed message surfaced when an import document is rejected.
const InvalidImportFormatMessage = "Invalid data format"

// ErrInvalidImportFormat is returned by imports whose document is not {lessons: Lesson[]}.
var ErrInvalidImportFormat = &DomainError{Code: CodeInvalidImportFormat, Message: InvalidImportFormatMessage}

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code, so errors.Is works against the sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair reported in the error response details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewInvalidImportError(cause error) *DomainError {
	return NewError(CodeInvalidImportFormat, InvalidImportFormatMessage, cause)
}

func NewVersionConflictError(expected, actual int64) *DomainError {
	return NewError(CodeVersionConflict, "Progress was modified by another writer", nil).
		WithContext("expected_version", expected).
		WithContext("current_version", actual)
}

func NewStageLockedError(stage WizardStage) *DomainError {
	return NewError(CodeStageLocked, fmt.Sprintf("Stage %s is locked until the previous stage is completed", stage), nil).
		WithContext("stage", string(stage))
}

func NewStageIncompleteError(stage WizardStage, reason string) *DomainError {
	return NewError(CodeStageIncomplete, fmt.Sprintf("Stage %s cannot be completed: %s", stage, reason), nil).
		WithContext("stage", string(stage))
}

func NewAIServiceError(cause error) *DomainError {
	return NewError(CodeAIServiceError, "Failed to get AI response", cause)
}

func NewAIUnconfiguredError(provider string) *DomainError {
	return NewError(CodeAIUnconfigured, fmt.Sprintf("AI provider %s is not configured", provider), nil)
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: "field has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("value must be between %d and %d", min, max),
		Value:   value,
	}
}
