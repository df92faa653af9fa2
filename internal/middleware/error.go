package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"class-companion/internal/domain"
	"class-companion/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every error produced by a route.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected request field.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:            http.StatusNotFound,
	domain.CodeInvalidInput:        http.StatusBadRequest,
	domain.CodeValidation:          http.StatusBadRequest,
	domain.CodeMissingField:        http.StatusBadRequest,
	domain.CodeInvalidFormat:       http.StatusBadRequest,
	domain.CodeOutOfRange:          http.StatusBadRequest,
	domain.CodeInvalidImportFormat: http.StatusBadRequest,
	domain.CodeStageIncomplete:     http.StatusBadRequest,
	domain.CodeUnauthorized:        http.StatusUnauthorized,
	domain.CodeVersionConflict:     http.StatusConflict,
	domain.CodeStageLocked:         http.StatusLocked,
	domain.CodeAIServiceError:      http.StatusBadGateway,
	domain.CodeAIUnconfigured:      http.StatusServiceUnavailable,
}

// StatusFor returns the HTTP status of a domain error code, 500 for unknown codes.
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders route errors. It is installed through fiber.Config.ErrorHandler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("learner", LearnerID(c)),
		)

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Request rejected", zap.Int("error_count", len(validationErrs)), zap.Error(validationErrs))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return renderDomainError(c, log, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unhandled error", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func renderDomainError(c *fiber.Ctx, log *zap.Logger, derr *domain.DomainError) error {
	status := StatusFor(derr.Code)

	fields := []zap.Field{zap.String("code", string(derr.Code)), zap.Int("status", status)}
	if derr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", derr.Cause))
	}
	if status >= http.StatusInternalServerError {
		log.Error(derr.Message, fields...)
	} else {
		log.Warn(derr.Message, fields...)
	}

	// A conflict tells the client which version to retry against.
	if derr.Code == domain.CodeVersionConflict {
		if current, ok := derr.Context["current_version"]; ok {
			c.Set(fiber.HeaderETag, fmt.Sprintf("%q", fmt.Sprint(current)))
		}
	}

	resp := ErrorResponse{
		Code:    string(derr.Code),
		Message: derr.Message,
		Status:  status,
	}
	if len(derr.Context) > 0 {
		resp.Details = derr.Context
	}
	return c.Status(status).JSON(resp)
}
