package middleware

import (
	"class-companion/internal/domain"
	"class-companion/internal/service"
	"class-companion/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	IfMatchHeader = "If-Match"

	targetKey  = "validated_target"
	ifMatchKey = "validated_if_match"
)

// Target addresses a node of the progress tree by its path parameters.
// Fields whose parameter is absent from the route stay empty.
type Target struct {
	LessonID    int
	SubLessonID string
	ExerciseID  string
	StepID      string
}

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateTarget validates the tree path parameters present on the route.
func (vm *ValidationMiddleware) ValidateTarget() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			t      Target
			errors domain.ValidationErrors
		)

		lessonID, errs := vm.validator.ValidateLessonID(c.Params("lessonId"))
		errors = append(errors, errs...)
		t.LessonID = lessonID

		for _, p := range []struct {
			name     string
			dst      *string
			optional bool
		}{
			{"subLessonId", &t.SubLessonID, false},
			{"exerciseId", &t.ExerciseID, false},
			{"stepId", &t.StepID, true},
		} {
			raw := c.Params(p.name)
			if raw == "" && (p.optional || !routeHasParam(c, p.name)) {
				continue
			}
			errors = append(errors, vm.validator.ValidateID(p.name, raw)...)
			*p.dst = raw
		}

		if len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(targetKey, t)
		return c.Next()
	}
}

// ValidateIfMatch parses the optional If-Match header.
func (vm *ValidationMiddleware) ValidateIfMatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version, errors := vm.validator.ValidateIfMatch(c.Get(IfMatchHeader))
		if len(errors) > 0 {
			return errors
		}
		if version != nil {
			c.Locals(ifMatchKey, *version)
		}
		return c.Next()
	}
}

func routeHasParam(c *fiber.Ctx, name string) bool {
	for _, p := range c.Route().Params {
		if p == name {
			return true
		}
	}
	return false
}

// TargetFrom returns the target stored by ValidateTarget.
func TargetFrom(c *fiber.Ctx) Target {
	t, _ := c.Locals(targetKey).(Target)
	return t
}

// WriteScope combines the request's learner and its optional If-Match version.
func WriteScope(c *fiber.Ctx) service.WriteScope {
	w := service.WriteScope{LearnerID: LearnerID(c)}
	if v, ok := c.Locals(ifMatchKey).(int64); ok {
		w.IfMatch = &v
	}
	return w
}
