package handler

import (
	"class-companion/internal/domain"
	"class-companion/internal/dto"
	"class-companion/internal/middleware"
	"class-companion/internal/service"
	"class-companion/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ExerciseDataHandler stores the opaque state of interactive widgets.
type ExerciseDataHandler struct {
	service   service.ProgressService
	validator *validation.Validator
}

func NewExerciseDataHandler(service service.ProgressService) *ExerciseDataHandler {
	return &ExerciseDataHandler{service: service, validator: validation.NewValidator()}
}

// key resolves the storage key from either a standalone name or the
// composite path parameters.
func (h *ExerciseDataHandler) key(c *fiber.Ctx) (string, error) {
	if name := c.Params("name"); name != "" {
		if !domain.IsAuxiliaryKey(name) {
			return "", domain.NewNotFoundError("unknown exercise data key").WithContext("key", name)
		}
		return name, nil
	}
	kind := c.Params("kind")
	if errs := h.validator.ValidateKind(kind); len(errs) > 0 {
		return "", errs
	}
	t := middleware.TargetFrom(c)
	key := domain.AuxKey{
		Kind:        kind,
		LessonID:    t.LessonID,
		SubLessonID: t.SubLessonID,
		ExerciseID:  t.ExerciseID,
		StepID:      t.StepID,
	}
	if err := key.Validate(); err != nil {
		return "", domain.NewInvalidInputError(err.Error())
	}
	return key.Encode(), nil
}

// GetExerciseData godoc
// @Summary Get widget state
// @Description Returns the stored value, or null when nothing is stored
// @Tags exercise-data
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "Widget kind"
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param stepId path string false "Step ID"
// @Success 200 {object} dto.ExerciseDataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /exercise-data/{kind}/{lessonId}/{subLessonId}/{exerciseId}/{stepId} [get]
func (h *ExerciseDataHandler) GetExerciseData(c *fiber.Ctx) error {
	key, err := h.key(c)
	if err != nil {
		return err
	}
	val, ok, err := h.service.LoadExerciseData(c.UserContext(), middleware.LearnerID(c), key)
	if err != nil {
		return err
	}
	resp := dto.ExerciseDataResponse{Key: key}
	if ok {
		resp.Value = &val
	}
	return c.JSON(resp)
}

// PutExerciseData godoc
// @Summary Store widget state
// @Tags exercise-data
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "Widget kind"
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param stepId path string false "Step ID"
// @Param request body dto.ExerciseDataRequest true "Raw value"
// @Success 200 {object} dto.ExerciseDataResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /exercise-data/{kind}/{lessonId}/{subLessonId}/{exerciseId}/{stepId} [put]
func (h *ExerciseDataHandler) PutExerciseData(c *fiber.Ctx) error {
	key, err := h.key(c)
	if err != nil {
		return err
	}
	var req dto.ExerciseDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	if req.Value == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("value")}
	}
	if err := h.service.SaveExerciseData(c.UserContext(), middleware.LearnerID(c), key, *req.Value); err != nil {
		return err
	}
	return c.JSON(dto.ExerciseDataResponse{Key: key, Value: req.Value})
}

// DeleteExerciseData godoc
// @Summary Remove widget state
// @Tags exercise-data
// @Security ApiKeyAuth
// @Param kind path string true "Widget kind"
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param stepId path string false "Step ID"
// @Success 204
// @Router /exercise-data/{kind}/{lessonId}/{subLessonId}/{exerciseId}/{stepId} [delete]
func (h *ExerciseDataHandler) DeleteExerciseData(c *fiber.Ctx) error {
	key, err := h.key(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteExerciseData(c.UserContext(), middleware.LearnerID(c), key); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
