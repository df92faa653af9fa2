package handler

import (
	"class-companion/internal/domain"
	"class-companion/internal/dto"
	"class-companion/internal/middleware"
	"class-companion/internal/service"
	"class-companion/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler handles progress-tree HTTP requests
type ProgressHandler struct {
	course    service.CourseSource
	service   service.ProgressService
	validator *validation.Validator
}

// NewProgressHandler creates a new ProgressHandler instance
func NewProgressHandler(course service.CourseSource, service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		course:    course,
		service:   service,
		validator: validation.NewValidator(),
	}
}

func updateResponse(res service.UpdateResult) dto.UpdateResponse {
	return dto.UpdateResponse{Updated: res.Updated, Version: res.Version}
}

// GetCourse godoc
// @Summary Get course content
// @Description Returns the static course content without any learner answers
// @Tags course
// @Produce json
// @Success 200 {object} dto.CourseResponse
// @Router /course [get]
func (h *ProgressHandler) GetCourse(c *fiber.Ctx) error {
	return c.JSON(dto.CourseResponse{Lessons: h.course.Lessons(), Controls: domain.Controls()})
}

// GetProgress godoc
// @Summary Get progress tree
// @Description Returns the learner's lessons with answers and the tree version
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ProgressResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	view, err := h.service.GetProgress(c.UserContext(), middleware.LearnerID(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderETag, versionTag(view.Version))
	return c.JSON(dto.ProgressResponse{Lessons: domain.WithReadAnswers(view.Lessons), Version: view.Version})
}

// GetOverallProgress godoc
// @Summary Get overall progress
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.Progress
// @Router /progress/overall [get]
func (h *ProgressHandler) GetOverallProgress(c *fiber.Ctx) error {
	p, err := h.service.GetOverallProgress(c.UserContext(), middleware.LearnerID(c))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// GetLessonProgress godoc
// @Summary Get lesson progress
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} domain.LessonProgress
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /progress/lessons/{lessonId} [get]
func (h *ProgressHandler) GetLessonProgress(c *fiber.Ctx) error {
	t := middleware.TargetFrom(c)
	p, found, err := h.service.GetLessonProgress(c.UserContext(), middleware.LearnerID(c), t.LessonID)
	if err != nil {
		return err
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "LESSON_NOT_FOUND"})
	}
	return c.JSON(p)
}

// UpdateSubLessonStatus godoc
// @Summary Mark a sub-lesson complete or incomplete
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param If-Match header int false "Expected tree version"
// @Param request body dto.SubLessonStatusRequest true "Completion flag"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /progress/lessons/{lessonId}/sub-lessons/{subLessonId}/status [put]
func (h *ProgressHandler) UpdateSubLessonStatus(c *fiber.Ctx) error {
	var req dto.SubLessonStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	if req.Completed == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "completed is required"})
	}

	t := middleware.TargetFrom(c)
	res, err := h.service.UpdateSubLessonStatus(c.UserContext(), middleware.WriteScope(c), t.LessonID, t.SubLessonID, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}

// UpdateExerciseAnswer godoc
// @Summary Answer an exercise
// @Description The answer is a string, or an array of strings for checkbox exercises
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param If-Match header int false "Expected tree version"
// @Param request body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /progress/lessons/{lessonId}/sub-lessons/{subLessonId}/exercises/{exerciseId}/answer [put]
func (h *ProgressHandler) UpdateExerciseAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	if errs := h.validator.ValidateAnswer(req.Answer); len(errs) > 0 {
		return errs
	}

	t := middleware.TargetFrom(c)
	res, err := h.service.UpdateExerciseAnswer(c.UserContext(), middleware.WriteScope(c), t.LessonID, t.SubLessonID, t.ExerciseID, *req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}

// UpdateFollowUpAnswer godoc
// @Summary Answer the follow-up text of an exercise
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param If-Match header int false "Expected tree version"
// @Param request body dto.FollowUpRequest true "Follow-up answer"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /progress/lessons/{lessonId}/sub-lessons/{subLessonId}/exercises/{exerciseId}/follow-up [put]
func (h *ProgressHandler) UpdateFollowUpAnswer(c *fiber.Ctx) error {
	var req dto.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	if errs := h.validator.ValidateFollowUp(req.FollowUpAnswer); len(errs) > 0 {
		return errs
	}

	t := middleware.TargetFrom(c)
	res, err := h.service.UpdateFollowUpAnswer(c.UserContext(), middleware.WriteScope(c), t.LessonID, t.SubLessonID, t.ExerciseID, *req.FollowUpAnswer)
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}

// UpdateStepAnswer godoc
// @Summary Answer a step of a multi-step exercise
// @Description The step is searched at any depth of the exercise's step tree
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param stepId path string true "Step ID"
// @Param If-Match header int false "Expected tree version"
// @Param request body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /progress/lessons/{lessonId}/sub-lessons/{subLessonId}/exercises/{exerciseId}/steps/{stepId}/answer [put]
func (h *ProgressHandler) UpdateStepAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	if errs := h.validator.ValidateAnswer(req.Answer); len(errs) > 0 {
		return errs
	}

	t := middleware.TargetFrom(c)
	res, err := h.service.UpdateStepAnswer(c.UserContext(), middleware.WriteScope(c), t.LessonID, t.SubLessonID, t.ExerciseID, t.StepID, *req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}

// ToggleCheckboxOption godoc
// @Summary Check or uncheck one checkbox option
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "Lesson ID"
// @Param subLessonId path string true "Sub-lesson ID"
// @Param exerciseId path string true "Exercise ID"
// @Param If-Match header int false "Expected tree version"
// @Param request body dto.ToggleOptionRequest true "Option"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /progress/lessons/{lessonId}/sub-lessons/{subLessonId}/exercises/{exerciseId}/options/toggle [post]
func (h *ProgressHandler) ToggleCheckboxOption(c *fiber.Ctx) error {
	var req dto.ToggleOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "INVALID_REQUEST"})
	}
	if errs := h.validator.ValidateToggle(req.Option, req.Checked); len(errs) > 0 {
		return errs
	}

	t := middleware.TargetFrom(c)
	res, err := h.service.ToggleCheckboxOption(c.UserContext(), middleware.WriteScope(c), t.LessonID, t.SubLessonID, t.ExerciseID, req.Option, *req.Checked)
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}

// ExportData godoc
// @Summary Export progress
// @Description Returns lessons, auxiliary exercise data and the tree version as one document
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.ExportDocument
// @Router /progress/export [get]
func (h *ProgressHandler) ExportData(c *fiber.Ctx) error {
	doc, err := h.service.ExportData(c.UserContext(), middleware.LearnerID(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="course-progress.json"`)
	return c.JSON(doc)
}

// ImportData godoc
// @Summary Import progress
// @Description Replaces the learner's tree with an exported document. Rejected documents leave state untouched.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param If-Match header int false "Expected tree version"
// @Param document body service.ExportDocument true "Exported document"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /progress/import [post]
func (h *ProgressHandler) ImportData(c *fiber.Ctx) error {
	res, err := h.service.ImportData(c.UserContext(), middleware.WriteScope(c), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}

// ClearAll godoc
// @Summary Reset all progress
// @Description Resets the tree to fresh course content and removes every stored key of the learner
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param If-Match header int false "Expected tree version"
// @Success 200 {object} dto.UpdateResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /progress [delete]
func (h *ProgressHandler) ClearAll(c *fiber.Ctx) error {
	res, err := h.service.ClearAll(c.UserContext(), middleware.WriteScope(c))
	if err != nil {
		return err
	}
	return c.JSON(updateResponse(res))
}
