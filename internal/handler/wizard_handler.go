package handler

import (
	"class-companion/internal/domain"
	"class-companion/internal/dto"
	"class-companion/internal/middleware"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
)

// WizardHandler serves the workflow-redesign wizard.
type WizardHandler struct {
	service service.WizardService
}

func NewWizardHandler(service service.WizardService) *WizardHandler {
	return &WizardHandler{service: service}
}

func stageParam(c *fiber.Ctx) (domain.WizardStage, error) {
	stage, err := domain.ParseWizardStage(c.Params("stage"))
	if err != nil {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError("stage", c.Params("stage"))}
	}
	return stage, nil
}

func wizardResponse(c *fiber.Ctx, data *domain.WorkflowWizardData, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWizardResponse(data))
}

// GetWizard godoc
// @Summary Get wizard state
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.WizardResponse
// @Router /wizard [get]
func (h *WizardHandler) GetWizard(c *fiber.Ctx) error {
	data, err := h.service.Get(c.UserContext(), middleware.LearnerID(c))
	return wizardResponse(c, data, err)
}

// UpdateStage godoc
// @Summary Replace the data of one stage
// @Description Other stages, completion flags and the active stage are not changed
// @Tags wizard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param stage path string true "Stage (step1..step5)"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /wizard/stages/{stage} [put]
func (h *WizardHandler) UpdateStage(c *fiber.Ctx) error {
	stage, err := stageParam(c)
	if err != nil {
		return err
	}
	data, err := h.service.UpdateSection(c.UserContext(), middleware.LearnerID(c), stage, c.Body())
	return wizardResponse(c, data, err)
}

// ActivateStage godoc
// @Summary Open a stage
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param stage path string true "Stage (step1..step5)"
// @Success 200 {object} dto.WizardResponse
// @Failure 423 {object} middleware.ErrorResponse
// @Router /wizard/stages/{stage}/activate [post]
func (h *WizardHandler) ActivateStage(c *fiber.Ctx) error {
	stage, err := stageParam(c)
	if err != nil {
		return err
	}
	data, err := h.service.Activate(c.UserContext(), middleware.LearnerID(c), stage)
	return wizardResponse(c, data, err)
}

// CompleteStage godoc
// @Summary Complete a stage
// @Description Marks the stage complete and opens the next one
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Param stage path string true "Stage (step1..step5)"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 423 {object} middleware.ErrorResponse
// @Router /wizard/stages/{stage}/complete [post]
func (h *WizardHandler) CompleteStage(c *fiber.Ctx) error {
	stage, err := stageParam(c)
	if err != nil {
		return err
	}
	data, err := h.service.Complete(c.UserContext(), middleware.LearnerID(c), stage)
	return wizardResponse(c, data, err)
}

// GetMetrics godoc
// @Summary Get business metrics
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.BusinessMetrics
// @Router /wizard/metrics [get]
func (h *WizardHandler) GetMetrics(c *fiber.Ctx) error {
	m, err := h.service.Metrics(c.UserContext(), middleware.LearnerID(c))
	if err != nil {
		return err
	}
	return c.JSON(m)
}

// GenerateEnhancementPlan godoc
// @Summary Generate an enhancement plan with AI
// @Description Falls back to a fixed message when the AI provider fails
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.WizardResponse
// @Router /wizard/enhancement-plan [post]
func (h *WizardHandler) GenerateEnhancementPlan(c *fiber.Ctx) error {
	data, err := h.service.GenerateEnhancementPlan(c.UserContext(), middleware.LearnerID(c))
	return wizardResponse(c, data, err)
}

// GenerateBusinessCase godoc
// @Summary Generate the business case with AI
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.WizardResponse
// @Router /wizard/business-case [post]
func (h *WizardHandler) GenerateBusinessCase(c *fiber.Ctx) error {
	data, err := h.service.GenerateBusinessCase(c.UserContext(), middleware.LearnerID(c))
	return wizardResponse(c, data, err)
}

// GetReport godoc
// @Summary Get the Markdown report
// @Description Returns JSON by default, or text/markdown when requested with Accept
// @Tags wizard
// @Produce json
// @Produce text/markdown
// @Security ApiKeyAuth
// @Success 200 {object} dto.WizardReportResponse
// @Router /wizard/report [get]
func (h *WizardHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), middleware.LearnerID(c))
	if err != nil {
		return err
	}
	if c.Accepts(fiber.MIMEApplicationJSON, "text/markdown") == "text/markdown" {
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return c.SendString(report)
	}
	return c.JSON(dto.WizardReportResponse{Markdown: report})
}

// ResetWizard godoc
// @Summary Reset the wizard
// @Tags wizard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.WizardResponse
// @Router /wizard [delete]
func (h *WizardHandler) ResetWizard(c *fiber.Ctx) error {
	data, err := h.service.Reset(c.UserContext(), middleware.LearnerID(c))
	return wizardResponse(c, data, err)
}
