package dto

import "class-companion/internal/domain"

// WizardResponse is the wizard document plus the stages a learner may open
// @Description Workflow redesign wizard state
type WizardResponse struct {
	*domain.WorkflowWizardData
	ReachableStages []domain.WizardStage   `json:"reachableStages"`
	Metrics         domain.BusinessMetrics `json:"metrics"`
}

func NewWizardResponse(data *domain.WorkflowWizardData) WizardResponse {
	reachable := make([]domain.WizardStage, 0, len(domain.WizardStages))
	for _, s := range domain.WizardStages {
		if data.Reachable(s) {
			reachable = append(reachable, s)
		}
	}
	return WizardResponse{
		WorkflowWizardData: data,
		ReachableStages:    reachable,
		Metrics:            domain.CalculateBusinessMetrics(data),
	}
}

type WizardReportResponse struct {
	Markdown string `json:"markdown"`
}
