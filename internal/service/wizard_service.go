package service

import (
	"context"
	"fmt"

	"class-companion/internal/config"
	"class-companion/internal/domain"
	"class-companion/internal/logger"
	"class-companion/internal/port"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// wizardCompletedAnswer is recorded on the wizard exercise when step5 completes.
const wizardCompletedAnswer = "completed"

// WizardService runs the workflow-redesign wizard for each learner.
type WizardService interface {
	Get(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error)
	UpdateSection(ctx context.Context, learnerID string, stage domain.WizardStage, raw []byte) (*domain.WorkflowWizardData, error)
	Activate(ctx context.Context, learnerID string, stage domain.WizardStage) (*domain.WorkflowWizardData, error)
	Complete(ctx context.Context, learnerID string, stage domain.WizardStage) (*domain.WorkflowWizardData, error)
	Metrics(ctx context.Context, learnerID string) (domain.BusinessMetrics, error)
	GenerateEnhancementPlan(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error)
	GenerateBusinessCase(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error)
	Report(ctx context.Context, learnerID string) (string, error)
	Reset(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error)
}

type wizardService struct {
	persistence ProgressPersistence
	progress    ProgressService
	completion  port.CompletionProvider
	target      config.WizardConfig
	locks       *keyedMutex
}

func NewWizardService(persistence ProgressPersistence, progress ProgressService, completion port.CompletionProvider, target config.WizardConfig) WizardService {
	return &wizardService{
		persistence: persistence,
		progress:    progress,
		completion:  completion,
		target:      target,
		locks:       newKeyedMutex(),
	}
}

// load returns the stored wizard or a fresh one when none exists or it is unreadable.
func (s *wizardService) load(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error) {
	raw, ok, err := s.persistence.LoadAux(ctx, learnerID, domain.AuxKeyWorkflowWizard)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.NewWorkflowWizardData(), nil
	}
	data := domain.NewWorkflowWizardData()
	if err := json.Unmarshal([]byte(raw), data); err != nil {
		logger.Get().Warn("Stored wizard data is unreadable, starting fresh", zap.String("learner", learnerID), zap.Error(err))
		return domain.NewWorkflowWizardData(), nil
	}
	if !data.ActiveStage.Valid() {
		data.ActiveStage = domain.StageCurrentWorkflow
	}
	return data, nil
}

func (s *wizardService) save(ctx context.Context, learnerID string, data *domain.WorkflowWizardData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return domain.NewInternalError("failed to encode wizard data", err)
	}
	return s.persistence.SaveAux(ctx, learnerID, domain.AuxKeyWorkflowWizard, string(b))
}

// update loads, applies fn and saves under the learner's lock.
func (s *wizardService) update(ctx context.Context, learnerID string, fn func(*domain.WorkflowWizardData) error) (*domain.WorkflowWizardData, error) {
	unlock := s.locks.Lock(learnerID)
	defer unlock()

	data, err := s.load(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if err := fn(data); err != nil {
		return nil, err
	}
	if err := s.save(ctx, learnerID, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *wizardService) Get(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error) {
	unlock := s.locks.Lock(learnerID)
	defer unlock()
	return s.load(ctx, learnerID)
}

// UpdateSection replaces the data of one stage. Other stages, completion flags
// and the active tab are left as they are.
func (s *wizardService) UpdateSection(ctx context.Context, learnerID string, stage domain.WizardStage, raw []byte) (*domain.WorkflowWizardData, error) {
	return s.update(ctx, learnerID, func(data *domain.WorkflowWizardData) error {
		var target interface{}
		switch stage {
		case domain.StageCurrentWorkflow:
			data.CurrentWorkflow = domain.CurrentWorkflow{}
			target = &data.CurrentWorkflow
		case domain.StagePainPoint:
			data.PainPointAnalysis = domain.PainPointAnalysis{}
			target = &data.PainPointAnalysis
		case domain.StageStepBreakdown:
			data.StepBreakdown = domain.StepBreakdown{}
			target = &data.StepBreakdown
		case domain.StageEnhancementPlan:
			data.EnhancementPlan = domain.EnhancementPlan{}
			target = &data.EnhancementPlan
		case domain.StageBusinessCase:
			data.BusinessCase = domain.BusinessCase{}
			target = &data.BusinessCase
		default:
			return domain.NewInvalidInputError(fmt.Sprintf("unknown wizard stage %q", stage))
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid %s data: %v", stage, err))
		}
		return data.Validate()
	})
}

func (s *wizardService) Activate(ctx context.Context, learnerID string, stage domain.WizardStage) (*domain.WorkflowWizardData, error) {
	return s.update(ctx, learnerID, func(data *domain.WorkflowWizardData) error {
		return data.Activate(stage)
	})
}

// Complete marks stage done. Once the wizard is finished the wizard exercise
// is recorded as answered in the learner's progress tree.
func (s *wizardService) Complete(ctx context.Context, learnerID string, stage domain.WizardStage) (*domain.WorkflowWizardData, error) {
	data, err := s.update(ctx, learnerID, func(data *domain.WorkflowWizardData) error {
		return data.Complete(stage)
	})
	if err != nil {
		return nil, err
	}
	if data.Finished() {
		res, err := s.progress.UpdateExerciseAnswer(ctx, WriteScope{LearnerID: learnerID},
			s.target.LessonID, s.target.SubLessonID, s.target.ExerciseID, domain.TextAnswer(wizardCompletedAnswer))
		if err != nil {
			return nil, err
		}
		if !res.Updated {
			logger.Get().Warn("Wizard exercise not found in progress tree",
				zap.Int("lesson", s.target.LessonID),
				zap.String("sub_lesson", s.target.SubLessonID),
				zap.String("exercise", s.target.ExerciseID))
		}
	}
	return data, nil
}

func (s *wizardService) Metrics(ctx context.Context, learnerID string) (domain.BusinessMetrics, error) {
	data, err := s.Get(ctx, learnerID)
	if err != nil {
		return domain.BusinessMetrics{}, err
	}
	return domain.CalculateBusinessMetrics(data), nil
}

// generate calls the completion provider and falls back to the fixed message on any failure.
func (s *wizardService) generate(ctx context.Context, learnerID, prompt string) string {
	out, err := s.completion.Complete(ctx, domain.CompletionRequest{Prompt: prompt})
	if err != nil {
		logger.Get().Warn("AI suggestion failed, using fallback", zap.String("learner", learnerID), zap.Error(err))
		return domain.AIFallbackMessage
	}
	return out
}

// GenerateEnhancementPlan never fails because of the AI provider.
func (s *wizardService) GenerateEnhancementPlan(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error) {
	data, err := s.Get(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	plan := s.generate(ctx, learnerID, BuildEnhancementPrompt(data))

	return s.update(ctx, learnerID, func(data *domain.WorkflowWizardData) error {
		data.EnhancementPlan.GeneratedPlan = plan
		return nil
	})
}

// GenerateBusinessCase fills the narrative sections from the AI reply. A reply
// without section headings, including the fallback message, only replaces
// the executive summary.
func (s *wizardService) GenerateBusinessCase(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error) {
	data, err := s.Get(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	metrics := domain.CalculateBusinessMetrics(data)
	generated, sectioned := ParseBusinessCase(s.generate(ctx, learnerID, BuildBusinessCasePrompt(data, metrics)))

	return s.update(ctx, learnerID, func(data *domain.WorkflowWizardData) error {
		m := domain.CalculateBusinessMetrics(data)
		data.BusinessCase.ExecutiveSummary = generated.ExecutiveSummary
		if sectioned {
			data.BusinessCase.ProblemStatement = generated.ProblemStatement
			data.BusinessCase.ProposedSolution = generated.ProposedSolution
			data.BusinessCase.ExpectedBenefits = generated.ExpectedBenefits
			data.BusinessCase.Risks = generated.Risks
		}
		data.BusinessCase.TimeSavedHours = m.TimeSavedHours
		if len(data.BusinessCase.ImplementationPlan) == 0 {
			data.BusinessCase.ImplementationPlan = domain.DefaultImplementationPlan()
		}
		return nil
	})
}

func (s *wizardService) Report(ctx context.Context, learnerID string) (string, error) {
	data, err := s.Get(ctx, learnerID)
	if err != nil {
		return "", err
	}
	return BuildReport(data, domain.CalculateBusinessMetrics(data)), nil
}

func (s *wizardService) Reset(ctx context.Context, learnerID string) (*domain.WorkflowWizardData, error) {
	unlock := s.locks.Lock(learnerID)
	defer unlock()
	if err := s.persistence.DeleteAux(ctx, learnerID, domain.AuxKeyWorkflowWizard); err != nil {
		return nil, err
	}
	return domain.NewWorkflowWizardData(), nil
}
