package domain

import (
	"fmt"
	"strings"
)

// WizardStage names one of the five linear workflow-redesign stages.
type WizardStage string

const (
	StageCurrentWorkflow WizardStage = "step1"
	StagePainPoint       WizardStage = "step2"
	StageStepBreakdown   WizardStage = "step3"
	StageEnhancementPlan WizardStage = "step4"
	StageBusinessCase    WizardStage = "step5"
)

// MaxWorkflowSteps caps currentWorkflow.steps.
const MaxWorkflowSteps = 5

// WizardStages lists the stages in order.
var WizardStages = []WizardStage{
	StageCurrentWorkflow,
	StagePainPoint,
	StageStepBreakdown,
	StageEnhancementPlan,
	StageBusinessCase,
}

// Index returns the zero-based position of the stage, or -1 if unknown.
func (s WizardStage) Index() int {
	for i, st := range WizardStages {
		if st == s {
			return i
		}
	}
	return -1
}

func (s WizardStage) Valid() bool { return s.Index() >= 0 }

// Next returns the following stage. The last stage returns itself.
func (s WizardStage) Next() WizardStage {
	i := s.Index()
	if i < 0 || i == len(WizardStages)-1 {
		return s
	}
	return WizardStages[i+1]
}

// ParseWizardStage accepts "step3" as well as the bare number "3".
func ParseWizardStage(raw string) (WizardStage, error) {
	s := WizardStage(strings.TrimSpace(raw))
	if !strings.HasPrefix(string(s), "step") {
		s = "step" + s
	}
	if !s.Valid() {
		return "", NewInvalidInputError(fmt.Sprintf("unknown wizard stage %q", raw))
	}
	return s, nil
}

type TimeUnit string

const (
	TimeMinutes TimeUnit = "minutes"
	TimeHours   TimeUnit = "hours"
	TimeDays    TimeUnit = "days"
)

type FrequencyUnit string

const (
	FrequencyDaily     FrequencyUnit = "daily"
	FrequencyWeekly    FrequencyUnit = "weekly"
	FrequencyMonthly   FrequencyUnit = "monthly"
	FrequencyQuarterly FrequencyUnit = "quarterly"
	FrequencyYearly    FrequencyUnit = "yearly"
)

type AIApproach string

const (
	ApproachPrompt  AIApproach = "prompt"
	ApproachRAG     AIApproach = "rag"
	ApproachAgentic AIApproach = "agentic"
)

func (a AIApproach) Valid() bool {
	return a == "" || a == ApproachPrompt || a == ApproachRAG || a == ApproachAgentic
}

type HumanInvolvement string

const (
	InvolvementNone     HumanInvolvement = "none"
	InvolvementReview   HumanInvolvement = "review"
	InvolvementApproval HumanInvolvement = "approval"
	InvolvementFull     HumanInvolvement = "full"
)

type TimeAmount struct {
	Value float64  `json:"value"`
	Unit  TimeUnit `json:"unit"`
}

// WorkflowFrequency is how often the whole workflow runs.
type WorkflowFrequency struct {
	Number float64       `json:"number"`
	Period FrequencyUnit `json:"period"`
}

type FrequencyAmount struct {
	Value float64       `json:"value"`
	Unit  FrequencyUnit `json:"unit"`
}

type WorkflowStep struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Tool         string     `json:"tool"`
	Data         string     `json:"data"`
	PrivacyLevel string     `json:"privacyLevel"`
	Time         TimeAmount `json:"time"`
}

type CurrentWorkflow struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Frequency   WorkflowFrequency `json:"frequency"`
	Steps       []WorkflowStep    `json:"steps"`
	PainPoints  string            `json:"painPoints"`
}

type PainPointAnalysis struct {
	SelectedStepID string              `json:"selectedStepId"`
	Description    string              `json:"description"`
	TimeWasted     TimeAmount          `json:"timeWasted"`
	Frequency      FrequencyAmount     `json:"frequency"`
	AIApproach     AIApproach          `json:"aiApproach"`
	PainTypes      map[string][]string `json:"painTypes,omitempty"`
}

type SubStep struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	AIApproaches     []AIApproach     `json:"aiApproaches"`
	TimeSavings      float64          `json:"timeSavings"`
	HumanInvolvement HumanInvolvement `json:"humanInvolvement"`
	RoleDescription  string           `json:"roleDescription"`
}

type StepBreakdown struct {
	Inputs   []string  `json:"inputs"`
	SubSteps []SubStep `json:"subSteps"`
	Outputs  []string  `json:"outputs"`
}

type EnhancementPlan struct {
	GeneratedPlan string `json:"generatedPlan"`
	Constraints   string `json:"constraints"`
	UseAIAssist   bool   `json:"useAiAssist"`
}

type ImplementationPhase struct {
	Name       string `json:"name"`
	Duration   string `json:"duration"`
	Activities string `json:"activities"`
}

type BusinessCase struct {
	ExecutiveSummary   string                `json:"executiveSummary"`
	ProblemStatement   string                `json:"problemStatement"`
	ProposedSolution   string                `json:"proposedSolution"`
	ExpectedBenefits   string                `json:"expectedBenefits"`
	Risks              string                `json:"risks"`
	TimeSavedHours     float64               `json:"timeSavedHours"`
	ImplementationPlan []ImplementationPhase `json:"implementationPlan"`
}

// StepCompletion records one flag per stage.
type StepCompletion struct {
	Step1 bool `json:"step1"`
	Step2 bool `json:"step2"`
	Step3 bool `json:"step3"`
	Step4 bool `json:"step4"`
	Step5 bool `json:"step5"`
}

func (c *StepCompletion) flag(s WizardStage) *bool {
	switch s {
	case StageCurrentWorkflow:
		return &c.Step1
	case StagePainPoint:
		return &c.Step2
	case StageStepBreakdown:
		return &c.Step3
	case StageEnhancementPlan:
		return &c.Step4
	case StageBusinessCase:
		return &c.Step5
	}
	return nil
}

// Done reports the completion flag of s.
func (c StepCompletion) Done(s WizardStage) bool {
	if f := c.flag(s); f != nil {
		return *f
	}
	return false
}

// WorkflowWizardData is the whole persisted wizard document.
type WorkflowWizardData struct {
	ActiveStage       WizardStage       `json:"activeStage"`
	StepCompletion    StepCompletion    `json:"stepCompletion"`
	CurrentWorkflow   CurrentWorkflow   `json:"currentWorkflow"`
	PainPointAnalysis PainPointAnalysis `json:"painPointAnalysis"`
	StepBreakdown     StepBreakdown     `json:"stepBreakdown"`
	EnhancementPlan   EnhancementPlan   `json:"enhancementPlan"`
	BusinessCase      BusinessCase      `json:"businessCase"`
}

// NewWorkflowWizardData returns the initial state: step1 active, nothing complete.
func NewWorkflowWizardData() *WorkflowWizardData {
	return &WorkflowWizardData{
		ActiveStage: StageCurrentWorkflow,
		CurrentWorkflow: CurrentWorkflow{
			Frequency: WorkflowFrequency{Number: 1, Period: FrequencyWeekly},
			Steps:     []WorkflowStep{},
		},
		PainPointAnalysis: PainPointAnalysis{
			TimeWasted: TimeAmount{Unit: TimeMinutes},
			Frequency:  FrequencyAmount{Unit: FrequencyWeekly},
		},
		StepBreakdown: StepBreakdown{
			Inputs:   []string{},
			SubSteps: []SubStep{},
			Outputs:  []string{},
		},
	}
}

// Reachable reports whether s may be activated: the first stage always is,
// later stages only once their predecessor is complete.
func (w *WorkflowWizardData) Reachable(s WizardStage) bool {
	i := s.Index()
	if i < 0 {
		return false
	}
	if i == 0 {
		return true
	}
	return w.StepCompletion.Done(WizardStages[i-1])
}

// Activate moves the active tab. Moving backward is always allowed.
func (w *WorkflowWizardData) Activate(s WizardStage) error {
	if !s.Valid() {
		return NewInvalidInputError(fmt.Sprintf("unknown wizard stage %q", s))
	}
	if !w.Reachable(s) {
		return NewStageLockedError(s)
	}
	w.ActiveStage = s
	return nil
}

// Complete marks s finished and advances to the next stage. Collected data and
// the flags of other stages are left untouched.
func (w *WorkflowWizardData) Complete(s WizardStage) error {
	if !s.Valid() {
		return NewInvalidInputError(fmt.Sprintf("unknown wizard stage %q", s))
	}
	if !w.Reachable(s) {
		return NewStageLockedError(s)
	}
	if err := w.validateStage(s); err != nil {
		return err
	}
	*w.StepCompletion.flag(s) = true
	w.ActiveStage = s.Next()
	return nil
}

// Finished reports whether the terminal stage is complete.
func (w *WorkflowWizardData) Finished() bool {
	return w.StepCompletion.Step5
}

func (w *WorkflowWizardData) validateStage(s WizardStage) error {
	switch s {
	case StageCurrentWorkflow:
		if len(w.CurrentWorkflow.Steps) == 0 {
			return NewStageIncompleteError(s, "at least one workflow step is required")
		}
	case StagePainPoint:
		if w.PainPointAnalysis.SelectedStepID == "" {
			return NewStageIncompleteError(s, "a pain point step must be selected")
		}
	}
	return nil
}

// Validate checks structural limits of the document.
func (w *WorkflowWizardData) Validate() error {
	if w.ActiveStage != "" && !w.ActiveStage.Valid() {
		return NewInvalidInputError(fmt.Sprintf("unknown wizard stage %q", w.ActiveStage))
	}
	if len(w.CurrentWorkflow.Steps) > MaxWorkflowSteps {
		return NewInvalidInputError(fmt.Sprintf("a workflow has at most %d steps", MaxWorkflowSteps))
	}
	if !w.PainPointAnalysis.AIApproach.Valid() {
		return NewInvalidInputError(fmt.Sprintf("unknown AI approach %q", w.PainPointAnalysis.AIApproach))
	}
	for _, sub := range w.StepBreakdown.SubSteps {
		if sub.TimeSavings < 0 || sub.TimeSavings > 100 {
			return NewInvalidInputError(fmt.Sprintf("sub-step %q time savings must be between 0 and 100", sub.ID))
		}
	}
	return nil
}

// SelectedStep returns the workflow step chosen as the pain point.
func (w *WorkflowWizardData) SelectedStep() (WorkflowStep, bool) {
	for _, st := range w.CurrentWorkflow.Steps {
		if st.ID == w.PainPointAnalysis.SelectedStepID {
			return st, true
		}
	}
	return WorkflowStep{}, false
}
