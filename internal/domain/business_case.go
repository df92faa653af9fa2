package domain

import "math"

const (
	minutesPerHour = 60
	// An 8-hour workday.
	minutesPerWorkday = 8 * minutesPerHour
)

var annualFactors = map[FrequencyUnit]float64{
	FrequencyDaily:     260,
	FrequencyWeekly:    52,
	FrequencyMonthly:   12,
	FrequencyQuarterly: 4,
	FrequencyYearly:    1,
}

// ToMinutes converts a time amount to minutes. Unknown units yield 0.
func ToMinutes(t TimeAmount) float64 {
	switch t.Unit {
	case TimeMinutes:
		return t.Value
	case TimeHours:
		return t.Value * minutesPerHour
	case TimeDays:
		return t.Value * minutesPerWorkday
	}
	return 0
}

// ToAnnualOccurrences converts a frequency to occurrences per year. Unknown units yield 0.
func ToAnnualOccurrences(f FrequencyAmount) float64 {
	return f.Value * annualFactors[f.Unit]
}

// AverageTimeSavings is the mean timeSavings percentage over all sub-steps, 0 when there are none.
func AverageTimeSavings(subSteps []SubStep) float64 {
	if len(subSteps) == 0 {
		return 0
	}
	var sum float64
	for _, s := range subSteps {
		sum += s.TimeSavings
	}
	return sum / float64(len(subSteps))
}

// BusinessMetrics are the derived figures behind the business case.
type BusinessMetrics struct {
	MinutesPerOccurrence float64 `json:"minutesPerOccurrence"`
	AnnualOccurrences    float64 `json:"annualOccurrences"`
	AverageTimeSavings   float64 `json:"averageTimeSavings"`
	AnnualHoursSaved     float64 `json:"annualHoursSaved"`
	TimeSavedHours       float64 `json:"timeSavedHours"`
}

// CalculateBusinessMetrics derives annual savings from the pain point and the sub-step breakdown.
func CalculateBusinessMetrics(w *WorkflowWizardData) BusinessMetrics {
	m := BusinessMetrics{
		MinutesPerOccurrence: ToMinutes(w.PainPointAnalysis.TimeWasted),
		AnnualOccurrences:    ToAnnualOccurrences(w.PainPointAnalysis.Frequency),
		AverageTimeSavings:   AverageTimeSavings(w.StepBreakdown.SubSteps),
	}
	m.AnnualHoursSaved = m.MinutesPerOccurrence * m.AnnualOccurrences * (m.AverageTimeSavings / 100) / minutesPerHour
	m.TimeSavedHours = math.Round(m.AnnualHoursSaved)
	return m
}

// DefaultImplementationPlan is the 3-phase rollout used when none was entered.
func DefaultImplementationPlan() []ImplementationPhase {
	return []ImplementationPhase{
		{Name: "Pilot", Duration: "2-4 weeks", Activities: "Test the enhanced workflow with a small group and collect feedback."},
		{Name: "Rollout", Duration: "1-2 months", Activities: "Train the wider team and migrate the workflow to the new process."},
		{Name: "Optimize", Duration: "Ongoing", Activities: "Measure time savings, refine prompts and tooling, and expand to related workflows."},
	}
}
