package service

import (
	"fmt"
	"strings"

	"class-companion/internal/domain"
)

// BuildEnhancementPrompt asks for an AI-assisted redesign of the selected pain point.
func BuildEnhancementPrompt(w *domain.WorkflowWizardData) string {
	var b strings.Builder
	cw := w.CurrentWorkflow
	pp := w.PainPointAnalysis

	b.WriteString("You are an expert in redesigning business workflows with generative AI.\n\n")
	fmt.Fprintf(&b, "Workflow: %s\n", orNotSpecified(cw.Name))
	fmt.Fprintf(&b, "Description: %s\n", orNotSpecified(cw.Description))
	fmt.Fprintf(&b, "Runs: %s per %s\n\n", formatNumber(cw.Frequency.Number), periodNoun(cw.Frequency.Period))

	b.WriteString("Current steps:\n")
	for i, st := range cw.Steps {
		fmt.Fprintf(&b, "%d. %s (tool: %s, data: %s, privacy: %s, time: %s %s)\n",
			i+1, orNotSpecified(st.Name), orNotSpecified(st.Tool), orNotSpecified(st.Data),
			orNotSpecified(st.PrivacyLevel), formatNumber(st.Time.Value), st.Time.Unit)
	}
	if cw.PainPoints != "" {
		fmt.Fprintf(&b, "Known pain points: %s\n", cw.PainPoints)
	}

	b.WriteString("\nSelected pain point:\n")
	if st, ok := w.SelectedStep(); ok {
		fmt.Fprintf(&b, "Step: %s\n", orNotSpecified(st.Name))
	}
	fmt.Fprintf(&b, "Problem: %s\n", orNotSpecified(pp.Description))
	fmt.Fprintf(&b, "Time wasted: %s %s, %s %s\n",
		formatNumber(pp.TimeWasted.Value), pp.TimeWasted.Unit, formatNumber(pp.Frequency.Value), pp.Frequency.Unit)
	if pp.AIApproach != "" {
		fmt.Fprintf(&b, "Preferred AI approach: %s\n", pp.AIApproach)
	}

	sb := w.StepBreakdown
	if len(sb.SubSteps) > 0 {
		b.WriteString("\nProposed sub-steps:\n")
		for i, sub := range sb.SubSteps {
			fmt.Fprintf(&b, "%d. %s (AI: %s, expected time savings: %s%%, human involvement: %s)\n",
				i+1, orNotSpecified(sub.Name), joinApproaches(sub.AIApproaches),
				formatNumber(sub.TimeSavings), orNotSpecified(string(sub.HumanInvolvement)))
			if sub.RoleDescription != "" {
				fmt.Fprintf(&b, "   Human role: %s\n", sub.RoleDescription)
			}
		}
	}
	if len(sb.Inputs) > 0 {
		fmt.Fprintf(&b, "Inputs: %s\n", strings.Join(sb.Inputs, ", "))
	}
	if len(sb.Outputs) > 0 {
		fmt.Fprintf(&b, "Outputs: %s\n", strings.Join(sb.Outputs, ", "))
	}
	if c := w.EnhancementPlan.Constraints; c != "" {
		fmt.Fprintf(&b, "\nConstraints: %s\n", c)
	}

	b.WriteString("\nWrite a concise enhancement plan: which sub-steps to automate, which tools or prompts to use, " +
		"where humans stay in the loop, and the main risks. Use short paragraphs and bullet points.")
	return b.String()
}

// BuildBusinessCasePrompt asks for the narrative sections of the business case.
func BuildBusinessCasePrompt(w *domain.WorkflowWizardData, m domain.BusinessMetrics) string {
	var b strings.Builder
	b.WriteString("You are helping an employee write a short business case for an AI-enhanced workflow.\n\n")
	fmt.Fprintf(&b, "Workflow: %s\n", orNotSpecified(w.CurrentWorkflow.Name))
	fmt.Fprintf(&b, "Pain point: %s\n", orNotSpecified(w.PainPointAnalysis.Description))
	fmt.Fprintf(&b, "Time lost per occurrence: %s minutes\n", formatNumber(m.MinutesPerOccurrence))
	fmt.Fprintf(&b, "Occurrences per year: %s\n", formatNumber(m.AnnualOccurrences))
	fmt.Fprintf(&b, "Average expected time savings: %s%%\n", formatNumber(m.AverageTimeSavings))
	fmt.Fprintf(&b, "Estimated hours saved per year: %s\n", formatNumber(m.TimeSavedHours))
	if plan := w.EnhancementPlan.GeneratedPlan; plan != "" {
		fmt.Fprintf(&b, "\nEnhancement plan:\n%s\n", plan)
	}
	b.WriteString("\nWrite the business case in Markdown using exactly these headings, each followed by one short paragraph:\n")
	for _, h := range businessCaseHeadings {
		fmt.Fprintf(&b, "## %s\n", h)
	}
	b.WriteString("Keep the executive summary under 100 words and mention the hours saved in the expected benefits.")
	return b.String()
}

var businessCaseHeadings = []string{
	"Executive Summary",
	"Problem Statement",
	"Proposed Solution",
	"Expected Benefits",
	"Risks",
}

// ParseBusinessCase splits a generated business case into its sections. Text
// without any recognised heading becomes the executive summary. ok is false
// when no section was found.
func ParseBusinessCase(text string) (bc domain.BusinessCase, ok bool) {
	fields := map[string]*string{
		"executive summary": &bc.ExecutiveSummary,
		"problem statement": &bc.ProblemStatement,
		"proposed solution": &bc.ProposedSolution,
		"expected benefits": &bc.ExpectedBenefits,
		"risks":             &bc.Risks,
	}

	var preamble strings.Builder
	var current *string
	var body strings.Builder
	flush := func() {
		if current != nil {
			*current = strings.TrimSpace(body.String())
		}
		body.Reset()
	}
	for _, line := range strings.Split(text, "\n") {
		if dst, isHeading := fields[headingKey(line)]; isHeading {
			flush()
			current, ok = dst, true
			continue
		}
		if current == nil {
			preamble.WriteString(line + "\n")
			continue
		}
		body.WriteString(line + "\n")
	}
	flush()

	if !ok {
		bc.ExecutiveSummary = strings.TrimSpace(text)
	} else if bc.ExecutiveSummary == "" {
		bc.ExecutiveSummary = strings.TrimSpace(preamble.String())
	}
	return bc, ok
}

// headingKey normalizes "## Risks", "**Risks:**" or "### 1. Risks" to "risks".
func headingKey(line string) string {
	line = strings.TrimSpace(line)
	bold := strings.HasPrefix(line, "**")
	if !strings.HasPrefix(line, "#") && !bold {
		return ""
	}
	line = strings.TrimLeft(line, "# ")
	line = strings.Trim(line, "*: ")
	line = strings.TrimLeft(line, "0123456789. ")
	return strings.ToLower(strings.TrimSpace(line))
}

// BuildReport renders all wizard stages and the derived metrics as Markdown.
func BuildReport(w *domain.WorkflowWizardData, m domain.BusinessMetrics) string {
	var b strings.Builder
	cw := w.CurrentWorkflow

	fmt.Fprintf(&b, "# Workflow Redesign: %s\n\n", orNotSpecified(cw.Name))

	b.WriteString("## 1. Current Workflow\n\n")
	if cw.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", cw.Description)
	}
	fmt.Fprintf(&b, "- Frequency: %s per %s\n", formatNumber(cw.Frequency.Number), periodNoun(cw.Frequency.Period))
	if len(cw.Steps) > 0 {
		b.WriteString("\n| # | Step | Tool | Data | Privacy | Time |\n|---|---|---|---|---|---|\n")
		for i, st := range cw.Steps {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s %s |\n", i+1,
				cell(st.Name), cell(st.Tool), cell(st.Data), cell(st.PrivacyLevel), formatNumber(st.Time.Value), st.Time.Unit)
		}
	}
	if cw.PainPoints != "" {
		fmt.Fprintf(&b, "\nPain points: %s\n", cw.PainPoints)
	}

	pp := w.PainPointAnalysis
	b.WriteString("\n## 2. Pain Point Analysis\n\n")
	if st, ok := w.SelectedStep(); ok {
		fmt.Fprintf(&b, "- Selected step: %s\n", st.Name)
	}
	fmt.Fprintf(&b, "- Problem: %s\n", orNotSpecified(pp.Description))
	fmt.Fprintf(&b, "- Time wasted: %s %s\n", formatNumber(pp.TimeWasted.Value), pp.TimeWasted.Unit)
	fmt.Fprintf(&b, "- Frequency: %s %s\n", formatNumber(pp.Frequency.Value), pp.Frequency.Unit)
	if pp.AIApproach != "" {
		fmt.Fprintf(&b, "- AI approach: %s\n", pp.AIApproach)
	}

	sb := w.StepBreakdown
	b.WriteString("\n## 3. Step Breakdown\n\n")
	if len(sb.Inputs) > 0 {
		fmt.Fprintf(&b, "- Inputs: %s\n", strings.Join(sb.Inputs, ", "))
	}
	for i, sub := range sb.SubSteps {
		fmt.Fprintf(&b, "%d. **%s**: AI %s, %s%% time savings, human involvement %s\n",
			i+1, orNotSpecified(sub.Name), joinApproaches(sub.AIApproaches), formatNumber(sub.TimeSavings),
			orNotSpecified(string(sub.HumanInvolvement)))
	}
	if len(sb.Outputs) > 0 {
		fmt.Fprintf(&b, "- Outputs: %s\n", strings.Join(sb.Outputs, ", "))
	}

	b.WriteString("\n## 4. Enhancement Plan\n\n")
	fmt.Fprintf(&b, "%s\n", orNotSpecified(w.EnhancementPlan.GeneratedPlan))
	if c := w.EnhancementPlan.Constraints; c != "" {
		fmt.Fprintf(&b, "\nConstraints: %s\n", c)
	}

	bc := w.BusinessCase
	b.WriteString("\n## 5. Business Case\n\n")
	fmt.Fprintf(&b, "- Minutes per occurrence: %s\n", formatNumber(m.MinutesPerOccurrence))
	fmt.Fprintf(&b, "- Occurrences per year: %s\n", formatNumber(m.AnnualOccurrences))
	fmt.Fprintf(&b, "- Average time savings: %s%%\n", formatNumber(m.AverageTimeSavings))
	fmt.Fprintf(&b, "- Hours saved per year: %s\n", formatNumber(m.TimeSavedHours))
	if bc.ExecutiveSummary != "" {
		fmt.Fprintf(&b, "\n%s\n", bc.ExecutiveSummary)
	}
	for _, sec := range []struct{ title, text string }{
		{"Problem Statement", bc.ProblemStatement},
		{"Proposed Solution", bc.ProposedSolution},
		{"Expected Benefits", bc.ExpectedBenefits},
		{"Risks", bc.Risks},
	} {
		if sec.text != "" {
			fmt.Fprintf(&b, "\n### %s\n\n%s\n", sec.title, sec.text)
		}
	}
	if len(bc.ImplementationPlan) > 0 {
		b.WriteString("\n### Implementation Plan\n\n")
		for _, phase := range bc.ImplementationPlan {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", phase.Name, phase.Duration, phase.Activities)
		}
	}
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not specified"
	}
	return s
}

func cell(s string) string {
	return strings.ReplaceAll(orNotSpecified(s), "|", "\\|")
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}

func periodNoun(p domain.FrequencyUnit) string {
	switch p {
	case domain.FrequencyDaily:
		return "day"
	case domain.FrequencyWeekly:
		return "week"
	case domain.FrequencyMonthly:
		return "month"
	case domain.FrequencyQuarterly:
		return "quarter"
	case domain.FrequencyYearly:
		return "year"
	}
	return orNotSpecified(string(p))
}

func joinApproaches(as []domain.AIApproach) string {
	if len(as) == 0 {
		return "none"
	}
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = string(a)
	}
	return strings.Join(parts, "+")
}
