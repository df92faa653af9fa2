package handler_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"class-companion/internal/domain"
	"class-companion/internal/dto"
	"class-companion/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWizardHandler_Flow(t *testing.T) {
	s := newTestServer(t)

	var w dto.WizardResponse
	resp := s.do(t, request{method: "GET", path: "/api/wizard"}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StageCurrentWorkflow, w.ActiveStage)
	assert.Equal(t, []domain.WizardStage{domain.StageCurrentWorkflow}, w.ReachableStages)

	var errResp middleware.ErrorResponse
	resp = s.do(t, request{method: "POST", path: "/api/wizard/stages/step3/activate"}, &errResp)
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	assert.Equal(t, "STAGE_LOCKED", errResp.Code)

	resp = s.do(t, request{method: "POST", path: "/api/wizard/stages/1/complete"}, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "STAGE_INCOMPLETE", errResp.Code)

	sections := []struct {
		stage string
		body  string
	}{
		{"step1", `{"name":"Invoices","steps":[{"id":"s1","name":"Match","time":{"value":30,"unit":"minutes"}}]}`},
		{"step2", `{"selectedStepId":"s1","timeWasted":{"value":1,"unit":"hours"},"frequency":{"value":1,"unit":"monthly"}}`},
		{"step3", `{"subSteps":[{"id":"a","name":"Extract","timeSavings":80}]}`},
	}
	for _, sec := range sections {
		resp = s.do(t, request{method: "PUT", path: "/api/wizard/stages/" + sec.stage, body: sec.body}, &w)
		require.Equal(t, http.StatusOK, resp.StatusCode, sec.stage)
		resp = s.do(t, request{method: "POST", path: "/api/wizard/stages/" + sec.stage + "/complete"}, &w)
		require.Equal(t, http.StatusOK, resp.StatusCode, sec.stage)
	}
	assert.Equal(t, domain.StageEnhancementPlan, w.ActiveStage)
	assert.Equal(t, "Invoices", w.CurrentWorkflow.Name)
	assert.Equal(t, 10.0, w.Metrics.TimeSavedHours)

	var m domain.BusinessMetrics
	s.do(t, request{method: "GET", path: "/api/wizard/metrics"}, &m)
	assert.InDelta(t, 9.6, m.AnnualHoursSaved, 1e-9)

	s.completion.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("upstream down"))
	resp = s.do(t, request{method: "POST", path: "/api/wizard/enhancement-plan"}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.AIFallbackMessage, w.EnhancementPlan.GeneratedPlan)

	resp = s.do(t, request{method: "POST", path: "/api/wizard/stages/step4/complete"}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, request{method: "POST", path: "/api/wizard/business-case"}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, w.BusinessCase.TimeSavedHours)
	assert.Len(t, w.BusinessCase.ImplementationPlan, 3)

	resp = s.do(t, request{method: "POST", path: "/api/wizard/stages/step5/complete"}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, w.StepCompletion.Step5)

	var progress dto.ProgressResponse
	s.do(t, request{method: "GET", path: "/api/progress"}, &progress)
	ex := progress.Lessons[2].SubLessons[1].Exercises[0]
	require.NotNil(t, ex.Answer)
	assert.Equal(t, "completed", ex.Answer.Text())
}

func TestWizardHandler_Report(t *testing.T) {
	s := newTestServer(t)
	s.do(t, request{method: "PUT", path: "/api/wizard/stages/step1", body: `{"name":"Onboarding"}`}, nil)

	var report dto.WizardReportResponse
	resp := s.do(t, request{method: "GET", path: "/api/wizard/report"}, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, report.Markdown, "# Workflow Redesign: Onboarding")

	resp = s.do(t, request{method: "GET", path: "/api/wizard/report", headers: map[string]string{"Accept": "text/markdown"}}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "## 1. Current Workflow")
}

func TestWizardHandler_BadStageAndReset(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, request{method: "PUT", path: "/api/wizard/stages/step9", body: `{}`}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, request{method: "PUT", path: "/api/wizard/stages/step2", body: `{"aiApproach":"telepathy"}`}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	s.do(t, request{method: "PUT", path: "/api/wizard/stages/step1", body: `{"name":"x"}`}, nil)
	var w dto.WizardResponse
	resp = s.do(t, request{method: "DELETE", path: "/api/wizard"}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, w.CurrentWorkflow.Name)
}
