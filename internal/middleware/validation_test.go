package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"class-companion/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationApp() *fiber.App {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Put("/lessons/:lessonId/sub-lessons/:subLessonId/exercises/:exerciseId/steps/:stepId",
		vm.ValidateTarget(), vm.ValidateIfMatch(),
		func(c *fiber.Ctx) error {
			w := middleware.WriteScope(c)
			var ifMatch int64 = -1
			if w.IfMatch != nil {
				ifMatch = *w.IfMatch
			}
			return c.JSON(fiber.Map{"target": middleware.TargetFrom(c), "ifMatch": ifMatch, "learner": w.LearnerID})
		})
	app.Get("/lessons/:lessonId", vm.ValidateTarget(), func(c *fiber.Ctx) error {
		return c.JSON(middleware.TargetFrom(c))
	})
	return app
}

func TestValidateTarget(t *testing.T) {
	app := newValidationApp()

	req := httptest.NewRequest("PUT", "/lessons/2/sub-lessons/2.1/exercises/flow/steps/s2a", nil)
	req.Header.Set(middleware.IfMatchHeader, "3")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Target  middleware.Target `json:"target"`
		IfMatch int64             `json:"ifMatch"`
		Learner string            `json:"learner"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, middleware.Target{LessonID: 2, SubLessonID: "2.1", ExerciseID: "flow", StepID: "s2a"}, body.Target)
	assert.Equal(t, int64(3), body.IfMatch)
	assert.Equal(t, "local", body.Learner)
}

func TestValidateTarget_LessonOnlyRoute(t *testing.T) {
	resp, err := newValidationApp().Test(httptest.NewRequest("GET", "/lessons/7", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var target middleware.Target
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&target))
	assert.Equal(t, middleware.Target{LessonID: 7}, target)
}

func TestValidateTarget_Rejects(t *testing.T) {
	app := newValidationApp()
	tests := []struct {
		name    string
		path    string
		ifMatch string
	}{
		{"lesson not a number", "/lessons/abc", ""},
		{"bad exercise id", "/lessons/1/sub-lessons/1.1/exercises/a!b/steps/s1", ""},
		{"bad if-match", "/lessons/1/sub-lessons/1.1/exercises/a/steps/s1", "latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := "GET"
			if tt.path != "/lessons/abc" {
				method = "PUT"
			}
			req := httptest.NewRequest(method, tt.path, nil)
			if tt.ifMatch != "" {
				req.Header.Set(middleware.IfMatchHeader, tt.ifMatch)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
