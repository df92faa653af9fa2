package handler

import (
	"class-companion/internal/middleware"
	"class-companion/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Progress     *ProgressHandler
	ExerciseData *ExerciseDataHandler
	Wizard       *WizardHandler
	AI           *AIHandler
	Learner      *LearnerHandler
}

// SetupRoutes mounts the public API on app.
func SetupRoutes(app *fiber.App, h Handlers, learners service.LearnerService) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/healthz", h.Learner.Health)

	api := app.Group("/api")
	api.Post("/learners", h.Learner.Register)
	api.Get("/course", h.Progress.GetCourse)

	// AI proxy routes are not learner scoped
	api.Post("/ai/query", h.AI.Query)
	api.Post("/ai/chat", h.AI.Chat)
	api.Post("/openrouter-completion", h.AI.OpenRouterCompletion)
	api.Post("/openai-assistant", h.AI.OpenAIAssistant)

	scoped := middleware.Learner(learners)
	target := vm.ValidateTarget()
	ifMatch := vm.ValidateIfMatch()

	progress := api.Group("/progress", scoped)
	progress.Get("/", h.Progress.GetProgress)
	progress.Delete("/", ifMatch, h.Progress.ClearAll)
	progress.Get("/overall", h.Progress.GetOverallProgress)
	progress.Get("/export", h.Progress.ExportData)
	progress.Post("/import", ifMatch, h.Progress.ImportData)
	progress.Get("/lessons/:lessonId", target, h.Progress.GetLessonProgress)

	const sub = "/lessons/:lessonId/sub-lessons/:subLessonId"
	progress.Put(sub+"/status", target, ifMatch, h.Progress.UpdateSubLessonStatus)
	progress.Put(sub+"/exercises/:exerciseId/answer", target, ifMatch, h.Progress.UpdateExerciseAnswer)
	progress.Put(sub+"/exercises/:exerciseId/follow-up", target, ifMatch, h.Progress.UpdateFollowUpAnswer)
	progress.Put(sub+"/exercises/:exerciseId/steps/:stepId/answer", target, ifMatch, h.Progress.UpdateStepAnswer)
	progress.Post(sub+"/exercises/:exerciseId/options/toggle", target, ifMatch, h.Progress.ToggleCheckboxOption)

	data := api.Group("/exercise-data", scoped)
	data.Get("/:name", h.ExerciseData.GetExerciseData)
	data.Put("/:name", h.ExerciseData.PutExerciseData)
	data.Delete("/:name", h.ExerciseData.DeleteExerciseData)
	const composite = "/:kind/:lessonId/:subLessonId/:exerciseId/:stepId?"
	data.Get(composite, target, h.ExerciseData.GetExerciseData)
	data.Put(composite, target, h.ExerciseData.PutExerciseData)
	data.Delete(composite, target, h.ExerciseData.DeleteExerciseData)

	wizard := api.Group("/wizard", scoped)
	wizard.Get("/", h.Wizard.GetWizard)
	wizard.Delete("/", h.Wizard.ResetWizard)
	wizard.Put("/stages/:stage", h.Wizard.UpdateStage)
	wizard.Post("/stages/:stage/activate", h.Wizard.ActivateStage)
	wizard.Post("/stages/:stage/complete", h.Wizard.CompleteStage)
	wizard.Get("/metrics", h.Wizard.GetMetrics)
	wizard.Post("/enhancement-plan", h.Wizard.GenerateEnhancementPlan)
	wizard.Post("/business-case", h.Wizard.GenerateBusinessCase)
	wizard.Get("/report", h.Wizard.GetReport)
}
