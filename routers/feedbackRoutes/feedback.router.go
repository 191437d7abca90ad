package feedbackRoutes

import (
	controller "fab/controllers/feedback"
	"fab/middleware"
	validator "fab/validators/feedback"

	"github.com/gofiber/fiber/v2"
)

// SetupFeedbackRoutes registers the feedback endpoints. Submission is public
// (rate-limited); everything else requires the admin credential.
func SetupFeedbackRoutes(app *fiber.App, limiter *middleware.RateLimiter) {
	feedback := app.Group("/feedback")

	feedback.Post("/", limiter.Handle, validator.CreateFeedback(), controller.CreateFeedback)
	feedback.Get("/stats", middleware.AdminAuth, controller.FeedbackStats)
	feedback.Get("/", middleware.AdminAuth, validator.ListFeedback(), controller.ListFeedback)
	feedback.Post("/batch", middleware.AdminAuth, validator.BatchAction(), controller.BatchAction)
	feedback.Get("/:id", middleware.AdminAuth, controller.GetFeedback)
	feedback.Patch("/:id", middleware.AdminAuth, validator.UpdateFeedback(), controller.UpdateFeedback)
	feedback.Delete("/:id", middleware.AdminAuth, controller.DeleteFeedback)
}
