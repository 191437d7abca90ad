package feedbackControllers

import (
	"fab/database"
	"fab/middleware"
	feedbackService "fab/services/feedback"

	"github.com/gofiber/fiber/v2"
)

// FeedbackStats returns the dashboard snapshot: total, per-enum histograms
// and the 30-day creation trend.
func FeedbackStats(c *fiber.Ctx) error {
	svc := feedbackService.NewService(database.Database.Db)

	stats, err := svc.Stats()
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.SuccessResponse(c, fiber.StatusOK, stats)
}
