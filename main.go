package main

import (
	"fab/config"
	"fab/database"
	"fab/middleware"
	feedbackRoutes "fab/routers/feedbackRoutes"
	"fab/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		// Normalize anything that escapes a handler so no raw internal
		// error crosses the boundary.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError,
				middleware.CodeInternalError, "Something went wrong!")
		},
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.SuccessResponse(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(
		config.AppConfig.RateLimitMax,
		time.Duration(config.AppConfig.RateLimitWindowSec)*time.Second,
	)

	feedbackRoutes.SetupFeedbackRoutes(app, limiter)

	if config.AppConfig.StatsSnapshotEnabled {
		utils.StartStatsScheduler()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
