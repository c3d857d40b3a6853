package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/maheshrc27/autopost/internal/api/handlers"
	"github.com/maheshrc27/autopost/internal/api/middleware"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Jobs   *handlers.JobHandler
	Posts  *handlers.PostHandler
}

// NewApp builds the operator API. Everything below /api needs a bearer
// token signed with secretKey.
func NewApp(h Handlers, secretKey string, requestLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	if requestLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	app.Get("/health", h.Health.Health)

	authMiddleware := middleware.NewAuthMiddleware(secretKey)
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	api.Get("/jobs", h.Jobs.ListJobs)
	api.Post("/jobs/reset", h.Jobs.ResetJob)
	api.Post("/schedule", h.Jobs.Schedule)
	api.Post("/run", h.Jobs.Run)

	api.Get("/posts", h.Posts.ListPosts)
	api.Get("/posts/:slug", h.Posts.PostInfo)

	return app
}
