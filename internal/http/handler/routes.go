package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"questionnaire/internal/service"
)

// Pinger is the dependency probed by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes attaches the API routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, questionSvc service.QuestionService, mediaSvc service.MediaService) {
	app.Get("/health", HealthCheck(questionSvc))
	app.Get("/healthz", LivenessProbe())

	app.Get("/questions", GetQuestions(questionSvc))
	app.Post("/questions", SaveQuestions(questionSvc))
	app.Post("/upload", UploadAudio(mediaSvc))
}

// RegisterMediaFiles serves uploaded audio from dir under prefix, read-only.
// Dot files (in-flight temp uploads) are never served.
func RegisterMediaFiles(app *fiber.App, prefix, dir string) {
	app.Static(prefix, dir, fiber.Static{
		Browse: false,
		Next: func(c *fiber.Ctx) bool {
			return strings.Contains(c.Path(), "/.")
		},
	})
}

// HealthCheck godoc
// @Summary  Readiness probe; checks that document storage is reachable
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  errorPayload
// @Router   /health [get]
func HealthCheck(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			logFailure(c, "health_check_failed", err)
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a dependency-free liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
