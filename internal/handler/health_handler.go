package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/school-api/internal/config"
	"github.com/campuskit/school-api/internal/utils"
)

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, fiber.Map{
			"status":      "ok",
			"checked_at":  time.Now().UTC(),
			"service":     cfg.AppName,
			"environment": cfg.AppEnv,
		})
	}
}
