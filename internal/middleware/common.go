package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config customises the middleware registration pipeline.
type Config struct {
	Logger zerolog.Logger
}

// Fixed CORS allow-list. Preflight responses are cacheable for 24 hours.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Content-Type, Authorization"
	corsAllowMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	corsMaxAge       = "86400"
)

// Register attaches the common middlewares used across the API. CORS runs
// first so OPTIONS preflights short-circuit before any gate.
func Register(app *fiber.App, cfg Config) {
	app.Use(recover.New())
	app.Use(corsFilter())
	app.Use(CorrelationID())
	app.Use(Observability(cfg.Logger))
	app.Use(logger.New())
}

// corsFilter decorates every response with the allow-list and answers
// preflights with 200 directly, so OPTIONS never reaches an auth gate.
func corsFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)

		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlMaxAge, corsMaxAge)
			return c.SendStatus(fiber.StatusOK)
		}

		return c.Next()
	}
}
