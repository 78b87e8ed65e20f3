package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/middleware"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

// principal returns the authenticated principal or the canonical 401 error
// when the gate did not run.
func principal(c *fiber.Ctx) (token.Principal, error) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return token.Principal{}, utils.ErrUnauthorized()
	}
	return p, nil
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || parsed == 0 {
		return 0, utils.ErrNotFound("")
	}
	return uint(parsed), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
