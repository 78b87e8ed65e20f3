package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// ScheduleHandler handles the student schedule routes.
type ScheduleHandler struct {
	schedules service.ScheduleService
	logger    zerolog.Logger
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(schedules service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedules: schedules,
		logger:    logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register wires schedule routes.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("/daily", h.daily)
	router.Get("/exam/terms", h.examTerms)
}

// daily returns the classroom's current daily timetable. The response carries
// a version-derived ETag so clients can revalidate cheaply; a matching
// If-None-Match short-circuits to 304 before a new URL is signed.
func (h *ScheduleHandler) daily(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if p.ClassroomID == 0 {
		return utils.SendError(c, utils.ErrForbidden("Only students have a daily schedule"))
	}

	schedule, etag, err := h.schedules.Daily(c.Context(), p.ClassroomID)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderETag, etag)
	c.Set(fiber.HeaderCacheControl, "private, max-age=60")

	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	return utils.SendSuccess(c, fiber.Map{
		"schedule": schedule,
	})
}

func (h *ScheduleHandler) examTerms(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if p.ClassroomID == 0 {
		return utils.SendError(c, utils.ErrForbidden("Only students have exam schedules"))
	}

	terms, err := h.schedules.ExamTerms(c.Context(), p.ClassroomID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"terms": terms,
	})
}
