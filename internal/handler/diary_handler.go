package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// DiaryHandler handles the student diary listing.
type DiaryHandler struct {
	diaries service.DiaryService
	logger  zerolog.Logger
}

// NewDiaryHandler constructs a diary handler.
func NewDiaryHandler(diaries service.DiaryService, logger zerolog.Logger) *DiaryHandler {
	return &DiaryHandler{
		diaries: diaries,
		logger:  logger.With().Str("component", "diary_handler").Logger(),
	}
}

// Register wires diary routes.
func (h *DiaryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *DiaryHandler) list(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if p.EnrollmentID == 0 {
		return utils.SendError(c, utils.ErrForbidden("Only students have a diary"))
	}

	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 20)

	entries, pagination, err := h.diaries.ListForStudent(c.Context(), p.EnrollmentID, p.ClassroomID, page, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"entries":    entries,
		"pagination": pagination,
	})
}
