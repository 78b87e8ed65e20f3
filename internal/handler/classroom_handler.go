package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// ClassroomHandler handles the admin classroom listing.
type ClassroomHandler struct {
	classrooms service.ClassroomService
	logger     zerolog.Logger
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(classrooms service.ClassroomService, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		classrooms: classrooms,
		logger:     logger.With().Str("component", "classroom_handler").Logger(),
	}
}

// Register wires classroom routes.
func (h *ClassroomHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ClassroomHandler) list(c *fiber.Ctx) error {
	filter := repository.ClassroomFilter{
		Medium: c.Query("medium"),
		Search: c.Query("search"),
		Page:   parseQueryInt(c, "page", 1),
		Limit:  parseQueryInt(c, "limit", 50),
	}

	classrooms, pagination, err := h.classrooms.List(c.Context(), filter)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"classrooms": classrooms,
		"pagination": pagination,
	})
}
