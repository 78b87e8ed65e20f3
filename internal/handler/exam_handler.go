package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// ExamHandler handles admin exam listing and result declaration.
type ExamHandler struct {
	exams  service.ExamService
	logger zerolog.Logger
}

// NewExamHandler constructs an exam handler.
func NewExamHandler(exams service.ExamService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		exams:  exams,
		logger: logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register wires exam routes.
func (h *ExamHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Put("/:examId/declare", h.declare)
}

func (h *ExamHandler) list(c *fiber.Ctx) error {
	exams, err := h.exams.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("exam list failed")
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"exams": exams,
	})
}

func (h *ExamHandler) declare(c *fiber.Ctx) error {
	examID, err := parseUintParam(c, "examId")
	if err != nil {
		return utils.SendError(c, &utils.AppError{Code: utils.CodeExamNotFound, Message: "Exam not found"})
	}

	exam, err := h.exams.Declare(c.Context(), examID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"data": fiber.Map{
			"exam":   exam,
			"status": "declared",
		},
	})
}
