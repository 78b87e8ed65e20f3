package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// NotificationHandler handles notification listing, read tracking and the
// fan-out emitter.
type NotificationHandler struct {
	notifications service.NotificationService
	logger        zerolog.Logger
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(notifications service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register wires the notification routes. The emitter additionally passes
// the admin gate on top of the group's user gate.
func (h *NotificationHandler) Register(router fiber.Router, requireAdmin fiber.Handler) {
	router.Get("", h.list)
	router.Patch("/read-all", h.markAllRead)
	router.Patch("/:id/read", h.markRead)
	router.Post("/event", requireAdmin, h.emit)
}

func (h *NotificationHandler) emit(c *fiber.Ctx) error {
	var payload dto.NotificationEventRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	rows, err := h.notifications.Emit(c.Context(), payload)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("notification emit failed")
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, fiber.Map{
		"notifications": rows,
	})
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 20)
	status := c.Query("status", "all")

	rows, total, err := h.notifications.List(c.Context(), p.Role, selfID(p.ID()), status, page, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"notifications": rows,
		"pagination":    dto.NewPaginationMeta(page, limit, total),
	})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Notification not found"))
	}

	if err := h.notifications.MarkRead(c.Context(), id, p.Role, selfID(p.ID())); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Notification marked read",
	})
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	affected, err := h.notifications.MarkAllRead(c.Context(), p.Role, selfID(p.ID()))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"updated": affected,
	})
}

func selfID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
