package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// ResourceHandler handles study resource routes for admins and students.
type ResourceHandler struct {
	resources service.ResourceService
	logger    zerolog.Logger
}

// NewResourceHandler constructs a resource handler.
func NewResourceHandler(resources service.ResourceService, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		resources: resources,
		logger:    logger.With().Str("component", "resource_handler").Logger(),
	}
}

// RegisterAdmin wires the admin resource routes.
func (h *ResourceHandler) RegisterAdmin(router fiber.Router) {
	router.Get("", h.adminList)
	router.Delete("/:id", h.remove)
}

// RegisterStudent wires the student resource routes. Students only see the
// current version within their own classroom.
func (h *ResourceHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.studentList)
	router.Get("/:id/download", h.download)
}

func (h *ResourceHandler) adminList(c *fiber.Ctx) error {
	filter := repository.ResourceFilter{
		ClassroomID:  uint(parseQueryInt(c, "classroom_id", 0)),
		SubjectID:    uint(parseQueryInt(c, "subject_id", 0)),
		TeacherID:    uint(parseQueryInt(c, "teacher_id", 0)),
		ResourceType: c.Query("resource_type"),
		Search:       c.Query("search"),
		Page:         parseQueryInt(c, "page", 1),
		Limit:        parseQueryInt(c, "limit", 20),
	}

	listing, err := h.resources.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("resource list failed")
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"resources":  listing.Items,
		"pagination": listing.Pagination,
	})
}

func (h *ResourceHandler) studentList(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	// A zero classroom would drop the classroom predicate and leak every
	// classroom's resources.
	if p.ClassroomID == 0 {
		return utils.SendError(c, utils.ErrForbidden("Only students can list classroom resources"))
	}

	filter := repository.ResourceFilter{
		ClassroomID:  p.ClassroomID,
		SubjectID:    uint(parseQueryInt(c, "subject_id", 0)),
		ResourceType: c.Query("resource_type"),
		Search:       c.Query("search"),
		CurrentOnly:  true,
		Page:         parseQueryInt(c, "page", 1),
		Limit:        parseQueryInt(c, "limit", 20),
	}

	listing, err := h.resources.List(c.Context(), filter)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"resources":  listing.Items,
		"pagination": listing.Pagination,
	})
}

func (h *ResourceHandler) download(c *fiber.Ctx) error {
	resourceID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Resource not found"))
	}

	download, err := h.resources.Download(c.Context(), resourceID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"download": download,
	})
}

func (h *ResourceHandler) remove(c *fiber.Ctx) error {
	resourceID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Resource not found"))
	}

	if err := h.resources.Delete(c.Context(), resourceID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Resource removed",
	})
}
