package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// DeviceHandler handles push device registration.
type DeviceHandler struct {
	devices service.DeviceService
	logger  zerolog.Logger
}

// NewDeviceHandler constructs a device handler.
func NewDeviceHandler(devices service.DeviceService, logger zerolog.Logger) *DeviceHandler {
	return &DeviceHandler{
		devices: devices,
		logger:  logger.With().Str("component", "device_handler").Logger(),
	}
}

// Register wires device routes.
func (h *DeviceHandler) Register(router fiber.Router) {
	router.Post("", h.register)
	router.Delete("", h.unregister)
}

func (h *DeviceHandler) register(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var payload dto.DeviceRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	if err := h.devices.Register(c.Context(), p, payload); err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Device registered",
	})
}

func (h *DeviceHandler) unregister(c *fiber.Ctx) error {
	if _, err := principal(c); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.devices.Unregister(c.Context(), c.Query("token")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Device removed",
	})
}
