package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// AuthHandler handles sign-in, password changes and the OTP reset flow.
type AuthHandler struct {
	auth   service.AuthService
	otp    service.OTPService
	logger zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth service.AuthService, otp service.OTPService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		otp:    otp,
		logger: logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterAdminLogin wires the admin login route.
func (h *AuthHandler) RegisterAdminLogin(router fiber.Router) {
	router.Post("/login", h.adminLogin)
}

// RegisterPublic wires the OTP reset flow routes.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/forgot-password", h.forgotPassword)
	router.Post("/verify-otp", h.verifyOTP)
	router.Post("/reset-password", h.resetPassword)
}

// RegisterUser wires authenticated account routes.
func (h *AuthHandler) RegisterUser(router fiber.Router) {
	router.Post("/change-password", h.changePassword)
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	var payload dto.AdminLoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	response, err := h.auth.AdminLogin(c.Context(), payload)
	if err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"token": response.Token,
		"user":  response.User,
	})
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var payload dto.ChangePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	if err := h.auth.ChangePassword(c.Context(), p, payload); err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Password changed",
	})
}

func (h *AuthHandler) forgotPassword(c *fiber.Ctx) error {
	var payload dto.ForgotPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	if err := h.otp.RequestOTP(c.Context(), payload); err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "OTP sent",
	})
}

func (h *AuthHandler) verifyOTP(c *fiber.Ctx) error {
	var payload dto.VerifyOTPRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	resetToken, err := h.otp.VerifyOTP(c.Context(), payload)
	if err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"reset_token": resetToken,
	})
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	if err := h.otp.ResetPassword(c.Context(), payload); err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Password reset",
	})
}
