package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// FeeHandler handles admin fee transaction routes.
type FeeHandler struct {
	fees   service.FeeService
	logger zerolog.Logger
}

// NewFeeHandler constructs a fee handler.
func NewFeeHandler(fees service.FeeService, logger zerolog.Logger) *FeeHandler {
	return &FeeHandler{
		fees:   fees,
		logger: logger.With().Str("component", "fee_handler").Logger(),
	}
}

// Register wires fee routes.
func (h *FeeHandler) Register(router fiber.Router) {
	router.Get("/filter-options", h.filterOptions)
	router.Get("/:studentId/transactions", h.list)
	router.Post("/:studentId/transactions", h.create)
	router.Delete("/:studentId/transactions/:transactionId", h.remove)
}

func (h *FeeHandler) create(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Student enrollment not found"))
	}

	var payload dto.FeeTransactionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, utils.ErrValidation(nil))
	}

	transaction, err := h.fees.CreateTransaction(c.Context(), studentID, payload)
	if err != nil {
		return utils.SendValidationError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, fiber.Map{
		"transaction": transaction,
	})
}

func (h *FeeHandler) remove(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Student enrollment not found"))
	}
	transactionID, err := parseUintParam(c, "transactionId")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Transaction not found"))
	}

	if err := h.fees.DeleteTransaction(c.Context(), studentID, transactionID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"message": "Transaction removed",
	})
}

func (h *FeeHandler) list(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, utils.ErrNotFound("Student enrollment not found"))
	}

	page := parseQueryInt(c, "page", 1)
	limit := parseQueryInt(c, "limit", 20)

	transactions, total, err := h.fees.ListTransactions(c.Context(), studentID, page, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"transactions": transactions,
		"pagination":   dto.NewPaginationMeta(page, limit, total),
	})
}

func (h *FeeHandler) filterOptions(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{
		"filters": h.fees.FilterOptions(),
	})
}
