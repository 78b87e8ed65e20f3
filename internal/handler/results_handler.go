package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/service"
	"github.com/campuskit/school-api/internal/utils"
)

// ResultsHandler handles the student performance and test result routes.
type ResultsHandler struct {
	performance service.PerformanceService
	results     service.ResultService
	logger      zerolog.Logger
}

// NewResultsHandler constructs a results handler.
func NewResultsHandler(performance service.PerformanceService, results service.ResultService, logger zerolog.Logger) *ResultsHandler {
	return &ResultsHandler{
		performance: performance,
		results:     results,
		logger:      logger.With().Str("component", "results_handler").Logger(),
	}
}

// Register wires results routes.
func (h *ResultsHandler) Register(router fiber.Router) {
	router.Get("/performance", h.getPerformance)
	router.Get("/tests", h.listTests)
}

func (h *ResultsHandler) getPerformance(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if p.StudentID == 0 {
		return utils.SendError(c, utils.ErrForbidden("Only students have performance data"))
	}

	performance, err := h.performance.GetPerformance(c.Context(), p.StudentID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"performance": performance,
	})
}

func (h *ResultsHandler) listTests(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if p.StudentID == 0 {
		return utils.SendError(c, utils.ErrForbidden("Only students have test results"))
	}

	query := service.TestResultQuery{
		Subject:   c.Query("subject"),
		DateFrom:  c.Query("dateFrom"),
		DateTo:    c.Query("dateTo"),
		Range:     c.Query("range"),
		Limit:     parseQueryInt(c, "limit", 20),
		Offset:    parseQueryInt(c, "offset", 0),
		SortOrder: c.Query("sort", "newest"),
	}

	listing, err := h.results.ListTests(c.Context(), p.StudentID, query)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"results": listing.Items,
		"total":   listing.Total,
	})
}
