package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type ResearchHandler struct {
	rs service.ResearchService
	a  *Access
}

func NewResearchHandler(rs service.ResearchService, a *Access) *ResearchHandler {
	return &ResearchHandler{rs: rs, a: a}
}

// StartResearch researches the project's market and plans a two-week calendar
// from start_date, or today when the body has none.
func (h *ResearchHandler) StartResearch(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	var req transfer.ResearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			slog.Info(err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	start := time.Now()
	if req.StartDate != "" {
		start, err = time.Parse(models.DateLayout, req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be YYYY-MM-DD",
			})
		}
	}

	plan, err := h.rs.Generate(c.Context(), project.ID, start)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *ResearchHandler) LatestResearch(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	report, err := h.rs.Latest(c.Context(), project.ID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}
