package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type TemplateHandler struct {
	ts service.TemplateService
	a  *Access
}

func NewTemplateHandler(ts service.TemplateService, a *Access) *TemplateHandler {
	return &TemplateHandler{ts: ts, a: a}
}

func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.ts.List())
}

// ApplyTemplate starts the template on start_date, or today when the body has none.
func (h *TemplateHandler) ApplyTemplate(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	var req transfer.TemplateApplyRequest
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

	items, err := h.ts.Apply(c.Context(), project.ID, c.Params("tid"), start)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(items)
}

func (h *TemplateHandler) AppliedTemplates(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	applied, err := h.ts.Applied(c.Context(), project.ID)
	if err != nil {
		return sendError(c, err)
	}

	ids := make([]string, 0, len(applied))
	for _, a := range applied {
		ids = append(ids, a.TemplateID)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"templates": ids})
}
