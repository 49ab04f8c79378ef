package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type ProjectHandler struct {
	ps service.ProjectService
	cs service.CalendarService
	a  *Access
}

func NewProjectHandler(ps service.ProjectService, cs service.CalendarService, a *Access) *ProjectHandler {
	return &ProjectHandler{ps: ps, cs: cs, a: a}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req transfer.ProjectCreation
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	project, err := h.ps.Create(c.Context(), GetUserID(c), &req)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) ListCalendar(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	if c.QueryBool("grouped") {
		groups, err := h.cs.Grouped(c.Context(), project.ID)
		if err != nil {
			return sendError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(groups)
	}

	items, err := h.cs.List(c.Context(), project.ID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ProjectHandler) AddCalendarItems(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	var req transfer.CalendarItemsCreation
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	items, err := h.cs.AddItems(c.Context(), project.ID, req.Items)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(items)
}
