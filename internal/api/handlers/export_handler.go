package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
)

type ExportHandler struct {
	es service.ExportService
	a  *Access
}

func NewExportHandler(es service.ExportService, a *Access) *ExportHandler {
	return &ExportHandler{es: es, a: a}
}

func (h *ExportHandler) download(c *fiber.Ctx, format service.ExportFormat) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	export, err := h.es.Render(c.Context(), project.ID, format)
	if err != nil {
		return sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	return c.Status(fiber.StatusOK).Send(export.Data)
}

func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	return h.download(c, service.ExportCSV)
}

func (h *ExportHandler) ExportPrintable(c *fiber.Ctx) error {
	return h.download(c, service.ExportPrintable)
}

func (h *ExportHandler) PublishExport(c *fiber.Ctx) error {
	project, err := h.a.Project(c)
	if err != nil {
		return sendError(c, err)
	}

	format, err := service.ParseExportFormat(c.Query("format", string(service.ExportCSV)))
	if err != nil {
		return sendError(c, err)
	}

	url, err := h.es.Publish(c.Context(), project.ID, format)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
