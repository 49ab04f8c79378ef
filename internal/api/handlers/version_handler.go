package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
)

type VersionHandler struct {
	vs service.VersionService
	a  *Access
}

func NewVersionHandler(vs service.VersionService, a *Access) *VersionHandler {
	return &VersionHandler{vs: vs, a: a}
}

func (h *VersionHandler) ListVersions(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	versions, err := h.vs.List(c.Context(), item.ID)
	if err != nil {
		return sendError(c, err)
	}

	summaries := make([]service.VersionSummary, 0, len(versions))
	for _, v := range versions {
		summaries = append(summaries, service.Summarize(v))
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

func (h *VersionHandler) CurrentVersion(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	v, err := h.vs.Current(c.Context(), item.ID)
	if err != nil {
		return sendError(c, err)
	}
	if v == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No versions yet",
		})
	}
	return c.Status(fiber.StatusOK).JSON(service.Summarize(v))
}

func (h *VersionHandler) SelectVersion(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}
	versionID, err := paramID(c, "vid")
	if err != nil {
		return sendError(c, err)
	}

	v, err := h.vs.Select(c.Context(), item.ID, versionID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(service.Summarize(v))
}

func (h *VersionHandler) PreviewVersion(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}
	versionID, err := paramID(c, "vid")
	if err != nil {
		return sendError(c, err)
	}

	v, err := h.vs.Select(c.Context(), item.ID, versionID)
	if err != nil {
		return sendError(c, err)
	}
	html, err := service.RenderVersionHTML(v)
	if err != nil {
		return sendError(c, err)
	}
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).SendString(html)
}
