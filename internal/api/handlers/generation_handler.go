package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type GenerationEnqueuer interface {
	EnqueueGeneration(itemID int64) error
}

type GenerationHandler struct {
	gs service.GenerationService
	eq GenerationEnqueuer
	a  *Access
}

func NewGenerationHandler(gs service.GenerationService, eq GenerationEnqueuer, a *Access) *GenerationHandler {
	return &GenerationHandler{gs: gs, eq: eq, a: a}
}

func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	if c.QueryBool("async") {
		if err := h.eq.EnqueueGeneration(item.ID); err != nil {
			return sendError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Generation queued",
		})
	}

	v, err := h.gs.Write(c.Context(), item.ID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(service.Summarize(v))
}

func (h *GenerationHandler) Regenerate(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	v, err := h.gs.Regenerate(c.Context(), item.ID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(service.Summarize(v))
}

func (h *GenerationHandler) GenerateHashtags(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	var req transfer.HashtagRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			slog.Info(err.Error())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	tags, err := h.gs.GenerateHashtags(c.Context(), item.ID, req.Content)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"hashtags": tags})
}

func (h *GenerationHandler) GetHashtags(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	tags, ok := h.gs.Hashtags(item.ID)
	if !ok {
		tags = []string{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"hashtags": tags,
		"status":   h.gs.Status(item.ID, service.OpHashtags, ""),
	})
}

func (h *GenerationHandler) Repurpose(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	var req transfer.RepurposeRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.gs.Repurpose(c.Context(), item.ID, models.Platform(req.Platform), req.Content)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *GenerationHandler) Status(c *fiber.Ctx) error {
	item, err := h.a.Item(c)
	if err != nil {
		return sendError(c, err)
	}

	op := service.OpKind(c.Query("op", string(service.OpWrite)))
	switch op {
	case service.OpWrite, service.OpHashtags, service.OpRepurpose:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "op must be write, hashtags or repurpose",
		})
	}

	target := models.Platform(c.Query("target"))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"item_id": item.ID,
		"op":      op,
		"target":  target,
		"status":  h.gs.Status(item.ID, op, target),
	})
}
