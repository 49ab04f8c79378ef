package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// ErrorStatus maps the service error taxonomy onto HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrBusy):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUpstream):
		return fiber.StatusBadGateway
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(err.Error())
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// Access resolves path ids to resources the caller owns. Items are reached through
// their project, so another user's item reads as not found.
type Access struct {
	ps service.ProjectService
	cs service.CalendarService
}

func NewAccess(ps service.ProjectService, cs service.CalendarService) *Access {
	return &Access{ps: ps, cs: cs}
}

func (a *Access) Project(c *fiber.Ctx) (*models.Project, error) {
	projectID, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	return a.ps.Get(c.Context(), GetUserID(c), projectID)
}

func (a *Access) Item(c *fiber.Ctx) (*models.CalendarItem, error) {
	itemID, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	item, err := a.cs.GetItem(c.Context(), itemID)
	if err != nil {
		return nil, err
	}
	if _, err := a.ps.Get(c.Context(), GetUserID(c), item.ProjectID); err != nil {
		return nil, err
	}
	return item, nil
}
