package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type CalendarService interface {
	List(ctx context.Context, projectID int64) ([]*models.CalendarItem, error)
	Grouped(ctx context.Context, projectID int64) ([]DateGroup, error)
	GetItem(ctx context.Context, itemID int64) (*models.CalendarItem, error)
	AddItems(ctx context.Context, projectID int64, inputs []transfer.CalendarItemInput) ([]*models.CalendarItem, error)
}

type calendarService struct {
	cr repository.CalendarRepository
}

func NewCalendarService(cr repository.CalendarRepository) CalendarService {
	return &calendarService{cr: cr}
}

func (s *calendarService) List(ctx context.Context, projectID int64) ([]*models.CalendarItem, error) {
	items, err := s.cr.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error getting calendar: %w", err)
	}
	return items, nil
}

func (s *calendarService) Grouped(ctx context.Context, projectID int64) ([]DateGroup, error) {
	items, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return GroupByDate(items), nil
}

func (s *calendarService) GetItem(ctx context.Context, itemID int64) (*models.CalendarItem, error) {
	item, err := s.cr.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		err = fmt.Errorf("%w: calendar item %d", ErrNotFound, itemID)
		slog.Info(err.Error())
		return nil, err
	}
	return item, nil
}

// AddItems validates every input before inserting any of them.
func (s *calendarService) AddItems(ctx context.Context, projectID int64, inputs []transfer.CalendarItemInput) ([]*models.CalendarItem, error) {
	if len(inputs) == 0 {
		err := fmt.Errorf("%w: no calendar items provided", ErrValidation)
		slog.Info(err.Error())
		return nil, err
	}

	items := make([]*models.CalendarItem, 0, len(inputs))
	for i, in := range inputs {
		platform, err := models.ParsePlatform(in.Platform)
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("%w: item %d: %w", ErrValidation, i, err)
		}
		if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("%w: item %d: invalid date %q", ErrValidation, i, in.Date)
		}
		topic := strings.TrimSpace(in.Topic)
		if topic == "" {
			return nil, fmt.Errorf("%w: item %d: topic cannot be empty", ErrValidation, i)
		}
		contentType := strings.TrimSpace(in.ContentType)
		if contentType == "" {
			contentType = platform.DefaultContentType()
		}
		items = append(items, &models.CalendarItem{
			ProjectID:   projectID,
			Date:        in.Date,
			Platform:    platform,
			ContentType: contentType,
			Topic:       topic,
		})
	}

	if err := s.cr.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("error saving calendar items: %w", err)
	}
	return items, nil
}
