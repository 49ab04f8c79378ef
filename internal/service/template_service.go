package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
)

type TemplateService interface {
	List() []models.Template
	Apply(ctx context.Context, projectID int64, templateID string, start time.Time) ([]*models.CalendarItem, error)
	Applied(ctx context.Context, projectID int64) ([]*models.TemplateApplication, error)
}

type templateService struct {
	catalog map[string]models.Template
	order   []string
	pr      repository.ProjectRepository
	cr      repository.CalendarRepository
	tr      repository.TemplateApplicationRepository
}

func NewTemplateService(
	catalog []models.Template,
	pr repository.ProjectRepository,
	cr repository.CalendarRepository,
	tr repository.TemplateApplicationRepository) TemplateService {
	s := &templateService{
		catalog: make(map[string]models.Template, len(catalog)),
		pr:      pr,
		cr:      cr,
		tr:      tr,
	}
	for _, t := range catalog {
		s.catalog[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	return s
}

func (s *templateService) List() []models.Template {
	out := make([]models.Template, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.catalog[id])
	}
	return out
}

func validateTemplate(t models.Template) error {
	if len(t.Topics) == 0 {
		return fmt.Errorf("%w: template %q has no topics", ErrValidation, t.ID)
	}
	if _, err := models.ParsePlatform(string(t.Platform)); err != nil {
		return fmt.Errorf("%w: template %q: %w", ErrValidation, t.ID, err)
	}
	for i, topic := range t.Topics {
		if strings.TrimSpace(topic) == "" {
			return fmt.Errorf("%w: template %q topic %d is empty", ErrValidation, t.ID, i)
		}
	}
	return nil
}

// Apply creates one item per topic on consecutive days from start. Re-applying a
// template adds a second full set; the application record is a marker only.
func (s *templateService) Apply(ctx context.Context, projectID int64, templateID string, start time.Time) ([]*models.CalendarItem, error) {
	tpl, ok := s.catalog[templateID]
	if !ok {
		err := fmt.Errorf("%w: template %q", ErrNotFound, templateID)
		slog.Info(err.Error())
		return nil, err
	}
	if err := validateTemplate(tpl); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	project, err := s.pr.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		err = fmt.Errorf("%w: project %d", ErrNotFound, projectID)
		slog.Info(err.Error())
		return nil, err
	}

	expand := strings.NewReplacer("{niche}", project.Niche, "{audience}", project.Audience)
	contentType := tpl.ContentType
	if contentType == "" {
		contentType = tpl.Platform.DefaultContentType()
	}

	items := make([]*models.CalendarItem, 0, len(tpl.Topics))
	for i, topic := range tpl.Topics {
		items = append(items, &models.CalendarItem{
			ProjectID:   projectID,
			Date:        start.AddDate(0, 0, i).Format(models.DateLayout),
			Platform:    tpl.Platform,
			ContentType: contentType,
			Topic:       expand.Replace(topic),
		})
	}

	if err := s.cr.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("error saving template items: %w", err)
	}
	if err := s.tr.MarkApplied(ctx, projectID, templateID); err != nil {
		return nil, fmt.Errorf("error recording template application: %w", err)
	}

	slog.Info("template applied", "project_id", projectID, "template", templateID, "items", len(items))
	return items, nil
}

func (s *templateService) Applied(ctx context.Context, projectID int64) ([]*models.TemplateApplication, error) {
	return s.tr.GetByProjectID(ctx, projectID)
}
