package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/contentflow/internal/generator"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
)

// PlanDays is the length of a research-derived calendar.
const PlanDays = 14

type ResearchPlan struct {
	Report  *models.ResearchReport `json:"report"`
	Items   []*models.CalendarItem `json:"items"`
	Skipped int                    `json:"skipped"`
}

type ResearchService interface {
	Generate(ctx context.Context, projectID int64, start time.Time) (*ResearchPlan, error)
	Latest(ctx context.Context, projectID int64) (*models.ResearchReport, error)
}

type researchService struct {
	gen generator.Client
	pr  repository.ProjectRepository
	cr  repository.CalendarRepository
	rr  repository.ResearchRepository

	mu      sync.Mutex
	running map[int64]struct{}
}

func NewResearchService(
	gen generator.Client,
	pr repository.ProjectRepository,
	cr repository.CalendarRepository,
	rr repository.ResearchRepository) ResearchService {
	return &researchService{
		gen:     gen,
		pr:      pr,
		cr:      cr,
		rr:      rr,
		running: make(map[int64]struct{}),
	}
}

func (s *researchService) acquire(projectID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.running[projectID]; busy {
		err := fmt.Errorf("%w: research for project %d", ErrBusy, projectID)
		slog.Info(err.Error())
		return err
	}
	s.running[projectID] = struct{}{}
	return nil
}

func (s *researchService) release(projectID int64) {
	s.mu.Lock()
	delete(s.running, projectID)
	s.mu.Unlock()
}

// Generate researches the project's market, stores the report and inserts a
// PlanDays calendar starting at start. One run per project at a time.
func (s *researchService) Generate(ctx context.Context, projectID int64, start time.Time) (*ResearchPlan, error) {
	project, err := s.pr.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		err = fmt.Errorf("%w: project %d", ErrNotFound, projectID)
		slog.Info(err.Error())
		return nil, err
	}

	if err := s.acquire(projectID); err != nil {
		return nil, err
	}
	defer s.release(projectID)

	ctx = context.WithoutCancel(ctx)
	gc := generator.Context{
		Niche:    project.Niche,
		Audience: project.Audience,
		Tone:     string(project.Tone),
		Goals:    project.Goals,
	}

	research, err := s.gen.Research(ctx, gc)
	if err != nil {
		slog.Error("market research failed", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	planned, err := s.gen.Plan(ctx, gc, research, PlanDays)
	if err != nil {
		slog.Error("calendar planning failed", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	items, skipped := plannedItems(projectID, start, planned)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: plan for project %d has no usable items", ErrUpstream, projectID)
	}

	report := &models.ResearchReport{
		ProjectID:            projectID,
		Summary:              research.Summary,
		Competitors:          research.Competitors,
		Trends:               research.Trends,
		KeywordClusters:      research.KeywordClusters,
		ContentOpportunities: research.ContentOpportunities,
		Platforms:            research.Platforms,
	}
	if _, err := s.rr.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("error saving research report: %w", err)
	}
	if err := s.cr.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("error saving planned items: %w", err)
	}

	slog.Info("research calendar created", "project_id", projectID, "report_id", report.ID, "items", len(items), "skipped", skipped)
	return &ResearchPlan{Report: report, Items: items, Skipped: skipped}, nil
}

// plannedItems keeps entries on a known platform within the plan window.
func plannedItems(projectID int64, start time.Time, planned []generator.PlannedItem) ([]*models.CalendarItem, int) {
	items := make([]*models.CalendarItem, 0, len(planned))
	skipped := 0
	for _, p := range planned {
		platform, err := models.ParsePlatform(p.Platform)
		if err != nil || p.Day < 1 || p.Day > PlanDays {
			slog.Info("dropping planned item", "day", p.Day, "platform", p.Platform, "topic", p.Topic)
			skipped++
			continue
		}
		contentType := p.ContentType
		if contentType == "" {
			contentType = platform.DefaultContentType()
		}
		items = append(items, &models.CalendarItem{
			ProjectID:   projectID,
			Date:        start.AddDate(0, 0, p.Day-1).Format(models.DateLayout),
			Platform:    platform,
			ContentType: contentType,
			Topic:       p.Topic,
		})
	}
	return items, skipped
}

func (s *researchService) Latest(ctx context.Context, projectID int64) (*models.ResearchReport, error) {
	report, err := s.rr.GetLatest(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("%w: no research for project %d", ErrNotFound, projectID)
	}
	return report, nil
}
