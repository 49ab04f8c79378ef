package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/contentflow/internal/models"
)

type ResearchRepository interface {
	Create(ctx context.Context, report *models.ResearchReport) (int64, error)
	GetLatest(ctx context.Context, projectID int64) (*models.ResearchReport, error)
}

type researchRepository struct {
	db *sql.DB
}

func NewResearchRepository(db *sql.DB) ResearchRepository {
	return &researchRepository{db: db}
}

func (r *researchRepository) Create(ctx context.Context, report *models.ResearchReport) (int64, error) {
	clusters, err := json.Marshal(report.KeywordClusters)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO research_reports (project_id, summary, competitors, trends, keyword_clusters, content_opportunities, platforms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		report.ProjectID,
		report.Summary,
		pq.Array(report.Competitors),
		pq.Array(report.Trends),
		clusters,
		pq.Array(report.ContentOpportunities),
		pq.Array(report.Platforms),
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return report.ID, nil
}

// GetLatest returns the most recent report for a project, or nil when there is none.
func (r *researchRepository) GetLatest(ctx context.Context, projectID int64) (*models.ResearchReport, error) {
	query := `
		SELECT id, project_id, summary, competitors, trends, keyword_clusters, content_opportunities, platforms, created_at
		FROM research_reports WHERE project_id = $1 ORDER BY id DESC LIMIT 1
	`
	var report models.ResearchReport
	var clusters []byte
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&report.ID,
		&report.ProjectID,
		&report.Summary,
		pq.Array(&report.Competitors),
		pq.Array(&report.Trends),
		&clusters,
		pq.Array(&report.ContentOpportunities),
		pq.Array(&report.Platforms),
		&report.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if err := json.Unmarshal(clusters, &report.KeywordClusters); err != nil {
		return nil, err
	}
	return &report, nil
}
