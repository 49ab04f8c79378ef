package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type TemplateApplicationRepository interface {
	MarkApplied(ctx context.Context, projectID int64, templateID string) error
	GetByProjectID(ctx context.Context, projectID int64) ([]*models.TemplateApplication, error)
}

type templateApplicationRepository struct {
	db *sql.DB
}

func NewTemplateApplicationRepository(db *sql.DB) TemplateApplicationRepository {
	return &templateApplicationRepository{db: db}
}

// MarkApplied records the latest application of a template. The row is a marker only;
// it does not prevent the template from being applied again.
func (r *templateApplicationRepository) MarkApplied(ctx context.Context, projectID int64, templateID string) error {
	query := `
		INSERT INTO template_applications (project_id, template_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, template_id) DO UPDATE SET applied_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, projectID, templateID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *templateApplicationRepository) GetByProjectID(ctx context.Context, projectID int64) ([]*models.TemplateApplication, error) {
	query := `SELECT project_id, template_id, applied_at FROM template_applications WHERE project_id = $1 ORDER BY applied_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var apps []*models.TemplateApplication
	for rows.Next() {
		var a models.TemplateApplication
		if err := rows.Scan(&a.ProjectID, &a.TemplateID, &a.AppliedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		apps = append(apps, &a)
	}
	return apps, rows.Err()
}
