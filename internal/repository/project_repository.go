package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) (int64, error)
	CheckByUserID(ctx context.Context, projectID, userID int64) (bool, error)
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) (int64, error) {
	query := `
		INSERT INTO projects (user_id, niche, audience, tone, goals)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, project.UserID, project.Niche, project.Audience, project.Tone, project.Goals).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `SELECT id, user_id, niche, audience, tone, goals, created_at FROM projects WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var p models.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Niche, &p.Audience, &p.Tone, &p.Goals, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}

func (r *projectRepository) CheckByUserID(ctx context.Context, projectID, userID int64) (bool, error) {
	query := "SELECT 1 FROM projects WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}
