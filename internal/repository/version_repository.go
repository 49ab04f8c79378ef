package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
	"github.com/maheshrc27/contentflow/internal/models"
)

// ErrDuplicateVersion is returned when another writer already took the version number.
var ErrDuplicateVersion = errors.New("version number already exists")

type VersionRepository interface {
	GetByCalendarID(ctx context.Context, calendarID int64) ([]*models.ContentVersion, error)
	GetLatest(ctx context.Context, calendarID int64) (*models.ContentVersion, error)
	Create(ctx context.Context, v *models.ContentVersion) (int64, error)
}

type versionRepository struct {
	db *sql.DB
}

func NewVersionRepository(db *sql.DB) VersionRepository {
	return &versionRepository{db: db}
}

const versionColumns = `id, calendar_id, version_number, title, body, seo_score, readability_score, brand_score, created_at`

func scanVersion(row interface{ Scan(...any) error }, v *models.ContentVersion) error {
	return row.Scan(&v.ID, &v.CalendarID, &v.VersionNumber, &v.Title, &v.Body, &v.SEOScore, &v.ReadabilityScore, &v.BrandScore, &v.CreatedAt)
}

func (r *versionRepository) GetByCalendarID(ctx context.Context, calendarID int64) ([]*models.ContentVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM content_versions WHERE calendar_id = $1 ORDER BY version_number ASC`
	rows, err := r.db.QueryContext(ctx, query, calendarID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var versions []*models.ContentVersion
	for rows.Next() {
		var v models.ContentVersion
		if err := scanVersion(rows, &v); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		versions = append(versions, &v)
	}
	return versions, rows.Err()
}

func (r *versionRepository) GetLatest(ctx context.Context, calendarID int64) (*models.ContentVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM content_versions WHERE calendar_id = $1 ORDER BY version_number DESC LIMIT 1`

	var v models.ContentVersion
	err := scanVersion(r.db.QueryRowContext(ctx, query, calendarID), &v)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &v, nil
}

func (r *versionRepository) Create(ctx context.Context, v *models.ContentVersion) (int64, error) {
	query := `
		INSERT INTO content_versions (calendar_id, version_number, title, body, seo_score, readability_score, brand_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, v.CalendarID, v.VersionNumber, v.Title, v.Body, v.SEOScore, v.ReadabilityScore, v.BrandScore).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateVersion
		}
		slog.Info(err.Error())
		return 0, err
	}

	return v.ID, nil
}
