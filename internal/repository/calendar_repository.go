package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/contentflow/internal/models"
)

type CalendarRepository interface {
	GetByID(ctx context.Context, id int64) (*models.CalendarItem, error)
	GetByProjectID(ctx context.Context, projectID int64) ([]*models.CalendarItem, error)
	CreateBatch(ctx context.Context, items []*models.CalendarItem) error
	ListWithoutVersions(ctx context.Context, fromDate, toDate string) ([]*models.CalendarItem, error)
}

type calendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

const calendarColumns = `id, project_id, date, platform, content_type, topic, created_at`

func (r *calendarRepository) GetByID(ctx context.Context, id int64) (*models.CalendarItem, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendar_items WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var item models.CalendarItem
	err := row.Scan(&item.ID, &item.ProjectID, &item.Date, &item.Platform, &item.ContentType, &item.Topic, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &item, nil
}

func (r *calendarRepository) GetByProjectID(ctx context.Context, projectID int64) ([]*models.CalendarItem, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendar_items WHERE project_id = $1 ORDER BY date, id`
	return r.list(ctx, query, projectID)
}

// ListWithoutVersions returns items dated within [fromDate, toDate] that have no content yet.
func (r *calendarRepository) ListWithoutVersions(ctx context.Context, fromDate, toDate string) ([]*models.CalendarItem, error) {
	query := `
		SELECT ` + calendarColumns + ` FROM calendar_items c
		WHERE c.date BETWEEN $1 AND $2
		AND NOT EXISTS (SELECT 1 FROM content_versions v WHERE v.calendar_id = c.id)
		ORDER BY c.date, c.id
	`
	return r.list(ctx, query, fromDate, toDate)
}

func (r *calendarRepository) list(ctx context.Context, query string, args ...any) ([]*models.CalendarItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.CalendarItem
	for rows.Next() {
		var item models.CalendarItem
		err := rows.Scan(&item.ID, &item.ProjectID, &item.Date, &item.Platform, &item.ContentType, &item.Topic, &item.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// CreateBatch inserts all items in one transaction and fills in their ids.
func (r *calendarRepository) CreateBatch(ctx context.Context, items []*models.CalendarItem) (err error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	query := `
		INSERT INTO calendar_items (project_id, date, platform, content_type, topic)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	for _, item := range items {
		err = tx.QueryRowContext(ctx, query, item.ProjectID, item.Date, item.Platform, item.ContentType, item.Topic).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
