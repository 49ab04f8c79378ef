package repository

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	niche      TEXT NOT NULL,
	audience   TEXT NOT NULL,
	tone       TEXT NOT NULL,
	goals      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS calendar_items (
	id           BIGSERIAL PRIMARY KEY,
	project_id   BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	date         TEXT NOT NULL,
	platform     TEXT NOT NULL,
	content_type TEXT NOT NULL,
	topic        TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_calendar_items_project ON calendar_items(project_id, date);

CREATE TABLE IF NOT EXISTS content_versions (
	id                BIGSERIAL PRIMARY KEY,
	calendar_id       BIGINT NOT NULL REFERENCES calendar_items(id) ON DELETE CASCADE,
	version_number    INTEGER NOT NULL,
	title             TEXT NOT NULL DEFAULT '',
	body              TEXT NOT NULL DEFAULT '',
	seo_score         INTEGER NOT NULL DEFAULT 0,
	readability_score INTEGER NOT NULL DEFAULT 0,
	brand_score       INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (calendar_id, version_number)
);

CREATE TABLE IF NOT EXISTS template_applications (
	project_id  BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	template_id TEXT NOT NULL,
	applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (project_id, template_id)
);

CREATE TABLE IF NOT EXISTS research_reports (
	id                    BIGSERIAL PRIMARY KEY,
	project_id            BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	summary               TEXT NOT NULL,
	competitors           TEXT[] NOT NULL DEFAULT '{}',
	trends                TEXT[] NOT NULL DEFAULT '{}',
	keyword_clusters      JSONB NOT NULL DEFAULT '{}',
	content_opportunities TEXT[] NOT NULL DEFAULT '{}',
	platforms             TEXT[] NOT NULL DEFAULT '{}',
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_research_reports_project ON research_reports(project_id, id);
`

// Migrate creates the tables used by the repositories if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
