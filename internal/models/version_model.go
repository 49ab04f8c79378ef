package models

import "time"

// ContentVersion is immutable once stored. Regeneration creates a new row.
type ContentVersion struct {
	ID               int64     `db:"id" json:"id"`
	CalendarID       int64     `db:"calendar_id" json:"calendar_id"`
	VersionNumber    int       `db:"version_number" json:"version_number"`
	Title            string    `db:"title" json:"title"`
	Body             string    `db:"body" json:"body"`
	SEOScore         int       `db:"seo_score" json:"seo_score"`
	ReadabilityScore int       `db:"readability_score" json:"readability_score"`
	BrandScore       int       `db:"brand_score" json:"brand_score"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
