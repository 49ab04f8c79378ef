package models

import "time"

type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Platform    Platform `json:"platform"`
	ContentType string   `json:"content_type"`
	Topics      []string `json:"topics"`
}

type TemplateApplication struct {
	ProjectID  int64     `db:"project_id" json:"project_id"`
	TemplateID string    `db:"template_id" json:"template_id"`
	AppliedAt  time.Time `db:"applied_at" json:"applied_at"`
}
