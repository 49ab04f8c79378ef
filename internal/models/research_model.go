package models

import "time"

// ResearchReport is the market research a project's generated calendar was planned from.
type ResearchReport struct {
	ID                   int64               `db:"id" json:"id"`
	ProjectID            int64               `db:"project_id" json:"project_id"`
	Summary              string              `db:"summary" json:"summary"`
	Competitors          []string            `db:"competitors" json:"competitors"`
	Trends               []string            `db:"trends" json:"trends"`
	KeywordClusters      map[string][]string `db:"keyword_clusters" json:"keyword_clusters"`
	ContentOpportunities []string            `db:"content_opportunities" json:"content_opportunities"`
	Platforms            []string            `db:"platforms" json:"platforms"`
	CreatedAt            time.Time           `db:"created_at" json:"created_at"`
}
