package generator

import "context"

// Context is the bundle sent with every generation call.
type Context struct {
	Niche        string
	Audience     string
	Tone         string
	Goals        string
	Topic        string
	Platform     string
	ContentType  string
	PreviousBody string // set only when regenerating
	Feedback     string // score feedback for a quality rewrite
	Keywords     []string
}

// Research is the market picture a calendar plan is built from.
type Research struct {
	Summary              string              `json:"summary"`
	Competitors          []string            `json:"competitors"`
	Trends               []string            `json:"trends"`
	KeywordClusters      map[string][]string `json:"keyword_clusters"`
	ContentOpportunities []string            `json:"content_opportunities"`
	Platforms            []string            `json:"platforms"`
}

// PlannedItem is one proposed calendar slot. Day is 1-based from the plan's start.
type PlannedItem struct {
	Day         int
	Platform    string
	ContentType string
	Topic       string
}

type Draft struct {
	Title            string
	Body             string
	SEOScore         int
	ReadabilityScore int
	BrandScore       int
}

type Repurposed struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

// Client is the external generation service. Implementations must be safe for concurrent use.
type Client interface {
	Write(ctx context.Context, gc Context) (Draft, error)
	Hashtags(ctx context.Context, gc Context, content string) ([]string, error)
	Repurpose(ctx context.Context, gc Context, targetPlatform, content string) (Repurposed, error)
	Research(ctx context.Context, gc Context) (Research, error)
	Plan(ctx context.Context, gc Context, research Research, days int) ([]PlannedItem, error)
}

// Settings configures a concrete client.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
