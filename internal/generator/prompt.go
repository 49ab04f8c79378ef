package generator

import (
	"fmt"
	"strings"
)

type Prompt struct {
	System string
	User   string
}

const jsonOnly = "Always respond with valid JSON only, no markdown fences or explanation."

func brandBlock(gc Context) string {
	var sb strings.Builder
	sb.WriteString("BRAND:\n")
	sb.WriteString(fmt.Sprintf("- Niche: %s\n", gc.Niche))
	sb.WriteString(fmt.Sprintf("- Audience: %s\n", gc.Audience))
	sb.WriteString(fmt.Sprintf("- Tone: %s\n", gc.Tone))
	if gc.Goals != "" {
		sb.WriteString(fmt.Sprintf("- Goals: %s\n", gc.Goals))
	}
	return sb.String()
}

func BuildWritePrompt(gc Context) Prompt {
	var sb strings.Builder
	sb.WriteString(brandBlock(gc))
	sb.WriteString(fmt.Sprintf("\nWrite a %s %s about: %s\n", gc.Platform, gc.ContentType, gc.Topic))
	if gc.PreviousBody != "" {
		sb.WriteString("\nThis is a rewrite. Improve on the previous draft below; keep what works, fix what does not.\n")
		sb.WriteString("PREVIOUS DRAFT:\n")
		sb.WriteString(gc.PreviousBody)
		sb.WriteString("\n")
	}
	if len(gc.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nWork in these keywords where they fit naturally: %s\n", strings.Join(gc.Keywords, ", ")))
	}
	if gc.Feedback != "" {
		sb.WriteString("\nThe last draft did not pass review. Address this feedback:\n")
		sb.WriteString(gc.Feedback)
		sb.WriteString("\n")
	}
	sb.WriteString(`
Return a JSON object with:
- title: string
- body: the full post in markdown
- seo_score: integer 0-100
- readability_score: integer 0-100
- brand_score: integer 0-100, how well the post matches the brand tone`)

	return Prompt{
		System: "You are an expert content marketer writing platform-native posts. " + jsonOnly,
		User:   sb.String(),
	}
}

func BuildHashtagPrompt(gc Context, content string) Prompt {
	var sb strings.Builder
	sb.WriteString(brandBlock(gc))
	sb.WriteString(fmt.Sprintf("\nSuggest 8-12 hashtags for this %s post:\n", gc.Platform))
	sb.WriteString(content)
	sb.WriteString("\n\nReturn a JSON object with: hashtags: array of strings, each starting with #.")

	return Prompt{
		System: "You are a social media strategist. " + jsonOnly,
		User:   sb.String(),
	}
}

func BuildRepurposePrompt(gc Context, targetPlatform, content string) Prompt {
	var sb strings.Builder
	sb.WriteString(brandBlock(gc))
	sb.WriteString(fmt.Sprintf("\nRewrite the following %s content for %s. Follow the conventions of the target platform.\n", gc.Platform, targetPlatform))
	sb.WriteString("CONTENT:\n")
	sb.WriteString(content)
	sb.WriteString(fmt.Sprintf("\n\nReturn a JSON object with: platform: %q, content: string.", targetPlatform))

	return Prompt{
		System: "You are an expert content marketer adapting posts across platforms. " + jsonOnly,
		User:   sb.String(),
	}
}

func BuildResearchPrompt(gc Context) Prompt {
	var sb strings.Builder
	sb.WriteString(brandBlock(gc))
	sb.WriteString(`
Analyze the market for this brand. Name real competitors and current trends.

Return a JSON object with:
- summary: 2-3 sentence executive summary of the opportunity
- competitors: array of 5 competitor names
- trends: array of 5 specific trends
- keyword_clusters: object with arrays "primary", "secondary" and "trending"
- content_opportunities: array of 3 content gaps
- platforms: array of the top 3 platforms where the audience is active`)

	return Prompt{
		System: "You are a market research analyst for digital marketing teams. " + jsonOnly,
		User:   sb.String(),
	}
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func BuildPlanPrompt(gc Context, r Research, days int) Prompt {
	var sb strings.Builder
	sb.WriteString(brandBlock(gc))
	sb.WriteString("\nRESEARCH:\n")
	if r.Summary != "" {
		sb.WriteString(fmt.Sprintf("- Summary: %s\n", r.Summary))
	}
	if len(r.Trends) > 0 {
		sb.WriteString(fmt.Sprintf("- Trends: %s\n", strings.Join(firstN(r.Trends, 3), "; ")))
	}
	if kw := r.KeywordClusters["primary"]; len(kw) > 0 {
		sb.WriteString(fmt.Sprintf("- Keywords: %s\n", strings.Join(firstN(kw, 3), ", ")))
	}
	if len(r.ContentOpportunities) > 0 {
		sb.WriteString(fmt.Sprintf("- Opportunities: %s\n", strings.Join(firstN(r.ContentOpportunities, 2), "; ")))
	}
	sb.WriteString(fmt.Sprintf(`
Create a %d-day content calendar. Do not use the same platform two days in a row.
Topics must be specific to the niche, not generic.

Return a JSON object with "items": an array of exactly %d entries, each with:
- day: integer 1-%d
- platform: one of "Twitter", "LinkedIn", "Blog", "Instagram"
- content_type: suited to the platform (Carousel, Reel, Post, Article, Story, Thread, Poll)
- topic: string`, days, days, days))

	return Prompt{
		System: "You are a social media strategist who builds content calendars. " + jsonOnly,
		User:   sb.String(),
	}
}
