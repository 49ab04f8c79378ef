package generator

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// MockClient produces deterministic content without calling a model, for local runs.
type MockClient struct{}

func score(seed string, base, spread uint32) int {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return int(base + h.Sum32()%spread)
}

func (MockClient) Write(_ context.Context, gc Context) (Draft, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", gc.Topic))
	sb.WriteString(fmt.Sprintf("A %s take for %s on %s.\n\n", strings.ToLower(gc.Tone), gc.Audience, gc.Niche))
	sb.WriteString("## Key points\n\n")
	sb.WriteString(fmt.Sprintf("- Why %s matters right now\n", gc.Topic))
	sb.WriteString("- What to try this week\n")
	sb.WriteString("- Where to learn more\n")
	if gc.PreviousBody != "" {
		sb.WriteString("\n_Revised draft._\n")
	}

	seed := gc.Topic + gc.PreviousBody + gc.Feedback
	return Draft{
		Title:            gc.Topic,
		Body:             sb.String(),
		SEOScore:         score("seo"+seed, 55, 40),
		ReadabilityScore: score("read"+seed, 50, 45),
		BrandScore:       85,
	}, nil
}

func (MockClient) Hashtags(_ context.Context, gc Context, _ string) ([]string, error) {
	tags := []string{gc.Niche, gc.Platform, "ContentMarketing"}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ReplaceAll(strings.TrimSpace(t), " ", "")
		if t == "" {
			continue
		}
		out = append(out, "#"+t)
	}
	return out, nil
}

func (MockClient) Repurpose(_ context.Context, _ Context, targetPlatform, content string) (Repurposed, error) {
	return Repurposed{
		Platform: targetPlatform,
		Content:  fmt.Sprintf("[%s] %s", targetPlatform, strings.TrimSpace(content)),
	}, nil
}

func (MockClient) Research(_ context.Context, gc Context) (Research, error) {
	compact := strings.ReplaceAll(gc.Niche, " ", "")
	return Research{
		Summary:     fmt.Sprintf("Demand for %s is growing among %s, with room for brands that teach before they sell.", gc.Niche, gc.Audience),
		Competitors: []string{gc.Niche + " incumbent", gc.Niche + " startup", gc.Niche + " marketplace"},
		Trends: []string{
			"Short-form video driving discovery",
			"Community-led brands",
			fmt.Sprintf("Personalised %s experiences", gc.Niche),
		},
		KeywordClusters: map[string][]string{
			"primary":   {gc.Niche + " online", "best " + gc.Niche},
			"secondary": {gc.Niche + " for " + gc.Audience, gc.Niche + " reviews"},
			"trending":  {"#" + compact},
		},
		ContentOpportunities: []string{"Behind-the-scenes stories", "Beginner education"},
		Platforms:            []string{"Instagram", "LinkedIn", "Blog"},
	}, nil
}

// mockRotation never repeats a platform on consecutive days.
var mockRotation = []struct{ platform, contentType, topic string }{
	{"Instagram", "Carousel", "5 things every {audience} should know about {niche}"},
	{"LinkedIn", "Article", "How {niche} is changing this year"},
	{"Twitter", "Thread", "The beginner's guide to {niche}"},
	{"Instagram", "Reel", "Behind the scenes of a {niche} brand"},
	{"Blog", "How-To", "Getting started with {niche}, step by step"},
	{"LinkedIn", "Post", "3 myths about {niche} holding {audience} back"},
	{"Instagram", "Story", "Poll: your biggest {niche} challenge"},
	{"Twitter", "Thread", "Case study: a {niche} turnaround"},
	{"Instagram", "Carousel", "Before and after: {niche} stories"},
	{"Blog", "Listicle", "Top 10 {niche} trends to watch"},
	{"LinkedIn", "Post", "Why {audience} choose quality in {niche}"},
	{"Instagram", "Reel", "60-second {niche} hacks"},
	{"Twitter", "Poll", "What should we cover next?"},
	{"Blog", "Article", "The complete {niche} playbook for {audience}"},
}

func (MockClient) Plan(_ context.Context, gc Context, _ Research, days int) ([]PlannedItem, error) {
	expand := strings.NewReplacer("{niche}", gc.Niche, "{audience}", gc.Audience)
	out := make([]PlannedItem, 0, days)
	for i := 0; i < days; i++ {
		slot := mockRotation[i%len(mockRotation)]
		out = append(out, PlannedItem{
			Day:         i + 1,
			Platform:    slot.platform,
			ContentType: slot.contentType,
			Topic:       expand.Replace(slot.topic),
		})
	}
	return out, nil
}

// New returns the client selected by s.Provider.
func New(s *Settings) (Client, error) {
	switch s.Provider {
	case "openai":
		return NewOpenAIClient(s)
	case "mock", "":
		return MockClient{}, nil
	}
	return nil, fmt.Errorf("unknown generator provider %q", s.Provider)
}
