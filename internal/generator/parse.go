package generator

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrMalformedResponse = errors.New("generator: malformed response")

// cleanJSON strips the markdown fences models like to wrap JSON in.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseObject(raw string) (gjson.Result, error) {
	s := cleanJSON(raw)
	if !gjson.Valid(s) {
		return gjson.Result{}, ErrMalformedResponse
	}
	res := gjson.Parse(s)
	if !res.IsObject() {
		return gjson.Result{}, ErrMalformedResponse
	}
	return res, nil
}

func ParseDraft(raw string) (Draft, error) {
	res, err := parseObject(raw)
	if err != nil {
		return Draft{}, err
	}
	body := strings.TrimSpace(res.Get("body").String())
	if body == "" {
		return Draft{}, errors.New("generator: response has empty body")
	}
	return Draft{
		Title:            strings.TrimSpace(res.Get("title").String()),
		Body:             body,
		SEOScore:         int(res.Get("seo_score").Int()),
		ReadabilityScore: int(res.Get("readability_score").Int()),
		BrandScore:       int(res.Get("brand_score").Int()),
	}, nil
}

func ParseHashtags(raw string) ([]string, error) {
	res, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	tags := res.Get("hashtags")
	if !tags.IsArray() {
		return nil, ErrMalformedResponse
	}
	var out []string
	for _, t := range tags.Array() {
		tag := strings.TrimSpace(t.String())
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		out = append(out, tag)
	}
	return out, nil
}

func ParseRepurposed(raw, targetPlatform string) (Repurposed, error) {
	res, err := parseObject(raw)
	if err != nil {
		return Repurposed{}, err
	}
	content := strings.TrimSpace(res.Get("content").String())
	if content == "" {
		return Repurposed{}, errors.New("generator: response has empty content")
	}
	platform := res.Get("platform").String()
	if platform == "" {
		platform = targetPlatform
	}
	return Repurposed{Platform: platform, Content: content}, nil
}

func stringList(res gjson.Result) []string {
	var out []string
	for _, v := range res.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func ParseResearch(raw string) (Research, error) {
	res, err := parseObject(raw)
	if err != nil {
		return Research{}, err
	}
	r := Research{
		Summary:              strings.TrimSpace(res.Get("summary").String()),
		Competitors:          stringList(res.Get("competitors")),
		Trends:               stringList(res.Get("trends")),
		ContentOpportunities: stringList(res.Get("content_opportunities")),
		Platforms:            stringList(res.Get("platforms")),
		KeywordClusters:      make(map[string][]string),
	}
	if r.Summary == "" {
		return Research{}, errors.New("generator: research has empty summary")
	}
	res.Get("keyword_clusters").ForEach(func(key, value gjson.Result) bool {
		r.KeywordClusters[key.String()] = stringList(value)
		return true
	})
	return r, nil
}

// ParsePlan accepts {"items": [...]} or a bare array. Entries without a topic are skipped;
// a missing day falls back to the entry's position.
func ParsePlan(raw string) ([]PlannedItem, error) {
	s := cleanJSON(raw)
	if !gjson.Valid(s) {
		return nil, ErrMalformedResponse
	}
	res := gjson.Parse(s)
	if res.IsObject() {
		res = res.Get("items")
	}
	if !res.IsArray() {
		return nil, ErrMalformedResponse
	}

	var out []PlannedItem
	for i, e := range res.Array() {
		topic := strings.TrimSpace(e.Get("topic").String())
		if topic == "" {
			continue
		}
		day := int(e.Get("day").Int())
		if day <= 0 {
			day = i + 1
		}
		out = append(out, PlannedItem{
			Day:         day,
			Platform:    strings.TrimSpace(e.Get("platform").String()),
			ContentType: strings.TrimSpace(e.Get("content_type").String()),
			Topic:       topic,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("generator: plan has no items")
	}
	return out, nil
}
