package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/generator"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/service"
)

type stubProjects struct {
	service.ProjectService
	owner map[int64]int64 // project id -> user id
}

func (s *stubProjects) Get(_ context.Context, userID, projectID int64) (*models.Project, error) {
	if owner, ok := s.owner[projectID]; ok && owner == userID {
		return &models.Project{ID: projectID, UserID: userID}, nil
	}
	return nil, fmt.Errorf("%w: project %d", service.ErrNotFound, projectID)
}

type stubCalendar struct {
	service.CalendarService
	items map[int64]*models.CalendarItem
}

func (s *stubCalendar) GetItem(_ context.Context, itemID int64) (*models.CalendarItem, error) {
	if it, ok := s.items[itemID]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("%w: calendar item %d", service.ErrNotFound, itemID)
}

type stubGeneration struct {
	service.GenerationService
	err   error
	tags  []string
	state service.RequestState

	gotContent string
	gotOp      service.OpKind
	gotTarget  models.Platform
}

func (s *stubGeneration) Write(_ context.Context, itemID int64) (*models.ContentVersion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ContentVersion{ID: 1, CalendarID: itemID, VersionNumber: 1, Body: "# Hi", SEOScore: 82, ReadabilityScore: 65, BrandScore: 40}, nil
}

func (s *stubGeneration) Regenerate(ctx context.Context, itemID int64) (*models.ContentVersion, error) {
	return s.Write(ctx, itemID)
}

func (s *stubGeneration) GenerateHashtags(_ context.Context, _ int64, content string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotContent = content
	s.tags = []string{"#edtech", "#ai"}
	return s.tags, nil
}

func (s *stubGeneration) Hashtags(int64) ([]string, bool) {
	return s.tags, s.tags != nil
}

func (s *stubGeneration) Repurpose(_ context.Context, _ int64, target models.Platform, content string) (generator.Repurposed, error) {
	if s.err != nil {
		return generator.Repurposed{}, s.err
	}
	if _, err := models.ParsePlatform(string(target)); err != nil {
		return generator.Repurposed{}, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return generator.Repurposed{Platform: string(target), Content: string(target) + ": " + content}, nil
}

func (s *stubGeneration) Status(_ int64, op service.OpKind, target models.Platform) service.RequestState {
	s.gotOp, s.gotTarget = op, target
	if s.state == "" {
		return service.StateIdle
	}
	return s.state
}

type stubTemplates struct {
	service.TemplateService
	applied  []string
	gotStart time.Time
}

func (s *stubTemplates) List() []models.Template {
	return []models.Template{{ID: "launch", Name: "Product launch", Platform: models.PlatformLinkedIn, Topics: []string{"Teaser"}}}
}

func (s *stubTemplates) Apply(_ context.Context, projectID int64, templateID string, start time.Time) ([]*models.CalendarItem, error) {
	if templateID != "launch" {
		return nil, fmt.Errorf("%w: template %s", service.ErrNotFound, templateID)
	}
	s.gotStart = start
	s.applied = append(s.applied, templateID)
	return []*models.CalendarItem{{ID: 1, ProjectID: projectID, Date: start.Format(models.DateLayout), Platform: models.PlatformLinkedIn, Topic: "Teaser"}}, nil
}

func (s *stubTemplates) Applied(_ context.Context, projectID int64) ([]*models.TemplateApplication, error) {
	out := make([]*models.TemplateApplication, 0, len(s.applied))
	for _, id := range s.applied {
		out = append(out, &models.TemplateApplication{ProjectID: projectID, TemplateID: id})
	}
	return out, nil
}

type stubResearch struct {
	err      error
	report   *models.ResearchReport
	gotStart time.Time
}

func (s *stubResearch) Generate(_ context.Context, projectID int64, start time.Time) (*service.ResearchPlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotStart = start
	s.report = &models.ResearchReport{ID: 1, ProjectID: projectID, Summary: "Teachers want AI help."}
	items := []*models.CalendarItem{{ID: 1, ProjectID: projectID, Date: start.Format(models.DateLayout), Platform: models.PlatformBlog, Topic: "AI tutors"}}
	return &service.ResearchPlan{Report: s.report, Items: items}, nil
}

func (s *stubResearch) Latest(_ context.Context, projectID int64) (*models.ResearchReport, error) {
	if s.report == nil {
		return nil, fmt.Errorf("%w: no research for project %d", service.ErrNotFound, projectID)
	}
	return s.report, nil
}

type stubVersions struct {
	service.VersionService
}

func (s *stubVersions) Select(_ context.Context, itemID, versionID int64) (*models.ContentVersion, error) {
	if versionID != 1 {
		return nil, service.ErrNotFound
	}
	return &models.ContentVersion{ID: 1, CalendarID: itemID, VersionNumber: 1, Body: "# Hello\n\nworld"}, nil
}

type stubExports struct {
	service.ExportService
}

func (s *stubExports) Render(_ context.Context, projectID int64, format service.ExportFormat) (*service.Export, error) {
	return &service.Export{Format: format, Filename: fmt.Sprintf("content-calendar-%d.%s", projectID, format), Data: []byte("Day, Date\n")}, nil
}

type countingEnqueuer struct {
	ids []int64
}

func (e *countingEnqueuer) EnqueueGeneration(itemID int64) error {
	e.ids = append(e.ids, itemID)
	return nil
}

type testDeps struct {
	gen       *stubGeneration
	eq        *countingEnqueuer
	templates *stubTemplates
	research  *stubResearch
}

func newTestApp(gs *stubGeneration, eq *countingEnqueuer) *fiber.App {
	return newTestAppWith(testDeps{gen: gs, eq: eq})
}

func newTestAppWith(d testDeps) *fiber.App {
	if d.gen == nil {
		d.gen = &stubGeneration{}
	}
	if d.eq == nil {
		d.eq = &countingEnqueuer{}
	}
	if d.templates == nil {
		d.templates = &stubTemplates{}
	}
	if d.research == nil {
		d.research = &stubResearch{}
	}
	a := NewAccess(
		&stubProjects{owner: map[int64]int64{10: 1, 20: 2}},
		&stubCalendar{items: map[int64]*models.CalendarItem{
			100: {ID: 100, ProjectID: 10, Date: "2026-10-15", Platform: models.PlatformBlog},
			200: {ID: 200, ProjectID: 20, Date: "2026-10-15", Platform: models.PlatformBlog},
		}},
	)
	hs := &Handlers{
		Project:    NewProjectHandler(nil, nil, a),
		Template:   NewTemplateHandler(d.templates, a),
		Generation: NewGenerationHandler(d.gen, d.eq, a),
		Version:    NewVersionHandler(&stubVersions{}, a),
		Export:     NewExportHandler(&stubExports{}, a),
		Research:   NewResearchHandler(d.research, a),
	}

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		return c.Next()
	})
	hs.Register(api)
	return app
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"created", "/api/items/100/generate", nil, fiber.StatusCreated},
		{"busy", "/api/items/100/generate", service.ErrBusy, fiber.StatusConflict},
		{"upstream", "/api/items/100/generate", fmt.Errorf("%w: timeout", service.ErrUpstream), fiber.StatusBadGateway},
		{"other user's item", "/api/items/200/generate", nil, fiber.StatusNotFound},
		{"unknown item", "/api/items/999/generate", nil, fiber.StatusNotFound},
		{"bad id", "/api/items/abc/generate", nil, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubGeneration{err: tt.err}, &countingEnqueuer{})
			resp, err := app.Test(httptest.NewRequest("POST", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestBusyMapsToConflict(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"generate", httptest.NewRequest("POST", "/api/items/100/generate", nil)},
		{"regenerate", httptest.NewRequest("POST", "/api/items/100/regenerate", nil)},
		{"hashtags", jsonRequest("POST", "/api/items/100/hashtags", `{"content":"post"}`)},
		{"repurpose", jsonRequest("POST", "/api/items/100/repurpose", `{"platform":"Twitter","content":"post"}`)},
		{"research", httptest.NewRequest("POST", "/api/projects/10/research", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busy := fmt.Errorf("%w: item 100", service.ErrBusy)
			app := newTestAppWith(testDeps{gen: &stubGeneration{err: busy}, research: &stubResearch{err: busy}})
			resp, err := app.Test(tt.req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != fiber.StatusConflict {
				t.Fatalf("status = %d, want 409", resp.StatusCode)
			}
		})
	}
}

func TestGenerateReturnsBands(t *testing.T) {
	app := newTestApp(&stubGeneration{}, &countingEnqueuer{})
	resp, _ := app.Test(httptest.NewRequest("POST", "/api/items/100/generate", nil))

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["seo_band"] != "high" || body["readability_band"] != "medium" || body["brand_band"] != "low" {
		t.Fatalf("bands = %v %v %v", body["seo_band"], body["readability_band"], body["brand_band"])
	}
	if body["publish_ready"] != true {
		t.Fatalf("publish_ready = %v", body["publish_ready"])
	}
}

func TestGenerateAsyncEnqueues(t *testing.T) {
	eq := &countingEnqueuer{}
	app := newTestApp(&stubGeneration{err: errors.New("should not run")}, eq)
	resp, _ := app.Test(httptest.NewRequest("POST", "/api/items/100/generate?async=true", nil))
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	if len(eq.ids) != 1 || eq.ids[0] != 100 {
		t.Fatalf("enqueued = %v", eq.ids)
	}
}

func TestPreviewVersion(t *testing.T) {
	app := newTestApp(&stubGeneration{}, &countingEnqueuer{})
	resp, _ := app.Test(httptest.NewRequest("GET", "/api/items/100/versions/1/preview", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<h1>Hello</h1>") {
		t.Fatalf("preview = %s", body)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/items/100/versions/2/preview", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown version status = %d", resp.StatusCode)
	}
}

func TestExportCSVDownload(t *testing.T) {
	app := newTestApp(&stubGeneration{}, &countingEnqueuer{})
	resp, _ := app.Test(httptest.NewRequest("GET", "/api/projects/10/export.csv", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "content-calendar-10.csv") {
		t.Fatalf("Content-Disposition = %s", got)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("Content-Type = %s", got)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/projects/20/export.csv", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("other user's export status = %d", resp.StatusCode)
	}
}

func TestTemplateRoutes(t *testing.T) {
	templates := &stubTemplates{}
	app := newTestAppWith(testDeps{templates: templates})

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/templates", nil))
	var list []models.Template
	decodeBody(t, resp, &list)
	if resp.StatusCode != fiber.StatusOK || len(list) != 1 || list[0].ID != "launch" {
		t.Fatalf("list templates = %d %+v", resp.StatusCode, list)
	}

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"bad start date", "/api/projects/10/templates/launch", `{"start_date":"11/01/2026"}`, fiber.StatusBadRequest},
		{"unknown template", "/api/projects/10/templates/nope", "", fiber.StatusNotFound},
		{"other user's project", "/api/projects/20/templates/launch", "", fiber.StatusNotFound},
		{"applied", "/api/projects/10/templates/launch", `{"start_date":"2026-11-01"}`, fiber.StatusCreated},
	}
	for _, tt := range tests {
		resp, err := app.Test(jsonRequest("POST", tt.path, tt.body))
		if err != nil {
			t.Fatalf("%s: app.Test() error = %v", tt.name, err)
		}
		if resp.StatusCode != tt.want {
			t.Fatalf("%s: status = %d, want %d", tt.name, resp.StatusCode, tt.want)
		}
	}
	if got := templates.gotStart.Format(models.DateLayout); got != "2026-11-01" {
		t.Fatalf("template started on %s, want 2026-11-01", got)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/projects/10/templates", nil))
	var applied struct {
		Templates []string `json:"templates"`
	}
	decodeBody(t, resp, &applied)
	if len(applied.Templates) != 1 || applied.Templates[0] != "launch" {
		t.Fatalf("applied templates = %v", applied.Templates)
	}
}

func TestHashtagRoutes(t *testing.T) {
	gen := &stubGeneration{state: service.StatePending}
	app := newTestAppWith(testDeps{gen: gen})

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/items/100/hashtags", nil))
	var before struct {
		Hashtags []string             `json:"hashtags"`
		Status   service.RequestState `json:"status"`
	}
	decodeBody(t, resp, &before)
	if before.Hashtags == nil || len(before.Hashtags) != 0 || before.Status != service.StatePending {
		t.Fatalf("hashtags before generation = %+v", before)
	}
	if gen.gotOp != service.OpHashtags {
		t.Fatalf("status asked for op %q", gen.gotOp)
	}

	resp, _ = app.Test(jsonRequest("POST", "/api/items/100/hashtags", `{"content":"edited post"}`))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("generate hashtags status = %d", resp.StatusCode)
	}
	if gen.gotContent != "edited post" {
		t.Fatalf("content passed = %q", gen.gotContent)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/items/100/hashtags", nil))
	var after struct {
		Hashtags []string `json:"hashtags"`
	}
	decodeBody(t, resp, &after)
	if strings.Join(after.Hashtags, " ") != "#edtech #ai" {
		t.Fatalf("hashtags after generation = %v", after.Hashtags)
	}

	resp, _ = app.Test(jsonRequest("POST", "/api/items/100/hashtags", `{"content":`))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("malformed body status = %d", resp.StatusCode)
	}
}

func TestRepurpose(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"ok", `{"platform":"Twitter","content":"long post"}`, nil, fiber.StatusOK},
		{"unknown platform", `{"platform":"Fax","content":"long post"}`, nil, fiber.StatusBadRequest},
		{"malformed body", `{"platform":`, nil, fiber.StatusBadRequest},
		{"upstream", `{"platform":"Twitter","content":"x"}`, fmt.Errorf("%w: timeout", service.ErrUpstream), fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestAppWith(testDeps{gen: &stubGeneration{err: tt.err}})
			resp, err := app.Test(jsonRequest("POST", "/api/items/100/repurpose", tt.body))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if tt.want != fiber.StatusOK {
				return
			}
			var out generator.Repurposed
			decodeBody(t, resp, &out)
			if out.Platform != "Twitter" || out.Content != "Twitter: long post" {
				t.Fatalf("repurposed = %+v", out)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	gen := &stubGeneration{}
	app := newTestAppWith(testDeps{gen: gen})

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/items/100/status", nil))
	var body struct {
		Op     service.OpKind       `json:"op"`
		Status service.RequestState `json:"status"`
	}
	decodeBody(t, resp, &body)
	if body.Op != service.OpWrite || body.Status != service.StateIdle {
		t.Fatalf("default status = %+v", body)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/items/100/status?op=repurpose&target=Twitter", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("repurpose status = %d", resp.StatusCode)
	}
	if gen.gotOp != service.OpRepurpose || gen.gotTarget != models.PlatformTwitter {
		t.Fatalf("status asked for %q/%q", gen.gotOp, gen.gotTarget)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/items/100/status?op=publish", nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("unknown op status = %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/items/200/status", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("other user's item status = %d", resp.StatusCode)
	}
}

func TestResearchRoutes(t *testing.T) {
	research := &stubResearch{}
	app := newTestAppWith(testDeps{research: research})

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/projects/10/research", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("latest before any research status = %d", resp.StatusCode)
	}

	resp, _ = app.Test(jsonRequest("POST", "/api/projects/10/research", `{"start_date":"2026-11-02"}`))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("start research status = %d", resp.StatusCode)
	}
	var plan service.ResearchPlan
	decodeBody(t, resp, &plan)
	if len(plan.Items) != 1 || plan.Items[0].Date != "2026-11-02" {
		t.Fatalf("plan = %+v", plan)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/projects/10/research", nil))
	var report models.ResearchReport
	decodeBody(t, resp, &report)
	if resp.StatusCode != fiber.StatusOK || report.Summary != "Teachers want AI help." {
		t.Fatalf("latest research = %d %+v", resp.StatusCode, report)
	}

	for path, want := range map[string]int{
		"/api/projects/20/research": fiber.StatusNotFound,
		"/api/projects/x/research":  fiber.StatusBadRequest,
	} {
		resp, _ = app.Test(httptest.NewRequest("POST", path, nil))
		if resp.StatusCode != want {
			t.Errorf("POST %s status = %d, want %d", path, resp.StatusCode, want)
		}
	}

	resp, _ = app.Test(jsonRequest("POST", "/api/projects/10/research", `{"start_date":"soon"}`))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad start date status = %d", resp.StatusCode)
	}

	failing := newTestAppWith(testDeps{research: &stubResearch{err: fmt.Errorf("%w: timeout", service.ErrUpstream)}})
	resp, _ = failing.Test(httptest.NewRequest("POST", "/api/projects/10/research", nil))
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("upstream failure status = %d", resp.StatusCode)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", service.ErrNotFound), fiber.StatusNotFound},
		{fmt.Errorf("%w: x", service.ErrBusy), fiber.StatusConflict},
		{fmt.Errorf("%w: x", service.ErrValidation), fiber.StatusBadRequest},
		{fmt.Errorf("%w: x", service.ErrUpstream), fiber.StatusBadGateway},
		{fiber.NewError(fiber.StatusBadRequest, "bad"), fiber.StatusBadRequest},
		{context.DeadlineExceeded, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := ErrorStatus(tt.err); got != tt.want {
			t.Errorf("ErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

