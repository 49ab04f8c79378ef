package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/maheshrc27/contentflow/internal/generator"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
)

type memProjects struct {
	mu       sync.Mutex
	counter  int64
	projects map[int64]*models.Project
}

func newMemProjects(projects ...*models.Project) *memProjects {
	m := &memProjects{projects: make(map[int64]*models.Project)}
	for _, p := range projects {
		m.Create(context.Background(), p)
	}
	return m
}

func (m *memProjects) Create(_ context.Context, p *models.Project) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	cp := *p
	cp.ID = m.counter
	p.ID = cp.ID
	m.projects[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memProjects) GetByID(_ context.Context, id int64) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) CheckByUserID(_ context.Context, projectID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	return ok && p.UserID == userID, nil
}

type memCalendar struct {
	mu       sync.Mutex
	counter  int64
	items    []*models.CalendarItem
	versions *memVersions
	failNext error
}

func newMemCalendar(versions *memVersions) *memCalendar {
	return &memCalendar{versions: versions}
}

func (m *memCalendar) GetByID(_ context.Context, id int64) (*models.CalendarItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCalendar) GetByProjectID(_ context.Context, projectID int64) ([]*models.CalendarItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CalendarItem
	for _, it := range m.items {
		if it.ProjectID == projectID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memCalendar) CreateBatch(_ context.Context, items []*models.CalendarItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, it := range items {
		m.counter++
		it.ID = m.counter
		it.CreatedAt = time.Now()
		cp := *it
		m.items = append(m.items, &cp)
	}
	return nil
}

func (m *memCalendar) ListWithoutVersions(ctx context.Context, fromDate, toDate string) ([]*models.CalendarItem, error) {
	m.mu.Lock()
	var out []*models.CalendarItem
	for _, it := range m.items {
		if it.Date >= fromDate && it.Date <= toDate {
			cp := *it
			out = append(out, &cp)
		}
	}
	m.mu.Unlock()

	var filtered []*models.CalendarItem
	for _, it := range out {
		if v, _ := m.versions.GetLatest(ctx, it.ID); v == nil {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// add inserts an item directly and returns its id.
func (m *memCalendar) add(projectID int64, date string, platform models.Platform, topic string) int64 {
	item := &models.CalendarItem{ProjectID: projectID, Date: date, Platform: platform, ContentType: platform.DefaultContentType(), Topic: topic}
	m.CreateBatch(context.Background(), []*models.CalendarItem{item})
	return item.ID
}

type memVersions struct {
	mu       sync.Mutex
	counter  int64
	versions map[int64][]*models.ContentVersion
}

func newMemVersions() *memVersions {
	return &memVersions{versions: make(map[int64][]*models.ContentVersion)}
}

func (m *memVersions) GetByCalendarID(_ context.Context, calendarID int64) ([]*models.ContentVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ContentVersion
	for _, v := range m.versions[calendarID] {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out, nil
}

func (m *memVersions) GetLatest(ctx context.Context, calendarID int64) (*models.ContentVersion, error) {
	all, _ := m.GetByCalendarID(ctx, calendarID)
	if len(all) == 0 {
		return nil, nil
	}
	return all[len(all)-1], nil
}

func (m *memVersions) Create(_ context.Context, v *models.ContentVersion) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.versions[v.CalendarID] {
		if existing.VersionNumber == v.VersionNumber {
			return 0, repository.ErrDuplicateVersion
		}
	}
	m.counter++
	v.ID = m.counter
	v.CreatedAt = time.Now()
	cp := *v
	m.versions[v.CalendarID] = append(m.versions[v.CalendarID], &cp)
	return v.ID, nil
}

type memApplications struct {
	mu   sync.Mutex
	apps []*models.TemplateApplication
}

func (m *memApplications) MarkApplied(_ context.Context, projectID int64, templateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.ProjectID == projectID && a.TemplateID == templateID {
			a.AppliedAt = time.Now()
			return nil
		}
	}
	m.apps = append(m.apps, &models.TemplateApplication{ProjectID: projectID, TemplateID: templateID, AppliedAt: time.Now()})
	return nil
}

func (m *memApplications) GetByProjectID(_ context.Context, projectID int64) ([]*models.TemplateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.TemplateApplication
	for _, a := range m.apps {
		if a.ProjectID == projectID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeGen optionally blocks every call until gate is closed and reports entry on started.
type fakeGen struct {
	mu        sync.Mutex
	gate      chan struct{}
	started   chan struct{}
	err       error
	writes    int
	prevBody  []string
	feedback  []string
	keywords  []string
	lastTopic string
	// scores are handed out one per Write; once exhausted every draft scores 85.
	scores []int
	// failAt makes the nth Write (1-based) fail with errUpstreamDown.
	failAt int

	research    generator.Research
	plan        []generator.PlannedItem
	planErr     error
	planDays    int
	planStarted chan struct{}
	planGate    chan struct{}
}

func newFakeGen() *fakeGen {
	return &fakeGen{started: make(chan struct{}, 16)}
}

func (f *fakeGen) enter() error {
	f.started <- struct{}{}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeGen) Write(_ context.Context, gc generator.Context) (generator.Draft, error) {
	if err := f.enter(); err != nil {
		return generator.Draft{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writes == f.failAt {
		return generator.Draft{}, errUpstreamDown
	}
	f.prevBody = append(f.prevBody, gc.PreviousBody)
	f.feedback = append(f.feedback, gc.Feedback)
	f.keywords = gc.Keywords
	f.lastTopic = gc.Topic
	seo := 85
	if len(f.scores) > 0 {
		seo, f.scores = f.scores[0], f.scores[1:]
	}
	return generator.Draft{
		Title:            gc.Topic,
		Body:             fmt.Sprintf("body for %s (draft %d)", gc.Topic, f.writes),
		SEOScore:         seo,
		ReadabilityScore: 70,
		BrandScore:       85,
	}, nil
}

func (f *fakeGen) Research(_ context.Context, gc generator.Context) (generator.Research, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return generator.Research{}, f.err
	}
	r := f.research
	if r.Summary == "" {
		r.Summary = "market for " + gc.Niche
	}
	return r, nil
}

func (f *fakeGen) Plan(_ context.Context, _ generator.Context, _ generator.Research, days int) ([]generator.PlannedItem, error) {
	if f.planStarted != nil {
		f.planStarted <- struct{}{}
	}
	if f.planGate != nil {
		<-f.planGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planDays = days
	return f.plan, f.planErr
}

func (f *fakeGen) Hashtags(_ context.Context, gc generator.Context, content string) ([]string, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []string{"#" + gc.Niche, "#" + gc.Platform}, nil
}

func (f *fakeGen) Repurpose(_ context.Context, _ generator.Context, target, content string) (generator.Repurposed, error) {
	if err := f.enter(); err != nil {
		return generator.Repurposed{}, err
	}
	return generator.Repurposed{Platform: target, Content: target + ": " + content}, nil
}

type memResearch struct {
	mu      sync.Mutex
	counter int64
	reports []*models.ResearchReport
}

func (m *memResearch) Create(_ context.Context, r *models.ResearchReport) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	r.ID = m.counter
	r.CreatedAt = time.Now()
	cp := *r
	m.reports = append(m.reports, &cp)
	return r.ID, nil
}

func (m *memResearch) GetLatest(_ context.Context, projectID int64) (*models.ResearchReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.reports) - 1; i >= 0; i-- {
		if m.reports[i].ProjectID == projectID {
			cp := *m.reports[i]
			return &cp, nil
		}
	}
	return nil, nil
}

var errUpstreamDown = errors.New("provider unavailable")

type fakeUploader struct {
	key         string
	data        []byte
	contentType string
	err         error
}

func (f *fakeUploader) UploadToR2(_ context.Context, key string, file []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.key, f.data, f.contentType = key, file, contentType
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
