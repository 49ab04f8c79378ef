package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/maheshrc27/contentflow/internal/generator"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
)

// OpKind identifies a single-flight slot on an item. Write and regenerate share OpWrite.
type OpKind string

const (
	OpWrite     OpKind = "write"
	OpHashtags  OpKind = "hashtags"
	OpRepurpose OpKind = "repurpose"
)

// RequestState is what Status reports for a key. A finished request goes straight
// back to idle; its outcome is only logged.
type RequestState string

const (
	StateIdle    RequestState = "idle"
	StatePending RequestState = "pending"
)

const (
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

// maxRewrites bounds the quality loop after the first draft.
const maxRewrites = 3

type GenerationService interface {
	Write(ctx context.Context, itemID int64) (*models.ContentVersion, error)
	Regenerate(ctx context.Context, itemID int64) (*models.ContentVersion, error)
	GenerateHashtags(ctx context.Context, itemID int64, content string) ([]string, error)
	Repurpose(ctx context.Context, itemID int64, target models.Platform, content string) (generator.Repurposed, error)
	Hashtags(itemID int64) ([]string, bool)
	Repurposed(itemID int64, target models.Platform) (generator.Repurposed, bool)
	Status(itemID int64, op OpKind, target models.Platform) RequestState
}

// requestKey is (item, op) with target set only for repurpose.
type requestKey struct {
	itemID int64
	op     OpKind
	target models.Platform
}

type generationService struct {
	gen generator.Client
	vs  VersionService
	cr  repository.CalendarRepository
	pr  repository.ProjectRepository
	rr  repository.ResearchRepository

	mu         sync.Mutex
	pending    map[requestKey]struct{}
	hashtags   map[int64][]string
	repurposed map[requestKey]generator.Repurposed
}

func NewGenerationService(
	gen generator.Client,
	vs VersionService,
	cr repository.CalendarRepository,
	pr repository.ProjectRepository,
	rr repository.ResearchRepository) GenerationService {
	return &generationService{
		gen:        gen,
		vs:         vs,
		cr:         cr,
		pr:         pr,
		rr:         rr,
		pending:    make(map[requestKey]struct{}),
		hashtags:   make(map[int64][]string),
		repurposed: make(map[requestKey]generator.Repurposed),
	}
}

// acquire is the only idle -> pending transition. A second caller for a pending key
// is rejected, never queued.
func (s *generationService) acquire(k requestKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[k]; busy {
		err := fmt.Errorf("%w: %s on item %d", ErrBusy, k.op, k.itemID)
		slog.Info(err.Error())
		return err
	}
	s.pending[k] = struct{}{}
	switch k.op {
	case OpHashtags:
		delete(s.hashtags, k.itemID)
	case OpRepurpose:
		delete(s.repurposed, k)
	}
	return nil
}

func (s *generationService) release(k requestKey, outcome string) {
	s.mu.Lock()
	delete(s.pending, k)
	s.mu.Unlock()
	slog.Info("generation request finished", "item_id", k.itemID, "op", k.op, "target", k.target, "state", outcome)
}

func (s *generationService) Status(itemID int64, op OpKind, target models.Platform) RequestState {
	if op != OpRepurpose {
		target = ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[requestKey{itemID, op, target}]; busy {
		return StatePending
	}
	return StateIdle
}

func (s *generationService) loadContext(ctx context.Context, itemID int64) (*models.CalendarItem, generator.Context, error) {
	item, err := s.cr.GetByID(ctx, itemID)
	if err != nil {
		return nil, generator.Context{}, err
	}
	if item == nil {
		err = fmt.Errorf("%w: calendar item %d", ErrNotFound, itemID)
		slog.Info(err.Error())
		return nil, generator.Context{}, err
	}

	project, err := s.pr.GetByID(ctx, item.ProjectID)
	if err != nil {
		return nil, generator.Context{}, err
	}
	if project == nil {
		err = fmt.Errorf("%w: project %d", ErrNotFound, item.ProjectID)
		slog.Info(err.Error())
		return nil, generator.Context{}, err
	}

	gc := generator.Context{
		Niche:       project.Niche,
		Audience:    project.Audience,
		Tone:        string(project.Tone),
		Goals:       project.Goals,
		Topic:       item.Topic,
		Platform:    string(item.Platform),
		ContentType: item.ContentType,
	}

	report, err := s.rr.GetLatest(ctx, project.ID)
	if err != nil {
		return nil, generator.Context{}, err
	}
	if report != nil {
		gc.Keywords = report.KeywordClusters["primary"]
	}
	return item, gc, nil
}

func (s *generationService) Write(ctx context.Context, itemID int64) (*models.ContentVersion, error) {
	return s.write(ctx, itemID, false)
}

func (s *generationService) Regenerate(ctx context.Context, itemID int64) (*models.ContentVersion, error) {
	return s.write(ctx, itemID, true)
}

func (s *generationService) write(ctx context.Context, itemID int64, regenerate bool) (*models.ContentVersion, error) {
	_, gc, err := s.loadContext(ctx, itemID)
	if err != nil {
		return nil, err
	}

	k := requestKey{itemID: itemID, op: OpWrite}
	if err := s.acquire(k); err != nil {
		return nil, err
	}
	outcome := outcomeFailed
	defer func() { s.release(k, outcome) }()

	// Admitted requests run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	if regenerate {
		current, err := s.vs.Current(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if current != nil {
			gc.PreviousBody = current.Body
		}
	}

	draft, err := s.draft(ctx, itemID, gc)
	if err != nil {
		return nil, err
	}

	version, err := s.vs.Record(ctx, itemID, draft)
	if err != nil {
		return nil, err
	}

	outcome = outcomeSucceeded
	return version, nil
}

// draft asks for rewrites while the best draft is not publish-ready, feeding the last
// score back each time, and returns the best-scoring draft. Any failure discards them all.
func (s *generationService) draft(ctx context.Context, itemID int64, gc generator.Context) (generator.Draft, error) {
	current, err := s.gen.Write(ctx, gc)
	if err != nil {
		slog.Error("content generation failed", "item_id", itemID, "error", err)
		return generator.Draft{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	best := current

	for i := 0; i < maxRewrites && !IsPublishReady(best.SEOScore); i++ {
		slog.Info("draft below quality bar, rewriting", "item_id", itemID, "seo_score", current.SEOScore, "rewrite", i+1)
		gc.Feedback = fmt.Sprintf("Current SEO score: %d/100. Tighten the headline, use the keywords in headings and opening lines, and add a clear call to action.", current.SEOScore)

		current, err = s.gen.Write(ctx, gc)
		if err != nil {
			slog.Error("content rewrite failed", "item_id", itemID, "error", err)
			return generator.Draft{}, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if current.SEOScore > best.SEOScore {
			best = current
		}
	}
	return best, nil
}

// sourceContent falls back to the current version body when the caller sends none.
func (s *generationService) sourceContent(ctx context.Context, itemID int64, content string) (string, error) {
	if strings.TrimSpace(content) != "" {
		return content, nil
	}
	current, err := s.vs.Current(ctx, itemID)
	if err != nil {
		return "", err
	}
	if current == nil {
		err = fmt.Errorf("%w: item %d has no content yet", ErrValidation, itemID)
		slog.Info(err.Error())
		return "", err
	}
	return current.Body, nil
}

func (s *generationService) GenerateHashtags(ctx context.Context, itemID int64, content string) ([]string, error) {
	_, gc, err := s.loadContext(ctx, itemID)
	if err != nil {
		return nil, err
	}
	content, err = s.sourceContent(ctx, itemID, content)
	if err != nil {
		return nil, err
	}

	k := requestKey{itemID: itemID, op: OpHashtags}
	if err := s.acquire(k); err != nil {
		return nil, err
	}
	outcome := outcomeFailed
	defer func() { s.release(k, outcome) }()

	tags, err := s.gen.Hashtags(context.WithoutCancel(ctx), gc, content)
	if err != nil {
		slog.Error("hashtag generation failed", "item_id", itemID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	s.mu.Lock()
	s.hashtags[itemID] = tags
	s.mu.Unlock()

	outcome = outcomeSucceeded
	return tags, nil
}

func (s *generationService) Repurpose(ctx context.Context, itemID int64, target models.Platform, content string) (generator.Repurposed, error) {
	if _, err := models.ParsePlatform(string(target)); err != nil {
		slog.Info(err.Error())
		return generator.Repurposed{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	_, gc, err := s.loadContext(ctx, itemID)
	if err != nil {
		return generator.Repurposed{}, err
	}
	content, err = s.sourceContent(ctx, itemID, content)
	if err != nil {
		return generator.Repurposed{}, err
	}

	k := requestKey{itemID: itemID, op: OpRepurpose, target: target}
	if err := s.acquire(k); err != nil {
		return generator.Repurposed{}, err
	}
	outcome := outcomeFailed
	defer func() { s.release(k, outcome) }()

	result, err := s.gen.Repurpose(context.WithoutCancel(ctx), gc, string(target), content)
	if err != nil {
		slog.Error("repurpose failed", "item_id", itemID, "target", target, "error", err)
		return generator.Repurposed{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	s.mu.Lock()
	s.repurposed[k] = result
	s.mu.Unlock()

	outcome = outcomeSucceeded
	return result, nil
}

func (s *generationService) Hashtags(itemID int64) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags, ok := s.hashtags[itemID]
	return tags, ok
}

func (s *generationService) Repurposed(itemID int64, target models.Platform) (generator.Repurposed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.repurposed[requestKey{itemID, OpRepurpose, target}]
	return r, ok
}
