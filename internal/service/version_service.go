package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/maheshrc27/contentflow/internal/generator"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/yuin/goldmark"
)

type VersionService interface {
	List(ctx context.Context, itemID int64) ([]*models.ContentVersion, error)
	Current(ctx context.Context, itemID int64) (*models.ContentVersion, error)
	Record(ctx context.Context, itemID int64, draft generator.Draft) (*models.ContentVersion, error)
	Select(ctx context.Context, itemID, versionID int64) (*models.ContentVersion, error)
}

// VersionSummary decorates a version with its score bands.
type VersionSummary struct {
	*models.ContentVersion
	SEOBand         Band `json:"seo_band"`
	ReadabilityBand Band `json:"readability_band"`
	BrandBand       Band `json:"brand_band"`
	PublishReady    bool `json:"publish_ready"`
}

func Summarize(v *models.ContentVersion) VersionSummary {
	return VersionSummary{
		ContentVersion:  v,
		SEOBand:         Classify(v.SEOScore),
		ReadabilityBand: Classify(v.ReadabilityScore),
		BrandBand:       Classify(v.BrandScore),
		PublishReady:    IsPublishReady(v.SEOScore),
	}
}

// RenderVersionHTML converts the markdown body to HTML for previews.
func RenderVersionHTML(v *models.ContentVersion) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(v.Body), &buf); err != nil {
		return "", fmt.Errorf("render version %d: %w", v.ID, err)
	}
	return buf.String(), nil
}

// lockStripes bounds the number of record mutexes. Items sharing a stripe
// serialize their records, which only costs throughput.
const lockStripes = 64

type versionService struct {
	vr    repository.VersionRepository
	cr    repository.CalendarRepository
	locks [lockStripes]sync.Mutex
}

func NewVersionService(vr repository.VersionRepository, cr repository.CalendarRepository) VersionService {
	return &versionService{vr: vr, cr: cr}
}

func (s *versionService) lockFor(itemID int64) *sync.Mutex {
	return &s.locks[uint64(itemID)%lockStripes]
}

func (s *versionService) ensureItem(ctx context.Context, itemID int64) error {
	item, err := s.cr.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		err = fmt.Errorf("%w: calendar item %d", ErrNotFound, itemID)
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (s *versionService) List(ctx context.Context, itemID int64) ([]*models.ContentVersion, error) {
	if err := s.ensureItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.vr.GetByCalendarID(ctx, itemID)
}

// Current returns the highest-numbered version, or nil when the item has none.
func (s *versionService) Current(ctx context.Context, itemID int64) (*models.ContentVersion, error) {
	if err := s.ensureItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.vr.GetLatest(ctx, itemID)
}

// Record is the only write path for versions. Numbers are max+1 per item, serialized
// per item in-process; the unique index covers writers in other processes.
func (s *versionService) Record(ctx context.Context, itemID int64, draft generator.Draft) (*models.ContentVersion, error) {
	if err := s.ensureItem(ctx, itemID); err != nil {
		return nil, err
	}

	mu := s.lockFor(itemID)
	mu.Lock()
	defer mu.Unlock()

	latest, err := s.vr.GetLatest(ctx, itemID)
	if err != nil {
		return nil, err
	}
	next := 1
	if latest != nil {
		next = latest.VersionNumber + 1
	}

	v := &models.ContentVersion{
		CalendarID:       itemID,
		VersionNumber:    next,
		Title:            draft.Title,
		Body:             draft.Body,
		SEOScore:         draft.SEOScore,
		ReadabilityScore: draft.ReadabilityScore,
		BrandScore:       draft.BrandScore,
	}
	if _, err := s.vr.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicateVersion) {
			return nil, fmt.Errorf("%w: version %d of item %d was written concurrently", ErrBusy, next, itemID)
		}
		return nil, fmt.Errorf("error saving version: %w", err)
	}

	slog.Info("version recorded", "item_id", itemID, "version", v.VersionNumber, "seo_score", v.SEOScore)
	return v, nil
}

func (s *versionService) Select(ctx context.Context, itemID, versionID int64) (*models.ContentVersion, error) {
	versions, err := s.List(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		if v.ID == versionID {
			return v, nil
		}
	}
	err = fmt.Errorf("%w: version %d of item %d", ErrNotFound, versionID, itemID)
	slog.Info(err.Error())
	return nil, err
}
