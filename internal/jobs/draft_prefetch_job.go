package job

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/service"
)

type GenerationEnqueuer interface {
	EnqueueGeneration(itemID int64) error
}

// DraftPrefetchJob queues a first draft for every item due today or tomorrow that has none.
type DraftPrefetchJob struct {
	cr  repository.CalendarRepository
	eq  GenerationEnqueuer
	now func() time.Time
}

func NewDraftPrefetchJob(cr repository.CalendarRepository, eq GenerationEnqueuer) *DraftPrefetchJob {
	return &DraftPrefetchJob{
		cr:  cr,
		eq:  eq,
		now: time.Now,
	}
}

func (j *DraftPrefetchJob) PrefetchDrafts() {
	ctx := context.Background()

	today := j.now()
	from := today.Format(models.DateLayout)
	to := today.AddDate(0, 0, 1).Format(models.DateLayout)

	items, err := j.cr.ListWithoutVersions(ctx, from, to)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, item := range items {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(item *models.CalendarItem) {
			defer wg.Done()
			defer func() { <-semaphore }()

			// ErrBusy means a task for this item is already waiting.
			if err := j.eq.EnqueueGeneration(item.ID); err != nil && !errors.Is(err, service.ErrBusy) {
				slog.Info("unable to queue draft", "item_id", item.ID, "error", err)
			}
		}(item)
	}

	wg.Wait()
	slog.Info("draft prefetch finished", "from", from, "to", to, "items", len(items))
}
