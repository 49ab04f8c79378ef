package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentflow/internal/service"
)

// uniqueFor keeps a second enqueue for the same item out of Redis while one is waiting.
const uniqueFor = 10 * time.Minute

func NewGenerateContentTask(payload GenerateContentPayload) (*asynq.Task, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGenerateContent, taskPayload, asynq.MaxRetry(0), asynq.Unique(uniqueFor)), nil
}

func EnqueueGeneration(asynqClient *asynq.Client, payload GenerateContentPayload) error {
	task, err := NewGenerateContentTask(payload)
	if err != nil {
		return err
	}

	_, err = asynqClient.Enqueue(task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return fmt.Errorf("%w: generation for item %d is already queued", service.ErrBusy, payload.ItemID)
	}
	if err != nil {
		return err
	}

	slog.Info("generation task queued", "item_id", payload.ItemID)
	return nil
}

// Enqueuer binds an asynq client for callers that only know item ids.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueGeneration(itemID int64) error {
	return EnqueueGeneration(e.client, GenerateContentPayload{ItemID: itemID})
}
