package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentflow/internal/service"
)

func (j *Queue) HandleGenerateContentTask(ctx context.Context, task *asynq.Task) error {
	var payload GenerateContentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	v, err := j.gs.Write(ctx, payload.ItemID)
	if err != nil {
		// Another writer already holds the item, or it no longer exists. Retrying helps neither.
		if errors.Is(err, service.ErrBusy) || errors.Is(err, service.ErrNotFound) {
			slog.Info("generation task skipped", "item_id", payload.ItemID, "error", err)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		slog.Error("generation task failed", "item_id", payload.ItemID, "error", err)
		return err
	}

	slog.Info("generation task done", "item_id", payload.ItemID, "version", v.VersionNumber)
	return nil
}

func (j *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypeGenerateContent, j.HandleGenerateContentTask)
}
