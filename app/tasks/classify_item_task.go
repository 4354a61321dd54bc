package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/newslens/newslens/app/classify"
	"github.com/newslens/newslens/app/store"
)

// ClassifyItemTask asks the external classifier for a verdict on one item
// and applies it to the current batch. A classifier failure leaves the
// item's status and confidence untouched.
type ClassifyItemTask struct {
	Task
	classifier *classify.Client
	batchStore *store.Store
}

func NewClassifyItemTask(itemID string, classifier *classify.Client, batchStore *store.Store) *ClassifyItemTask {
	return &ClassifyItemTask{
		Task:       NewTask(TaskTypeClassifyItem, itemID),
		classifier: classifier,
		batchStore: batchStore,
	}
}

func (t *ClassifyItemTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	item, ok := t.batchStore.GetItem(t.Subject)
	if !ok {
		// The batch was replaced since the task was enqueued
		slog.Debug("Item no longer in current batch, skipping classification", "item_id", t.Subject)
		return nil
	}

	verdict, err := t.classifier.Run(ctx, item)
	if err != nil {
		return fmt.Errorf("classification failed for item %s: %w", t.Subject, err)
	}

	if !t.batchStore.ApplyVerdict(item.ID, verdict.Status, verdict.Confidence, verdict.Explanation, "classifier") {
		slog.Debug("Item disappeared before verdict could be applied", "item_id", t.Subject)
		return nil
	}

	slog.Info("Task completed",
		"type", "ClassifyItem",
		"item_id", t.Subject,
		"duration", t.GetDuration(),
		"status", string(verdict.Status),
		"confidence", verdict.Confidence)

	return nil
}
