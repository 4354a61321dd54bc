package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/newslens/newslens/app/news"
	"github.com/newslens/newslens/app/store"
)

// RefreshBatchTask runs one aggregation cycle and swaps the result into
// the store. The inFlight guard bounds overlap: a cycle scheduled while a
// previous one is still running is skipped, not queued behind it.
type RefreshBatchTask struct {
	Task
	aggregator *news.Aggregator
	batchStore *store.Store
	inFlight   *atomic.Bool
}

func NewRefreshBatchTask(aggregator *news.Aggregator, batchStore *store.Store, inFlight *atomic.Bool) *RefreshBatchTask {
	return &RefreshBatchTask{
		Task:       NewTask(TaskTypeRefreshBatch, "batch"),
		aggregator: aggregator,
		batchStore: batchStore,
		inFlight:   inFlight,
	}
}

func (t *RefreshBatchTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.inFlight.CompareAndSwap(false, true) {
		slog.Debug("Aggregation cycle already in flight, skipping")
		return nil
	}
	defer t.inFlight.Store(false)

	batch := t.aggregator.Run(ctx)
	t.batchStore.ReplaceBatch(batch)

	slog.Info("Task completed",
		"type", "RefreshBatch",
		"duration", t.GetDuration(),
		"items", len(batch))

	return nil
}
