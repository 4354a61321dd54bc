package news

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/newslens/newslens/app/feed"
	"github.com/newslens/newslens/app/source"
)

type SourceProvider interface {
	GetEnabledSources() []*source.NewsSource
}

// Aggregator fans fetch+normalize out across every enabled source and
// merges the results into one unordered batch. A failing source
// contributes nothing and never cancels its siblings; the batch is only
// ever as incomplete as its worst sources.
type Aggregator struct {
	fetcher    *feed.Fetcher
	normalizer *Normalizer
	sources    SourceProvider
}

func NewAggregator(fetcher *feed.Fetcher, normalizer *Normalizer, sources SourceProvider) *Aggregator {
	return &Aggregator{
		fetcher:    fetcher,
		normalizer: normalizer,
		sources:    sources,
	}
}

// Run waits for every source task to settle before returning. The batch is
// a full replacement for any previously held collection, there is no
// cross-source ordering and no dedup.
func (a *Aggregator) Run(ctx context.Context) []NewsItem {
	sources := a.sources.GetEnabledSources()
	if len(sources) == 0 {
		slog.Debug("No enabled sources configured")
		return []NewsItem{}
	}

	started := time.Now()

	var (
		mu    sync.Mutex
		batch []NewsItem
		wg    sync.WaitGroup
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src *source.NewsSource) {
			defer wg.Done()

			entries := a.fetcher.Run(ctx, src)

			items := make([]NewsItem, 0, len(entries))
			for _, entry := range entries {
				items = append(items, a.normalizer.Run(entry, src))
			}

			mu.Lock()
			batch = append(batch, items...)
			mu.Unlock()
		}(src)
	}

	wg.Wait()

	slog.Info("Aggregation cycle completed",
		"sources", len(sources),
		"items", len(batch),
		"duration", time.Since(started))

	if batch == nil {
		batch = []NewsItem{}
	}
	return batch
}
