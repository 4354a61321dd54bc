package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/newslens/newslens/app/cache"
	"github.com/newslens/newslens/app/source"
)

// Fetcher retrieves and parses a single upstream feed. Transport and parse
// failures are absorbed here: a failing source yields an empty entry list
// and a logged diagnostic, never an error to the caller.
type Fetcher struct {
	httpClient     *http.Client
	gofeedParser   *gofeed.Parser
	cache          *cache.Cache[[]RawEntry]
	userAgent      string
	defaultTimeout time.Duration
}

// NewFetcher builds a fetcher. defaultTimeout bounds requests for sources
// that do not set a per-source timeout of their own.
func NewFetcher(httpClient *http.Client, feedCache *cache.Cache[[]RawEntry], userAgent string, defaultTimeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient:     httpClient,
		gofeedParser:   gofeed.NewParser(),
		cache:          feedCache,
		userAgent:      userAgent,
		defaultTimeout: defaultTimeout,
	}
}

// Run returns the raw entries for src, serving from the cache when a fresh
// entry exists under the source URL. Cache hits perform no network I/O.
func (f *Fetcher) Run(ctx context.Context, src *source.NewsSource) []RawEntry {
	if entries, ok := f.cache.Get(src.URL); ok {
		slog.Debug("Feed served from cache", "source", src.ID, "entries", len(entries))
		return entries
	}

	data, err := f.fetch(ctx, src)
	if err != nil {
		slog.Error("Feed fetch failed", "source", src.ID, "url", src.URL, "error", err)
		return []RawEntry{}
	}

	entries, err := f.parse(data)
	if err != nil {
		slog.Error("Feed parse failed", "source", src.ID, "url", src.URL, "error", err)
		return []RawEntry{}
	}

	f.cache.Set(src.URL, entries)
	slog.Debug("Feed fetched", "source", src.ID, "entries", len(entries))

	return entries
}

func (f *Fetcher) fetch(ctx context.Context, src *source.NewsSource) ([]byte, error) {
	timeout := time.Duration(src.Settings.Timeout) * time.Second
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (f *Fetcher) parse(data []byte) ([]RawEntry, error) {
	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entries = append(entries, f.normalizeEntry(item))
	}

	return entries, nil
}

func (f *Fetcher) normalizeEntry(item *gofeed.Item) RawEntry {
	entry := RawEntry{
		Title:       item.Title,
		Description: item.Description,
		Link:        item.Link,
		Published:   item.Published,
	}

	if item.PublishedParsed != nil {
		entry.PublishedAt = item.PublishedParsed
	} else if item.Published != "" {
		// gofeed gives up on some nonstandard date formats
		if ts, err := dateparse.ParseAny(item.Published); err == nil {
			entry.PublishedAt = &ts
		}
	}

	if item.Categories != nil {
		entry.Categories = item.Categories
	}

	return entry
}
