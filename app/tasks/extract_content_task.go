package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/newslens/newslens/app/feed"
	"github.com/newslens/newslens/app/source"
	"github.com/newslens/newslens/app/store"
)

// ExtractContentTask fetches the article pages behind one source's items
// and attaches readability-extracted text, so free-text search can see the
// full story and not just the feed summary.
type ExtractContentTask struct {
	Task
	Source           *source.NewsSource
	httpClient       *http.Client
	contentExtractor *feed.ContentExtractor
	batchStore       *store.Store
	userAgent        string
	defaultTimeout   time.Duration
}

func NewExtractContentTask(src *source.NewsSource, httpClient *http.Client, contentExtractor *feed.ContentExtractor, batchStore *store.Store, userAgent string, defaultTimeout time.Duration) *ExtractContentTask {
	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent, src.ID),
		Source:           src,
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		batchStore:       batchStore,
		userAgent:        userAgent,
		defaultTimeout:   defaultTimeout,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.Source.Settings.ExtractContent {
		slog.Debug("Content extraction disabled for source", "source", t.Source.ID)
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, item := range t.batchStore.Snapshot() {
		if item.SourceID != t.Source.ID || item.Content != "" || item.SourceURL == "" {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		timeout := time.Duration(t.Source.Settings.Timeout) * time.Second
		if timeout <= 0 {
			timeout = t.defaultTimeout
		}

		extractCtx, cancel := context.WithTimeout(ctx, timeout)
		content, err := t.extractFromURL(extractCtx, item.SourceURL)
		cancel()

		if err != nil {
			slog.Error("Failed to extract content for item", "item_id", item.ID, "url", item.SourceURL, "error", err)
			errorCount++
			continue
		}

		if t.batchStore.SetContent(item.ID, content) {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", "ExtractContent",
		"source", t.Source.ID,
		"duration", t.GetDuration(),
		"extracted", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return t.contentExtractor.Run(data)
}
