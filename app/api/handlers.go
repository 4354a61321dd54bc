package api

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newslens/newslens/app/cfg"
	"github.com/newslens/newslens/app/news"
	"github.com/newslens/newslens/app/source"
	"github.com/newslens/newslens/app/store"
	"github.com/newslens/newslens/app/tasks"
)

type Handler struct {
	batchStore  *store.Store
	sourceCache *source.SourceCache
	filterer    *news.Filterer
	sorter      *news.Sorter
	scheduler   tasks.TaskSchedulerInterface
}

func NewHandler(batchStore *store.Store, sourceCache *source.SourceCache, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		batchStore:  batchStore,
		sourceCache: sourceCache,
		filterer:    news.NewFilterer(),
		sorter:      news.NewSorter(),
		scheduler:   scheduler,
	}
}

// GetNews returns the current batch filtered and sorted per the query.
// Query parameters: topics, sources, status (comma-separated), sort
// (latest|trending|confidence), search.
func (h *Handler) GetNews(c *gin.Context) {
	state, err := h.parseFilterState(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := h.batchStore.Snapshot()
	items = h.filterer.Run(items, state)
	items = h.sorter.Run(items, state.Sort)

	responses := make([]NewsItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toNewsItemResponse(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        responses,
		"count":        len(responses),
		"refreshed_at": h.batchStore.RefreshedAt().Format(time.RFC3339),
	})
}

func (h *Handler) GetSources(c *gin.Context) {
	sources := h.sourceCache.GetSources()

	responses := make([]SourceResponse, 0, len(sources))
	for _, src := range sources {
		responses = append(responses, toSourceResponse(src))
	}

	c.JSON(http.StatusOK, gin.H{"sources": responses, "count": len(responses)})
}

// GetTopics lists the distinct topics present in the current batch.
func (h *Handler) GetTopics(c *gin.Context) {
	seen := make(map[string]bool)
	for _, item := range h.batchStore.Snapshot() {
		for _, topic := range item.Topics {
			seen[topic] = true
		}
	}

	topics := make([]string, 0, len(seen))
	for topic := range seen {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	c.JSON(http.StatusOK, gin.H{"topics": topics, "count": len(topics)})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sources":   h.sourceCache.GetSourceCount(),
		"items":     h.batchStore.ItemCount(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	byStatus := make(map[string]int)
	for status, count := range h.batchStore.CountByStatus() {
		byStatus[string(status)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"version":         cfg.Get().Version,
		"items":           h.batchStore.ItemCount(),
		"items_by_status": byStatus,
		"sources":         h.sourceCache.GetSourceCount(),
		"refreshed_at":    h.batchStore.RefreshedAt().Format(time.RFC3339),
	})
}

// APIVerifyItem enqueues a fact-check of one item from the current batch.
func (h *Handler) APIVerifyItem(c *gin.Context) {
	itemID := c.Query("id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id query parameter is required"})
		return
	}

	if _, ok := h.batchStore.GetItem(itemID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found in current batch"})
		return
	}

	if err := h.scheduler.EnqueueClassify(itemID); err != nil {
		slog.Error("Failed to enqueue ClassifyItemTask", "item_id", itemID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "verification scheduled", "id": itemID})
}

// APIRefresh triggers an aggregation cycle outside the regular interval.
func (h *Handler) APIRefresh(c *gin.Context) {
	if err := h.scheduler.EnqueueRefresh(); err != nil {
		slog.Error("Failed to enqueue RefreshBatchTask", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "refresh scheduled"})
}

func (h *Handler) parseFilterState(c *gin.Context) (news.FilterState, error) {
	state := news.FilterState{
		Topics:  splitParam(c.Query("topics")),
		Sources: splitParam(c.Query("sources")),
		Search:  c.Query("search"),
		Sort:    news.SortLatest,
	}

	for _, raw := range splitParam(c.Query("status")) {
		status := news.Status(raw)
		if !status.Valid() {
			return news.FilterState{}, &invalidParamError{param: "status", value: raw}
		}
		state.Status = append(state.Status, status)
	}

	if raw := c.Query("sort"); raw != "" {
		option := news.SortOption(raw)
		if !option.Valid() {
			return news.FilterState{}, &invalidParamError{param: "sort", value: raw}
		}
		state.Sort = option
	}

	return state, nil
}

type invalidParamError struct {
	param string
	value string
}

func (e *invalidParamError) Error() string {
	return "invalid " + e.param + " value: " + e.value
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
