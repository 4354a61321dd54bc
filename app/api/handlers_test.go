package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newslens/newslens/app/cfg"
	"github.com/newslens/newslens/app/news"
	"github.com/newslens/newslens/app/source"
	"github.com/newslens/newslens/app/store"
	"github.com/newslens/newslens/app/tasks"
)

type fakeScheduler struct {
	refreshCalls  int
	classifyCalls []string
	classifyErr   error
}

func (f *fakeScheduler) Start() {}
func (f *fakeScheduler) Stop()  {}
func (f *fakeScheduler) EnqueueTask(task tasks.TaskInterface) error {
	return nil
}
func (f *fakeScheduler) EnqueueRefresh() error {
	f.refreshCalls++
	return nil
}
func (f *fakeScheduler) EnqueueClassify(itemID string) error {
	f.classifyCalls = append(f.classifyCalls, itemID)
	return f.classifyErr
}

func newTestServer(t *testing.T, apiKey string) (*fakeScheduler, *store.Store, http.Handler) {
	t.Helper()
	cfg.Set(&cfg.Cfg{Version: "test"})

	batchStore := store.NewStore()
	earlier := time.Now().Add(-2 * time.Hour)
	later := time.Now().Add(-10 * time.Minute)
	batchStore.ReplaceBatch([]news.NewsItem{
		{
			ID:              "https://pib.gov.in/gdp",
			Headline:        "GDP Growth Rate Projected at 6.8%",
			Summary:         "Economy projected to grow.",
			SourceID:        "pib",
			Topics:          []string{"Economy"},
			Status:          news.StatusUnverified,
			PublishedParsed: &earlier,
		},
		{
			ID:              "https://www.altnews.in/viral",
			Headline:        "Viral message about bank closures is false",
			Summary:         "No banks are closing.",
			SourceID:        "altnews",
			Topics:          []string{"Fact Check"},
			Status:          news.StatusVerified,
			ConfidenceScore: 95,
			PublishedParsed: &later,
		},
	})

	sourceCache := source.NewSourceCache(t.TempDir() + "/none")
	if err := sourceCache.Run(); err != nil {
		t.Fatal(err)
	}

	scheduler := &fakeScheduler{}
	handler := NewHandler(batchStore, sourceCache, scheduler)
	return scheduler, batchStore, NewServer(handler, apiKey)
}

func doRequest(t *testing.T, server http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetNewsReturnsAllItems(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/news", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Items []NewsItemResponse `json:"items"`
		Count int                `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.Count != 2 {
		t.Errorf("Expected 2 items, got %d", body.Count)
	}

	// Default sort is latest, the altnews item is newer
	if body.Items[0].SourceID != "altnews" {
		t.Errorf("Expected latest item first, got '%s'", body.Items[0].SourceID)
	}
	if body.Items[0].PublishedTime == "" || body.Items[0].PublishedTime == "Unknown time" {
		t.Errorf("Expected relative published time, got '%s'", body.Items[0].PublishedTime)
	}
}

func TestGetNewsStatusFilter(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/news?status=verified", nil)

	var body struct {
		Items []NewsItemResponse `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if len(body.Items) != 1 || body.Items[0].SourceID != "altnews" {
		t.Errorf("Expected only the verified altnews item, got %d items", len(body.Items))
	}
}

func TestGetNewsSearchFilter(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/news?search=gdp", nil)

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.Count != 1 {
		t.Errorf("Expected 1 item matching 'gdp', got %d", body.Count)
	}
}

func TestGetNewsSortConfidence(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/news?sort=confidence", nil)

	var body struct {
		Items []NewsItemResponse `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.Items[0].ConfidenceScore != 95 {
		t.Errorf("Expected highest confidence first, got %d", body.Items[0].ConfidenceScore)
	}
}

func TestGetNewsInvalidStatus(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/news?status=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid status, got %d", w.Code)
	}
}

func TestGetNewsInvalidSort(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/news?sort=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid sort, got %d", w.Code)
	}
}

func TestGetSources(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/sources", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Sources []SourceResponse `json:"sources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Sources) == 0 {
		t.Error("Expected bundled default sources")
	}
}

func TestGetTopics(t *testing.T) {
	_, _, server := newTestServer(t, "")

	w := doRequest(t, server, "GET", "/topics", nil)

	var body struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if len(body.Topics) != 2 {
		t.Errorf("Expected 2 distinct topics, got %v", body.Topics)
	}
}

func TestAPIVerifyRequiresAuth(t *testing.T) {
	_, _, server := newTestServer(t, "secret")

	w := doRequest(t, server, "POST", "/api/news/verify?id=x", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without API key, got %d", w.Code)
	}

	w = doRequest(t, server, "POST", "/api/news/verify?id=x", map[string]string{"X-API-Key": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong API key, got %d", w.Code)
	}
}

func TestAPIVerifyEnqueuesClassification(t *testing.T) {
	scheduler, _, server := newTestServer(t, "secret")

	headers := map[string]string{"X-API-Key": "secret"}
	w := doRequest(t, server, "POST", "/api/news/verify?id=https://pib.gov.in/gdp", headers)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", w.Code)
	}
	if len(scheduler.classifyCalls) != 1 || scheduler.classifyCalls[0] != "https://pib.gov.in/gdp" {
		t.Errorf("Expected classification enqueued for the item, got %v", scheduler.classifyCalls)
	}
}

func TestAPIVerifyUnknownItem(t *testing.T) {
	_, _, server := newTestServer(t, "secret")

	headers := map[string]string{"X-API-Key": "secret"}
	w := doRequest(t, server, "POST", "/api/news/verify?id=not-in-batch", headers)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown item, got %d", w.Code)
	}
}

func TestAPIRefresh(t *testing.T) {
	scheduler, _, server := newTestServer(t, "secret")

	headers := map[string]string{"Authorization": "Bearer secret"}
	w := doRequest(t, server, "POST", "/api/refresh", headers)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", w.Code)
	}
	if scheduler.refreshCalls != 1 {
		t.Errorf("Expected 1 refresh enqueued, got %d", scheduler.refreshCalls)
	}
}
