package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newslens/newslens/app/news"
)

func chatCompletion(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func testItem() news.NewsItem {
	return news.NewsItem{
		ID:       "https://example.com/claim",
		Headline: "Free electricity for all households announced",
		Summary:  "A message circulating on WhatsApp claims free electricity.",
		SourceID: "whatsapp",
		Topics:   []string{"Politics"},
		Status:   news.StatusUnverified,
	}
}

func TestClientFactualVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got '%s'", got)
		}
		w.Write([]byte(chatCompletion(`{"isFactual": true, "confidence": 88, "explanation": "Matches official announcement."}`)))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-4-turbo-preview")
	verdict, err := client.Run(context.Background(), testItem())
	if err != nil {
		t.Fatal(err)
	}

	if verdict.Status != news.StatusVerified {
		t.Errorf("Expected status 'verified', got '%s'", verdict.Status)
	}
	if verdict.Confidence != 88 {
		t.Errorf("Expected confidence 88, got %d", verdict.Confidence)
	}
	if verdict.Explanation == "" {
		t.Error("Expected non-empty explanation")
	}
}

func TestClientMythVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletion(`{"isFactual": false, "confidence": 92, "explanation": "No such scheme exists."}`)))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-4-turbo-preview")
	verdict, err := client.Run(context.Background(), testItem())
	if err != nil {
		t.Fatal(err)
	}

	if verdict.Status != news.StatusMyth {
		t.Errorf("Expected status 'myth', got '%s'", verdict.Status)
	}
}

func TestClientSendsItemFields(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		b, _ := json.Marshal(req)
		gotBody = string(b)
		w.Write([]byte(chatCompletion(`{"isFactual": true, "confidence": 50, "explanation": "ok"}`)))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")
	if _, err := client.Run(context.Background(), testItem()); err != nil {
		t.Fatal(err)
	}

	for _, fragment := range []string{"Free electricity", "whatsapp", "Politics", "test-model"} {
		if !strings.Contains(gotBody, fragment) {
			t.Errorf("Expected request to contain '%s'", fragment)
		}
	}
}

func TestClientMalformedResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json content", chatCompletion("I cannot verify this claim.")},
		{"no choices", `{"choices": []}`},
		{"invalid json body", `{{{`},
		{"confidence out of range", chatCompletion(`{"isFactual": true, "confidence": 150, "explanation": "x"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient("test-key", server.URL, "test-model")
			if _, err := client.Run(context.Background(), testItem()); err == nil {
				t.Error("Expected error for malformed response")
			}
		})
	}
}

func TestClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")
	if _, err := client.Run(context.Background(), testItem()); err == nil {
		t.Error("Expected error for HTTP 429")
	}
}
