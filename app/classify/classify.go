package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newslens/newslens/app/news"
)

// Verdict is a classifier's refined judgement on one news item.
type Verdict struct {
	Status      news.Status
	Confidence  int // 0-100
	Explanation string
}

// Client calls an OpenAI-compatible chat completions endpoint to fact-check
// a single item. Callers must treat any error as a non-upgrade: the item
// keeps its original status and confidence.
type Client struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, url, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

const systemPrompt = "You are a fact-checking expert specializing in Indian news verification. " +
	"Analyze the provided news content and determine its factuality based on known information and reliable sources."

const userPromptFormat = `Please fact check this news item:
Headline: %s
Summary: %s
Source: %s
Topics: %s

Provide a JSON response with:
- isFactual (boolean)
- confidence (number between 0-100)
- explanation (string with your analysis)`

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type factCheckResult struct {
	IsFactual   bool   `json:"isFactual"`
	Confidence  int    `json:"confidence"`
	Explanation string `json:"explanation"`
}

// Run fact-checks item and returns the refined verdict.
func (c *Client) Run(ctx context.Context, item news.NewsItem) (*Verdict, error) {
	prompt := fmt.Sprintf(userPromptFormat, item.Headline, item.Summary, item.SourceID, strings.Join(item.Topics, ", "))

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("classifier API %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("empty classifier response")
	}

	var result factCheckResult
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse fact check result: %w", err)
	}

	if result.Confidence < 0 || result.Confidence > 100 {
		return nil, fmt.Errorf("confidence out of range: %d", result.Confidence)
	}

	verdict := &Verdict{
		Status:      news.StatusMyth,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
	}
	if result.IsFactual {
		verdict.Status = news.StatusVerified
	}

	return verdict, nil
}
