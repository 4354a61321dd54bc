package api

import (
	"fmt"
	"time"

	"github.com/newslens/newslens/app/news"
	"github.com/newslens/newslens/app/source"
)

type NewsItemResponse struct {
	ID              string              `json:"id"`
	Headline        string              `json:"headline"`
	Summary         string              `json:"summary"`
	SourceID        string              `json:"sourceId"`
	SourceURL       string              `json:"sourceUrl,omitempty"`
	PublishedAt     string              `json:"publishedAt"`
	PublishedTime   string              `json:"publishedTime"`
	Topics          []string            `json:"topics"`
	Status          news.Status         `json:"status"`
	ConfidenceScore int                 `json:"confidenceScore"`
	Explanation     string              `json:"explanation,omitempty"`
	VerifiedBy      []string            `json:"verifiedBy,omitempty"`
	Trending        bool                `json:"trending,omitempty"`
	Engagement      *EngagementResponse `json:"engagement,omitempty"`
}

type EngagementResponse struct {
	Shares    int `json:"shares"`
	Comments  int `json:"comments"`
	Reactions int `json:"reactions"`
}

type SourceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Reliability int    `json:"reliability"`
	Type        string `json:"type"`
}

func toNewsItemResponse(item news.NewsItem) NewsItemResponse {
	resp := NewsItemResponse{
		ID:              item.ID,
		Headline:        item.Headline,
		Summary:         item.Summary,
		SourceID:        item.SourceID,
		SourceURL:       item.SourceURL,
		PublishedAt:     item.PublishedAt,
		PublishedTime:   formatPublishedTime(item.PublishedParsed),
		Topics:          item.Topics,
		Status:          item.Status,
		ConfidenceScore: item.ConfidenceScore,
		Explanation:     item.Explanation,
		VerifiedBy:      item.VerifiedBy,
		Trending:        item.Trending,
	}

	if resp.Topics == nil {
		resp.Topics = []string{}
	}

	if item.Engagement != nil {
		resp.Engagement = &EngagementResponse{
			Shares:    item.Engagement.Shares,
			Comments:  item.Engagement.Comments,
			Reactions: item.Engagement.Reactions,
		}
	}

	return resp
}

func toSourceResponse(src *source.NewsSource) SourceResponse {
	return SourceResponse{
		ID:          src.ID,
		Name:        src.Name,
		URL:         src.URL,
		Reliability: src.Reliability,
		Type:        string(src.Type),
	}
}

// formatPublishedTime renders a timestamp as relative time, "Unknown time"
// when the upstream date never parsed.
func formatPublishedTime(ts *time.Time) string {
	if ts == nil {
		return "Unknown time"
	}

	elapsed := time.Since(*ts)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < 2*time.Minute:
		return "1 minute ago"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 2*time.Hour:
		return "1 hour ago"
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	case elapsed < 48*time.Hour:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	}
}
