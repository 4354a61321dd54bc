package news

import "time"

// Status is the verification label attached to every news item.
type Status string

const (
	StatusVerified      Status = "verified"
	StatusMyth          Status = "myth"
	StatusUnverified    Status = "unverified"
	StatusInvestigating Status = "investigating"
)

func (s Status) Valid() bool {
	switch s {
	case StatusVerified, StatusMyth, StatusUnverified, StatusInvestigating:
		return true
	}
	return false
}

// Engagement holds social interaction counts for an item.
type Engagement struct {
	Shares    int
	Comments  int
	Reactions int
}

func (e *Engagement) Total() int {
	if e == nil {
		return 0
	}
	return e.Shares + e.Comments + e.Reactions
}

// NewsItem is the canonical item shape every source is normalized into.
// Items are created by the Normalizer and replaced wholesale on the next
// aggregation cycle; the only post-creation mutation is a classifier
// verdict, applied atomically by the store.
type NewsItem struct {
	ID              string
	Headline        string
	Summary         string
	Content         string
	SourceID        string
	SourceURL       string
	PublishedAt     string     // Raw upstream value, kept even when unparseable
	PublishedParsed *time.Time // nil when the upstream date could not be parsed
	Topics          []string
	Status          Status
	ConfidenceScore int // 0-100
	Explanation     string
	VerifiedBy      []string
	Trending        bool
	Engagement      *Engagement
}

type SortOption string

const (
	SortLatest     SortOption = "latest"
	SortTrending   SortOption = "trending"
	SortConfidence SortOption = "confidence"
)

func (o SortOption) Valid() bool {
	switch o {
	case SortLatest, SortTrending, SortConfidence:
		return true
	}
	return false
}

// FilterState describes one logical view over the aggregated collection.
// Empty sets and an empty search string mean "no constraint".
type FilterState struct {
	Topics  []string
	Sources []string
	Status  []Status
	Sort    SortOption
	Search  string
}
