package news

import (
	"math"
	"sort"
)

// Sorter orders a batch by one of the supported sort options. The input is
// never mutated and ties keep their relative input order.
type Sorter struct{}

func NewSorter() *Sorter {
	return &Sorter{}
}

func (s *Sorter) Run(items []NewsItem, option SortOption) []NewsItem {
	sorted := make([]NewsItem, len(items))
	copy(sorted, items)

	switch option {
	case SortLatest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return publishedUnix(sorted[i]) > publishedUnix(sorted[j])
		})
	case SortTrending:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Engagement.Total() > sorted[j].Engagement.Total()
		})
	case SortConfidence:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ConfidenceScore > sorted[j].ConfidenceScore
		})
	}

	return sorted
}

// publishedUnix treats items with unparseable timestamps as oldest.
func publishedUnix(item NewsItem) int64 {
	if item.PublishedParsed == nil {
		return math.MinInt64
	}
	return item.PublishedParsed.Unix()
}
