package news

import "strings"

// Filterer selects the items of a batch that satisfy a FilterState. All
// active constraints are ANDed: an item survives only if it passes the
// topic, source, status and search checks together.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(items []NewsItem, state FilterState) []NewsItem {
	filtered := make([]NewsItem, 0, len(items))
	for _, item := range items {
		if f.matches(item, state) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (f *Filterer) matches(item NewsItem, state FilterState) bool {
	if len(state.Topics) > 0 && !f.hasAnyTopic(item.Topics, state.Topics) {
		return false
	}

	if len(state.Sources) > 0 && !contains(state.Sources, item.SourceID) {
		return false
	}

	if len(state.Status) > 0 && !containsStatus(state.Status, item.Status) {
		return false
	}

	if search := strings.TrimSpace(state.Search); search != "" {
		return f.matchesSearch(item, search)
	}

	return true
}

func (f *Filterer) hasAnyTopic(itemTopics, wanted []string) bool {
	for _, topic := range itemTopics {
		if contains(wanted, topic) {
			return true
		}
	}
	return false
}

// matchesSearch does a case-insensitive substring match over the item's
// headline, summary and extracted content.
func (f *Filterer) matchesSearch(item NewsItem, search string) bool {
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(item.Headline), term) ||
		strings.Contains(strings.ToLower(item.Summary), term) ||
		(item.Content != "" && strings.Contains(strings.ToLower(item.Content), term))
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func containsStatus(values []Status, value Status) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
