package news

import (
	"reflect"
	"testing"
)

func sampleItems() []NewsItem {
	return []NewsItem{
		{
			ID:       "1",
			Headline: "GDP Growth Rate Projected at 6.8%",
			Summary:  "The economy is projected to grow this fiscal year.",
			SourceID: "pib",
			Topics:   []string{"Economy"},
			Status:   StatusUnverified,
		},
		{
			ID:       "2",
			Headline: "Viral flood video is old footage",
			Summary:  "The clip is from 2019.",
			SourceID: "altnews",
			Topics:   []string{"Fact Check", "Environment"},
			Status:   StatusVerified,
		},
		{
			ID:       "3",
			Headline: "New vaccine claims circulating",
			Summary:  "Health ministry investigating viral claims.",
			SourceID: "twitter",
			Topics:   []string{"Health"},
			Status:   StatusInvestigating,
		},
	}
}

func TestFiltererEmptyStateIsIdentity(t *testing.T) {
	filterer := NewFilterer()
	items := sampleItems()

	result := filterer.Run(items, FilterState{})

	if !reflect.DeepEqual(result, items) {
		t.Error("Empty filter state should return all items unchanged")
	}
}

func TestFiltererIdempotent(t *testing.T) {
	filterer := NewFilterer()
	state := FilterState{Status: []Status{StatusVerified, StatusInvestigating}, Search: "viral"}

	once := filterer.Run(sampleItems(), state)
	twice := filterer.Run(once, state)

	if !reflect.DeepEqual(once, twice) {
		t.Error("Filtering twice with the same state should equal filtering once")
	}
}

func TestFiltererByTopic(t *testing.T) {
	filterer := NewFilterer()

	result := filterer.Run(sampleItems(), FilterState{Topics: []string{"Economy", "Health"}})

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	if result[0].ID != "1" || result[1].ID != "3" {
		t.Errorf("Unexpected items: %s, %s", result[0].ID, result[1].ID)
	}
}

func TestFiltererBySource(t *testing.T) {
	filterer := NewFilterer()

	result := filterer.Run(sampleItems(), FilterState{Sources: []string{"altnews"}})

	if len(result) != 1 || result[0].ID != "2" {
		t.Errorf("Expected only the altnews item, got %d items", len(result))
	}
}

func TestFiltererByStatus(t *testing.T) {
	filterer := NewFilterer()

	result := filterer.Run(sampleItems(), FilterState{Status: []Status{StatusVerified}})

	if len(result) != 1 || result[0].Status != StatusVerified {
		t.Errorf("Expected only verified items, got %d items", len(result))
	}
}

func TestFiltererSearchCaseInsensitive(t *testing.T) {
	filterer := NewFilterer()

	matched := filterer.Run(sampleItems(), FilterState{Search: "gdp"})
	if len(matched) != 1 || matched[0].ID != "1" {
		t.Errorf("Expected 'gdp' to match the GDP headline, got %d items", len(matched))
	}

	unmatched := filterer.Run(sampleItems(), FilterState{Search: "inflation"})
	if len(unmatched) != 0 {
		t.Errorf("Expected 'inflation' to match nothing, got %d items", len(unmatched))
	}
}

func TestFiltererSearchMatchesSummaryAndContent(t *testing.T) {
	filterer := NewFilterer()

	items := []NewsItem{
		{ID: "s", Headline: "Other headline", Summary: "Deep dive into inflation numbers"},
		{ID: "c", Headline: "Another", Summary: "", Content: "Full text mentions inflation trends"},
	}

	result := filterer.Run(items, FilterState{Search: "INFLATION"})
	if len(result) != 2 {
		t.Errorf("Expected search to cover summary and content, got %d items", len(result))
	}
}

func TestFiltererSearchAndsWithOtherConstraints(t *testing.T) {
	filterer := NewFilterer()

	// "viral" matches items 2 and 3, but the status constraint must also hold
	state := FilterState{Status: []Status{StatusVerified}, Search: "viral"}
	result := filterer.Run(sampleItems(), state)

	if len(result) != 1 || result[0].ID != "2" {
		t.Errorf("Expected search to AND with the status filter, got %d items", len(result))
	}
}

func TestFiltererCombinedConstraints(t *testing.T) {
	filterer := NewFilterer()

	state := FilterState{
		Topics:  []string{"Environment", "Health"},
		Sources: []string{"altnews", "twitter"},
		Status:  []Status{StatusVerified, StatusInvestigating},
	}
	result := filterer.Run(sampleItems(), state)

	if len(result) != 2 {
		t.Errorf("Expected 2 items passing all constraints, got %d", len(result))
	}
}

func TestFiltererDoesNotMutateInput(t *testing.T) {
	filterer := NewFilterer()
	items := sampleItems()
	snapshot := sampleItems()

	filterer.Run(items, FilterState{Status: []Status{StatusVerified}})

	if !reflect.DeepEqual(items, snapshot) {
		t.Error("Filter must not mutate its input")
	}
}
