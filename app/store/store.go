package store

import (
	"sync"
	"time"

	"github.com/newslens/newslens/app/news"
)

// Store holds the current aggregation batch. Each refresh replaces the
// batch wholesale, readers always see either the old batch or the new one,
// never a mix. Verdict upgrades are the single in-place mutation and
// replace status, confidence and explanation together.
type Store struct {
	mu          sync.RWMutex
	items       []news.NewsItem
	refreshedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceBatch swaps in a freshly aggregated batch.
func (s *Store) ReplaceBatch(items []news.NewsItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.refreshedAt = time.Now().UTC()
}

// Snapshot returns a copy of the current batch. Mutating the returned
// slice does not affect the store.
func (s *Store) Snapshot() []news.NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]news.NewsItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// GetItem returns the item with the given id from the current batch.
func (s *Store) GetItem(id string) (news.NewsItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return news.NewsItem{}, false
}

// ApplyVerdict upgrades one item's verification state. Returns false when
// the item is no longer in the current batch, which happens when a refresh
// replaced the batch while the classifier was running.
func (s *Store) ApplyVerdict(id string, status news.Status, confidence int, explanation, verifiedBy string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			s.items[i].ConfidenceScore = confidence
			s.items[i].Explanation = explanation
			if verifiedBy != "" {
				s.items[i].VerifiedBy = append(s.items[i].VerifiedBy, verifiedBy)
			}
			return true
		}
	}
	return false
}

// SetContent attaches extracted article content to one item.
func (s *Store) SetContent(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Content = content
			return true
		}
	}
	return false
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// CountByStatus returns item counts grouped by verification status.
func (s *Store) CountByStatus() map[news.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[news.Status]int)
	for _, item := range s.items {
		counts[item.Status]++
	}
	return counts
}
