package news

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/newslens/newslens/app/feed"
	"github.com/newslens/newslens/app/source"
)

// Normalizer maps raw feed entries into canonical news items. The initial
// status and confidence depend only on the source's trust class: fact-check
// sources publish debunks and verifications, so their items start verified
// at a fixed baseline; everything else starts distrusted until the
// classifier has looked at it.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

const factCheckBaselineConfidence = 95

func (n *Normalizer) Run(entry feed.RawEntry, src *source.NewsSource) NewsItem {
	item := NewsItem{
		ID:              entry.Link,
		Headline:        entry.Title,
		Summary:         entry.Description,
		SourceID:        src.ID,
		SourceURL:       entry.Link,
		PublishedAt:     entry.Published,
		PublishedParsed: entry.PublishedAt,
	}

	if item.ID == "" {
		item.ID = n.synthesizeID(src.ID, entry.Title)
	}

	if entry.Categories != nil {
		item.Topics = entry.Categories
	}

	if src.Type == source.TrustClassFactCheck {
		item.Status = StatusVerified
		item.ConfidenceScore = factCheckBaselineConfidence
	} else {
		item.Status = StatusUnverified
		item.ConfidenceScore = 0
	}

	return item
}

// synthesizeID builds a stable identifier for entries that carry no link.
func (n *Normalizer) synthesizeID(sourceID, headline string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s", sourceID, headline)))
	return fmt.Sprintf("%s-%s", sourceID, hex.EncodeToString(hash[:8]))
}
