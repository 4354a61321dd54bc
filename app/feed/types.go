package feed

import "time"

// RawEntry is one entry of an upstream feed document, in the shape shared
// by every source regardless of its native format.
type RawEntry struct {
	Title       string
	Description string
	Link        string
	Published   string     // Raw upstream value, kept even when unparseable
	PublishedAt *time.Time // nil when the upstream date could not be parsed
	Categories  []string
}
