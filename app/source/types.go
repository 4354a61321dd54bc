package source

// TrustClass is the static classification of a source that drives the
// default verification status assigned during normalization.
type TrustClass string

const (
	TrustClassFactCheck TrustClass = "factCheck"
	TrustClassNews      TrustClass = "news"
	TrustClassSocial    TrustClass = "social"
)

func (tc TrustClass) Valid() bool {
	switch tc {
	case TrustClassFactCheck, TrustClassNews, TrustClassSocial:
		return true
	}
	return false
}

// NewsSource is immutable reference data describing one upstream source.
// Loaded at startup, never mutated at runtime.
type NewsSource struct {
	ID          string     // Derived from filename (without .yml extension)
	Name        string     `yaml:"name"`
	URL         string     `yaml:"url"`
	Reliability int        `yaml:"reliability"` // 0-100 static trust prior
	Type        TrustClass `yaml:"type"`
	Settings    Settings   `yaml:"settings"`
}

type Settings struct {
	Enabled        bool `yaml:"enabled"`
	ExtractContent bool `yaml:"extract_content"`
	Timeout        int  `yaml:"timeout"` // seconds
}
