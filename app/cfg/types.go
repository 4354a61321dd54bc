package cfg

type Cfg struct {
	// Application configuration
	SourcesDir      string
	Port            string
	CacheTTL        int
	RefreshInterval int
	FetchTimeout    int
	WorkerCount     int
	APIAccessKey    string

	// Classifier configuration
	ClassifierAPIKey string
	ClassifierURL    string
	ClassifierModel  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
