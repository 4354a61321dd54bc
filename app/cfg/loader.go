package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version == "" {
		return "unknown"
	}
	return Version
}

type rawCfg struct {
	// Application configuration
	SourcesDir      string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing news source configuration files"`
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	CacheTTL        int    `long:"cache-ttl" env:"CACHE_TTL" default:"300" description:"Feed cache TTL in seconds"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"120" description:"Aggregation refresh interval in seconds"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Upstream fetch timeout in seconds"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for task processing"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Classifier configuration
	ClassifierAPIKey string `long:"classifier-api-key" env:"CLASSIFIER_API_KEY" description:"API key for the fact-check classifier service (optional, disables classification when empty)"`
	ClassifierURL    string `long:"classifier-url" env:"CLASSIFIER_URL" default:"https://api.openai.com/v1/chat/completions" description:"Chat completions endpoint for the fact-check classifier"`
	ClassifierModel  string `long:"classifier-model" env:"CLASSIFIER_MODEL" default:"gpt-4-turbo-preview" description:"Model used by the fact-check classifier"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsLens/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Kolkata)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourcesDir:       raw.SourcesDir,
		Port:             raw.Port,
		CacheTTL:         raw.CacheTTL,
		RefreshInterval:  raw.RefreshInterval,
		FetchTimeout:     raw.FetchTimeout,
		WorkerCount:      raw.WorkerCount,
		APIAccessKey:     raw.APIAccessKey,
		ClassifierAPIKey: raw.ClassifierAPIKey,
		ClassifierURL:    raw.ClassifierURL,
		ClassifierModel:  raw.ClassifierModel,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(cfg *Cfg) {
	globalCfg = cfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
