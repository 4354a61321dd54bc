package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

type SourceCache struct {
	sourcesDir string
	cache      map[string]*NewsSource
	mu         sync.RWMutex
}

func NewSourceCache(sourcesDir string) *SourceCache {
	return &SourceCache{
		sourcesDir: sourcesDir,
		cache:      make(map[string]*NewsSource),
	}
}

// Run loads every source configuration file from the sources directory.
// When the directory does not exist, the bundled default sources are used
// instead so the service can start without any local configuration.
func (sc *SourceCache) Run() error {
	if _, err := os.Stat(sc.sourcesDir); os.IsNotExist(err) {
		sc.loadDefaults()
		slog.Info("Sources directory not found, using bundled default sources", "dir", sc.sourcesDir, "count", sc.GetSourceCount())
		return nil
	}

	files, err := filepath.Glob(filepath.Join(sc.sourcesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		sourceID := fileName[:len(fileName)-4] // Remove .yml extension

		src, err := sc.LoadSource(sourceID)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Source configuration loaded", "source", sourceID, "type", string(src.Type), "enabled", src.Settings.Enabled)
	}

	return nil
}

func (sc *SourceCache) LoadSource(sourceID string) (*NewsSource, error) {
	configFile := sc.getSourceFilePath(sourceID)
	src, err := sc.parseSource(configFile)
	if err != nil {
		return nil, err
	}

	src.ID = sourceID

	if err := sc.validateSource(src); err != nil {
		return nil, fmt.Errorf("invalid source config %s: %w", configFile, err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache[src.ID] = src

	return src, nil
}

func (sc *SourceCache) GetSource(sourceID string) (*NewsSource, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	src, ok := sc.cache[sourceID]
	if !ok {
		return nil, fmt.Errorf("source with id '%s' not found", sourceID)
	}
	return src, nil
}

// GetSources returns all configured sources ordered by id.
func (sc *SourceCache) GetSources() []*NewsSource {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	sources := make([]*NewsSource, 0, len(sc.cache))
	for _, src := range sc.cache {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ID < sources[j].ID
	})
	return sources
}

func (sc *SourceCache) GetEnabledSources() []*NewsSource {
	sources := sc.GetSources()
	enabled := make([]*NewsSource, 0, len(sources))
	for _, src := range sources {
		if src.Settings.Enabled {
			enabled = append(enabled, src)
		}
	}
	return enabled
}

func (sc *SourceCache) GetSourceCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.cache)
}

func (sc *SourceCache) parseSource(configFile string) (*NewsSource, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var src NewsSource
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if src.Type == "" {
		src.Type = TrustClassNews
	}
	// Timeout stays 0 when unset; the fetcher then applies the configured
	// default fetch timeout.
	return &src, nil
}

func (sc *SourceCache) validateSource(src *NewsSource) error {
	if src == nil {
		return fmt.Errorf("source is nil")
	}

	requiredFields := map[string]string{
		"source id":   src.ID,
		"source name": src.Name,
		"source URL":  src.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if !src.Type.Valid() {
		return fmt.Errorf("invalid trust class: %s (valid: factCheck, news, social)", src.Type)
	}

	if src.Reliability < 0 || src.Reliability > 100 {
		return fmt.Errorf("reliability must be between 0 and 100, got %d", src.Reliability)
	}

	if src.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}

func (sc *SourceCache) loadDefaults() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for _, src := range DefaultSources() {
		sc.cache[src.ID] = src
	}
}

func (sc *SourceCache) getSourceFilePath(sourceID string) string {
	return filepath.Join(sc.sourcesDir, sourceID+".yml")
}
