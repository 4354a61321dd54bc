package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newslens/newslens/app/api"
	"github.com/newslens/newslens/app/cache"
	"github.com/newslens/newslens/app/cfg"
	"github.com/newslens/newslens/app/classify"
	"github.com/newslens/newslens/app/feed"
	"github.com/newslens/newslens/app/news"
	"github.com/newslens/newslens/app/source"
	"github.com/newslens/newslens/app/store"
	"github.com/newslens/newslens/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	slog.Info("Starting NewsLens server", "version", appConfig.Version)

	// Load source configurations
	sourceCache := source.NewSourceCache(appConfig.SourcesDir)
	if err := sourceCache.Run(); err != nil {
		log.Fatalf("Failed to load source configurations: %v", err)
	}
	slog.Info("Source configurations loaded", "total", sourceCache.GetSourceCount(), "enabled", len(sourceCache.GetEnabledSources()))

	// Initialize core components
	httpClient := &http.Client{}
	feedCache := cache.NewCache[[]feed.RawEntry](time.Duration(appConfig.CacheTTL) * time.Second)
	fetcher := feed.NewFetcher(httpClient, feedCache, appConfig.UserAgent, time.Duration(appConfig.FetchTimeout)*time.Second)
	aggregator := news.NewAggregator(fetcher, news.NewNormalizer(), sourceCache)
	batchStore := store.NewStore()
	contentExtractor := feed.NewContentExtractor()

	var classifier *classify.Client
	if appConfig.ClassifierAPIKey != "" {
		classifier = classify.NewClient(appConfig.ClassifierAPIKey, appConfig.ClassifierURL, appConfig.ClassifierModel)
		slog.Info("Fact-check classifier enabled", "model", appConfig.ClassifierModel)
	} else {
		slog.Info("Fact-check classifier disabled (CLASSIFIER_API_KEY not set)")
	}

	// Initialize and start scheduler
	slog.Info("Starting background scheduler", "workers", appConfig.WorkerCount, "refresh_interval", appConfig.RefreshInterval)
	scheduler := tasks.NewScheduler(aggregator, batchStore, sourceCache, classifier, httpClient, contentExtractor)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	apiHandler := api.NewHandler(batchStore, sourceCache, scheduler)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("NewsLens server shutdown complete")
}
