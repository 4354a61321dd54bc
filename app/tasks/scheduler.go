package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/newslens/newslens/app/cfg"
	"github.com/newslens/newslens/app/classify"
	"github.com/newslens/newslens/app/feed"
	"github.com/newslens/newslens/app/news"
	"github.com/newslens/newslens/app/source"
	"github.com/newslens/newslens/app/store"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	aggregator       *news.Aggregator
	batchStore       *store.Store
	sourceCache      *source.SourceCache
	classifier       *classify.Client // nil when classification is not configured
	httpClient       *http.Client
	contentExtractor *feed.ContentExtractor
	userAgent        string
	fetchTimeout     time.Duration
	interval         time.Duration
	workerCount      int
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface
	refreshInFlight  atomic.Bool
}

func NewScheduler(aggregator *news.Aggregator, batchStore *store.Store, sourceCache *source.SourceCache,
	classifier *classify.Client, httpClient *http.Client, contentExtractor *feed.ContentExtractor) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		aggregator:       aggregator,
		batchStore:       batchStore,
		sourceCache:      sourceCache,
		classifier:       classifier,
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		userAgent:        cfg.UserAgent,
		fetchTimeout:     time.Duration(cfg.FetchTimeout) * time.Second,
		interval:         time.Duration(cfg.RefreshInterval) * time.Second,
		workerCount:      cfg.WorkerCount,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueCycleTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueCycleTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueRefresh schedules an aggregation cycle outside the regular tick.
func (s *Scheduler) EnqueueRefresh() error {
	return s.EnqueueTask(NewRefreshBatchTask(s.aggregator, s.batchStore, &s.refreshInFlight))
}

// EnqueueClassify schedules a fact-check of one item from the current batch.
func (s *Scheduler) EnqueueClassify(itemID string) error {
	if s.classifier == nil {
		return fmt.Errorf("classifier is not configured")
	}
	return s.EnqueueTask(NewClassifyItemTask(itemID, s.classifier, s.batchStore))
}

func (s *Scheduler) enqueueCycleTasks() {
	if err := s.EnqueueRefresh(); err != nil {
		slog.Warn("Failed to enqueue RefreshBatchTask", "error", err)
		return
	}

	for _, src := range s.sourceCache.GetEnabledSources() {
		if !src.Settings.ExtractContent {
			continue
		}

		extractTask := NewExtractContentTask(src, s.httpClient, s.contentExtractor, s.batchStore, s.userAgent, s.fetchTimeout)
		if err := s.EnqueueTask(extractTask); err != nil {
			slog.Warn("Failed to enqueue ExtractContentTask", "source", src.ID, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "subject", task.GetSubject(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
