package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rinksync/core/archive"
	"rinksync/core/calendar"
	"rinksync/core/event"
	"rinksync/core/feed"
	"rinksync/core/metrics"
	"rinksync/core/reconcile"
	"rinksync/feature/schedule/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RunSummary is the caller-facing outcome of one reconciliation run.
type RunSummary struct {
	RunID       string           `json:"run_id"`
	Trigger     string           `json:"trigger"`
	Status      string           `json:"status"`
	Error       string           `json:"error,omitempty"`
	Result      reconcile.Result `json:"result"`
	WindowStart time.Time        `json:"window_start"`
	WindowEnd   time.Time        `json:"window_end"`
	StartedAt   time.Time        `json:"started_at"`
	DurationMs  int64            `json:"duration_ms"`
}

// Service orchestrates reconciliation runs: load feed, load calendar
// window, plan, apply, record. Overlapping triggers (cron tick plus a
// manual request) coalesce into a single run through singleflight; the
// target calendar has no transactional isolation, so at most one run
// may be in flight.
type Service struct {
	cfg      Config
	feed     feed.Loader
	cal      calendar.Client
	engine   *reconcile.Engine
	store    *Store            // optional
	archiver *archive.Archiver // optional
	metrics  *metrics.Metrics  // optional
	logger   *zap.Logger
	now      func() time.Time

	sf   singleflight.Group
	mu   sync.RWMutex
	last *RunSummary
}

// NewService creates the run orchestrator. store, archiver and metrics
// may be nil; the service degrades to running without them.
func NewService(cfg Config, loader feed.Loader, cal calendar.Client, store *Store, archiver *archive.Archiver, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	detector := reconcile.Detector{
		Prefix:    cfg.TitlePrefix,
		Tolerance: cfg.Tolerance(),
	}
	engine := reconcile.NewEngine(reconcile.Scheme(cfg.IdentityScheme), detector, logger)

	return &Service{
		cfg:      cfg,
		feed:     loader,
		cal:      cal,
		engine:   engine,
		store:    store,
		archiver: archiver,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one reconciliation run. Concurrent callers share a
// single execution and receive the same summary.
func (s *Service) Run(ctx context.Context, trigger string) (*RunSummary, error) {
	v, err, _ := s.sf.Do("run", func() (any, error) {
		return s.run(ctx, trigger)
	})
	summary, _ := v.(*RunSummary)
	return summary, err
}

// Last returns the summary of the most recent run in this process, or
// nil when none has happened yet.
func (s *Service) Last() *RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Runs returns persisted run history, most recent first.
func (s *Service) Runs(ctx context.Context, limit int) ([]models.RunRecord, error) {
	return s.store.Recent(ctx, limit)
}

func (s *Service) run(ctx context.Context, trigger string) (*RunSummary, error) {
	started := s.now()
	from, to := s.cfg.Window(started)

	summary := &RunSummary{
		RunID:       uuid.NewString(),
		Trigger:     trigger,
		WindowStart: from,
		WindowEnd:   to,
		StartedAt:   started,
	}
	logg := s.logger.With(zap.String("run_id", summary.RunID), zap.String("trigger", trigger))

	// A failed load aborts before anything touches the calendar. An
	// empty feed does not: it legitimately means every managed event
	// should go. The loader keeps the two distinct by construction.
	sources, raw, err := s.feed.Load(ctx)
	if err != nil {
		return s.fail(ctx, summary, logg, fmt.Errorf("feed load failed: %w", err))
	}

	if s.archiver != nil {
		if _, aerr := s.archiver.Store(ctx, raw, started); aerr != nil {
			logg.Warn("snapshot archive failed", zap.Error(aerr))
		}
	}

	targets, err := s.cal.ListWindow(ctx, from, to)
	if err != nil {
		return s.fail(ctx, summary, logg, fmt.Errorf("calendar list failed: %w", err))
	}

	// Targets were already window-filtered by the calendar query; the
	// feed was not. A feed event outside the window must not be created,
	// or the next run would never see its target and create it again.
	sources = FilterWindow(sources, from, to)

	plan := s.engine.Plan(sources, targets)
	logg.Info("run planned",
		zap.Int("sources", len(sources)),
		zap.Int("targets", len(targets)),
		zap.Int("actions", len(plan.Actions)),
	)

	result, err := reconcile.Apply(ctx, s.cal, plan, reconcile.Options{
		Confirmed: true,
		Delay:     s.cfg.MutationDelay(),
	}, logg)
	if err != nil {
		// Only context cancellation aborts an apply mid-way.
		return s.fail(ctx, summary, logg, fmt.Errorf("apply aborted: %w", err))
	}

	summary.Status = models.StatusOK
	summary.Result = result
	summary.DurationMs = s.now().Sub(started).Milliseconds()

	managed := result.Created + result.Updated + result.Migrated + result.Unchanged
	if s.metrics != nil {
		s.metrics.RecordRun(result, managed, time.Duration(summary.DurationMs)*time.Millisecond)
	}
	s.record(ctx, summary, logg)

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	logg.Info("run completed",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("migrated", result.Migrated),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("removed", result.Removed),
		zap.Int("failed", result.Failed),
		zap.Int64("duration_ms", summary.DurationMs),
	)
	return summary, nil
}

func (s *Service) fail(ctx context.Context, summary *RunSummary, logg *zap.Logger, err error) (*RunSummary, error) {
	summary.Status = models.StatusFailed
	summary.Error = err.Error()
	summary.DurationMs = s.now().Sub(summary.StartedAt).Milliseconds()

	if s.metrics != nil {
		s.metrics.RecordFailure()
	}
	s.record(ctx, summary, logg)

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	logg.Error("run aborted", zap.Error(err))
	return summary, err
}

func (s *Service) record(ctx context.Context, summary *RunSummary, logg *zap.Logger) {
	rec := &models.RunRecord{
		RunID:       summary.RunID,
		Trigger:     summary.Trigger,
		Status:      summary.Status,
		Error:       summary.Error,
		Created:     summary.Result.Created,
		Updated:     summary.Result.Updated,
		Migrated:    summary.Result.Migrated,
		Unchanged:   summary.Result.Unchanged,
		Removed:     summary.Result.Removed,
		Collisions:  summary.Result.SourceCollisions,
		Duplicates:  summary.Result.DuplicateTargets,
		Failed:      summary.Result.Failed,
		WindowStart: summary.WindowStart,
		WindowEnd:   summary.WindowEnd,
		DurationMs:  summary.DurationMs,
	}
	if err := s.store.Record(ctx, rec); err != nil {
		logg.Warn("run record not persisted", zap.Error(err))
	}
}

// FilterWindow keeps the sources the calendar listing for [from, to)
// could have returned a counterpart for. The listing's lower bound cuts
// on an event's end, not its start, so an event that began before from
// but is still running stays in: dropping it would leave its calendar
// counterpart unmatched and planned for deletion mid-event. The upper
// bound cuts on start, matching the listing's timeMax.
func FilterWindow(sources []event.Source, from, to time.Time) []event.Source {
	filtered := make([]event.Source, 0, len(sources))
	for _, src := range sources {
		if !src.EndOrDefault().After(from) || !src.Start.Before(to) {
			continue
		}
		filtered = append(filtered, src)
	}
	return filtered
}
