// Package session assembles the engine: task store, optimistic overlay,
// filter persistence, archive views, and error/retry state, behind the
// surface a UI layer consumes. Dependencies are injected explicitly; one
// Session is constructed per application run.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/archive"
	"github.com/taskdeck/taskdeck/internal/errclass"
	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/netmon"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/store"
	"go.uber.org/zap"
)

// Options configures a Session
type Options struct {
	FilterKey     string
	RollbackDelay time.Duration
	// HealthInterval enables the connectivity monitor when > 0 and the
	// backend exposes a health probe
	HealthInterval time.Duration
	// RetryPolicy, when MaxAttempts > 0, auto-retries network failures
	// once connectivity returns
	RetryPolicy errclass.Policy
}

// Session is the engine's public surface: reactive state snapshots plus
// imperative operations.
type Session struct {
	backend store.Backend
	kv      storage.KV
	log     *zap.Logger
	opts    Options

	store   *store.TaskStore
	overlay *store.Overlay
	errors  *errclass.RetryController
	monitor *netmon.Monitor

	mu          sync.Mutex
	current     filter.Filter
	groups      []models.ArchiveGroup
	subscribers []func()
}

// New builds a session, restoring the persisted filter preference
func New(backend store.Backend, kv storage.KV, log *zap.Logger, opts Options) *Session {
	if opts.FilterKey == "" {
		opts.FilterKey = "taskdeck.filter"
	}
	if opts.RollbackDelay <= 0 {
		opts.RollbackDelay = 300 * time.Millisecond
	}

	errors := errclass.NewRetryController(log)
	taskStore := store.NewTaskStore(backend, errors, log)

	s := &Session{
		backend: backend,
		kv:      kv,
		log:     log,
		opts:    opts,
		store:   taskStore,
		overlay: store.NewOverlay(taskStore, opts.RollbackDelay, log),
		errors:  errors,
		current: filter.Load(kv, opts.FilterKey, filter.Filter{}, log),
	}
	taskStore.SetFilter(s.current)

	if prober, ok := backend.(netmon.Prober); ok && opts.HealthInterval > 0 {
		s.monitor = netmon.NewMonitor(prober, opts.HealthInterval, log)
	}
	return s
}

// StartMonitor begins background connectivity probing, when configured.
// If a retry policy is set, regained connectivity auto-retries a pending
// network failure.
func (s *Session) StartMonitor(ctx context.Context) {
	if s.monitor == nil {
		return
	}
	if s.opts.RetryPolicy.MaxAttempts > 0 {
		s.monitor.OnChange(func(online bool) {
			if !online {
				return
			}
			if err := errclass.AutoRetry(ctx, s.errors, s.opts.RetryPolicy); err != nil {
				s.log.Warn("auto_retry_exhausted", zap.Error(err))
			}
			s.notify()
		})
	}
	s.monitor.Start(ctx)
}

// StopMonitor halts connectivity probing
func (s *Session) StopMonitor() {
	if s.monitor != nil {
		s.monitor.Stop()
	}
}

// Online reports backend reachability; true when no monitor is configured
func (s *Session) Online() bool {
	if s.monitor == nil {
		return true
	}
	return s.monitor.Online()
}

// Tasks returns the merged display list under the active filter:
// optimistic entries first, then authoritative tasks.
func (s *Session) Tasks() []models.OptimisticTask {
	f := s.Filter()
	display := s.overlay.Display()
	result := make([]models.OptimisticTask, 0, len(display))
	for _, entry := range display {
		if f.Matches(entry.Task) {
			result = append(result, entry)
		}
	}
	return result
}

// Loading is true only for the very first load
func (s *Session) Loading() bool { return s.store.Loading() }

// Refreshing is true during visible background resyncs
func (s *Session) Refreshing() bool { return s.store.Refreshing() }

// Err returns the current ErrorState, or nil
func (s *Session) Err() *errclass.ErrorState { return s.errors.Current() }

// Filter returns the active filter
func (s *Session) Filter() filter.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetFilter replaces the filter wholesale, persists it, and refetches
func (s *Session) SetFilter(ctx context.Context, f filter.Filter) error {
	s.mu.Lock()
	s.current = f
	s.mu.Unlock()

	filter.Save(s.kv, s.opts.FilterKey, f, s.log)
	s.store.SetFilter(f)
	err := s.Refresh(ctx, false)
	s.notify()
	return err
}

// ClearFilter resets to the default (empty) filter. Idempotent.
func (s *Session) ClearFilter(ctx context.Context) error {
	return s.SetFilter(ctx, filter.Filter{})
}

// Refresh resynchronizes the authoritative list and prunes confirmed
// optimistic entries the server list now carries.
func (s *Session) Refresh(ctx context.Context, silent bool) error {
	err := s.store.Refresh(ctx, silent)
	if err == nil {
		s.overlay.Prune()
	}
	s.notify()
	return err
}

// Create adds a task optimistically; it appears immediately and is
// reconciled (or rolled back) when the backend answers.
func (s *Session) Create(ctx context.Context, input models.TaskInput) (models.Task, error) {
	task, err := s.overlay.Create(ctx, input)
	s.notify()
	return task, err
}

// Update applies a partial change to a task
func (s *Session) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.store.Update(ctx, id, patch)
	s.notify()
	return task, err
}

// ToggleCompletion flips a task's completion state
func (s *Session) ToggleCompletion(ctx context.Context, id string) (models.Task, error) {
	task, err := s.store.ToggleCompletion(ctx, id)
	s.notify()
	return task, err
}

// Delete removes a task permanently
func (s *Session) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	s.notify()
	return err
}

// RetryLastAction re-attempts the last failed operation, if retryable
func (s *Session) RetryLastAction(ctx context.Context) error {
	err := s.errors.RetryLastAction(ctx)
	s.notify()
	return err
}

// DismissError clears the current error without retrying
func (s *Session) DismissError() {
	s.errors.Clear()
	s.notify()
}

// LoadArchive fetches the archive groups and caches them for the derived
// accessors below.
func (s *Session) LoadArchive(ctx context.Context) ([]models.ArchiveGroup, error) {
	groups, err := s.store.FetchArchive(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	s.notify()
	return groups, nil
}

// FilteredGroups returns the archive view under the active filter
func (s *Session) FilteredGroups() []models.ArchiveGroup {
	s.mu.Lock()
	groups := s.groups
	s.mu.Unlock()
	return archive.FilteredGroups(groups, s.Filter())
}

// AvailableTags returns the tag union across the cached archive
func (s *Session) AvailableTags() []string {
	s.mu.Lock()
	groups := s.groups
	s.mu.Unlock()
	return archive.AvailableTags(groups)
}

// ArchiveTotals summarizes the cached archive for "X of Y" displays
func (s *Session) ArchiveTotals() archive.Totals {
	s.mu.Lock()
	groups := s.groups
	s.mu.Unlock()
	return archive.ComputeTotals(groups, archive.FilteredGroups(groups, s.Filter()))
}

// Subscribe registers a change callback so a UI can re-render. Callbacks
// run synchronously after each state change; keep them cheap.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) notify() {
	s.mu.Lock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}
