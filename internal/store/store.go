// Package store owns the authoritative task list fetched from the backend
// and the optimistic overlay layered on top of it.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskdeck/taskdeck/internal/errclass"
	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/validation"
	"go.uber.org/zap"
)

// Backend is the slice of the task API the store depends on
type Backend interface {
	ListTasks(ctx context.Context, f filter.Filter) ([]models.Task, error)
	CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	ToggleTask(ctx context.Context, id string) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Tags(ctx context.Context) ([]string, error)
	Archive(ctx context.Context) ([]models.ArchiveGroup, error)
}

// Phase is the load-phase state machine:
// Idle -> InitialLoad -> Ready, with Ready -> Refreshing -> Ready as a
// sub-transition. Silent refreshes stay in Ready.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitialLoad
	PhaseReady
	PhaseRefreshing
)

// TaskStore owns the authoritative list of tasks. All mutating operations
// go through the backend first and resynchronize afterwards.
type TaskStore struct {
	backend Backend
	errors  *errclass.RetryController
	log     *zap.Logger

	mu         sync.Mutex
	tasks      []models.Task
	tags       []string
	activeF    filter.Filter
	phase      Phase
	loadedOnce bool

	// Refresh responses carry the generation of the request that started
	// them; a response from a superseded refresh is discarded so a stale
	// result never regresses state. visibleGen tracks the newest non-silent
	// request so only its completion resets the phase.
	nextGen    uint64
	appliedGen uint64
	visibleGen uint64

	// Serializes update/toggle/delete per task id so the final state
	// reflects the last initiated operation, not the last to resolve.
	idLocks sync.Map
}

// NewTaskStore creates a store in the Idle phase
func NewTaskStore(backend Backend, errors *errclass.RetryController, log *zap.Logger) *TaskStore {
	return &TaskStore{
		backend: backend,
		errors:  errors,
		log:     log,
	}
}

// Tasks returns a snapshot of the authoritative list
func (s *TaskStore) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot
}

// KnownTags returns the last fetched tag metadata
func (s *TaskStore) KnownTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]string, len(s.tags))
	copy(snapshot, s.tags)
	return snapshot
}

// Phase returns the current load phase
func (s *TaskStore) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Loading is true only during the very first load
func (s *TaskStore) Loading() bool {
	return s.Phase() == PhaseInitialLoad
}

// Refreshing is true during visible background resyncs
func (s *TaskStore) Refreshing() bool {
	return s.Phase() == PhaseRefreshing
}

// SetFilter replaces the active server-side filter. The caller refreshes
// afterwards to apply it.
func (s *TaskStore) SetFilter(f filter.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeF = f
}

// ActiveFilter returns the filter used for backend fetches
func (s *TaskStore) ActiveFilter() filter.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeF
}

// Refresh fetches the current tasks under the active filter. On success the
// authoritative list is replaced and any prior ErrorState cleared; on failure
// the previous list is preserved and the shared ErrorState is set. With silent, neither loading nor
// refreshing indicators are raised.
func (s *TaskStore) Refresh(ctx context.Context, silent bool) error {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	f := s.activeF
	if !silent {
		s.visibleGen = gen
		if s.loadedOnce {
			s.phase = PhaseRefreshing
		} else {
			s.phase = PhaseInitialLoad
		}
	}
	s.mu.Unlock()

	tasks, err := s.backend.ListTasks(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Only the newest visible request may reset the phase; an older
	// response landing while a newer one is in flight leaves the
	// indicator up.
	if !silent && gen >= s.visibleGen {
		if s.loadedOnce || err == nil {
			s.phase = PhaseReady
		} else {
			s.phase = PhaseIdle
		}
	}

	if err != nil {
		s.errors.SetError(err, func(ctx context.Context) error {
			return s.Refresh(ctx, silent)
		})
		return fmt.Errorf("refresh failed: %w", err)
	}

	if gen < s.appliedGen {
		s.log.Debug("stale_refresh_discarded", zap.Uint64("generation", gen))
		return nil
	}
	s.appliedGen = gen
	s.tasks = tasks
	s.loadedOnce = true
	s.errors.Clear()
	return nil
}

// Create sends a creation request. On success the confirmed task is merged
// in and tag metadata refreshed; on failure the error is captured into the
// shared ErrorState and re-raised so the caller can roll back.
func (s *TaskStore) Create(ctx context.Context, input models.TaskInput) (models.Task, error) {
	if err := validation.ValidateInput(&input); err != nil {
		return models.Task{}, err
	}

	s.errors.Clear()
	task, err := s.backend.CreateTask(ctx, input)
	if err != nil {
		s.errors.SetError(err, func(ctx context.Context) error {
			_, retryErr := s.Create(ctx, input)
			return retryErr
		})
		return models.Task{}, fmt.Errorf("create failed: %w", err)
	}

	s.mu.Lock()
	s.mergeTask(task)
	s.mu.Unlock()

	s.refreshTags(ctx)
	return task, nil
}

// Update applies a partial change server-side, then resynchronizes with a
// silent full refresh. Local state is untouched on failure.
func (s *TaskStore) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if err := validation.ValidatePatch(&patch); err != nil {
		return models.Task{}, err
	}

	unlock := s.lockID(id)
	defer unlock()

	s.errors.Clear()
	task, err := s.backend.UpdateTask(ctx, id, patch)
	if err != nil {
		s.errors.SetError(err, func(ctx context.Context) error {
			_, retryErr := s.Update(ctx, id, patch)
			return retryErr
		})
		return models.Task{}, fmt.Errorf("update failed: %w", err)
	}

	if refreshErr := s.Refresh(ctx, true); refreshErr != nil {
		s.log.Warn("post_update_refresh_failed", zap.String("task_id", id), zap.Error(refreshErr))
	}
	return task, nil
}

// ToggleCompletion flips completion server-side; the backend sets or clears
// the completion timestamp. Same refresh and error contract as Update.
func (s *TaskStore) ToggleCompletion(ctx context.Context, id string) (models.Task, error) {
	unlock := s.lockID(id)
	defer unlock()

	s.errors.Clear()
	task, err := s.backend.ToggleTask(ctx, id)
	if err != nil {
		s.errors.SetError(err, func(ctx context.Context) error {
			_, retryErr := s.ToggleCompletion(ctx, id)
			return retryErr
		})
		return models.Task{}, fmt.Errorf("toggle failed: %w", err)
	}

	if refreshErr := s.Refresh(ctx, true); refreshErr != nil {
		s.log.Warn("post_toggle_refresh_failed", zap.String("task_id", id), zap.Error(refreshErr))
	}
	return task, nil
}

// Delete removes the task server-side. On failure the task stays in place.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	unlock := s.lockID(id)
	defer unlock()

	s.errors.Clear()
	if err := s.backend.DeleteTask(ctx, id); err != nil {
		s.errors.SetError(err, func(ctx context.Context) error {
			return s.Delete(ctx, id)
		})
		return fmt.Errorf("delete failed: %w", err)
	}

	if refreshErr := s.Refresh(ctx, true); refreshErr != nil {
		s.log.Warn("post_delete_refresh_failed", zap.String("task_id", id), zap.Error(refreshErr))
	}
	return nil
}

// FetchArchive retrieves the date-grouped completed tasks
func (s *TaskStore) FetchArchive(ctx context.Context) ([]models.ArchiveGroup, error) {
	s.errors.Clear()
	groups, err := s.backend.Archive(ctx)
	if err != nil {
		s.errors.SetError(err, func(ctx context.Context) error {
			_, retryErr := s.FetchArchive(ctx)
			return retryErr
		})
		return nil, fmt.Errorf("archive fetch failed: %w", err)
	}
	return groups, nil
}

// mergeTask inserts or replaces a confirmed task, newest first.
// Caller holds s.mu.
func (s *TaskStore) mergeTask(task models.Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
}

// refreshTags updates tag metadata, best-effort
func (s *TaskStore) refreshTags(ctx context.Context) {
	tags, err := s.backend.Tags(ctx)
	if err != nil {
		s.log.Debug("tag_refresh_failed", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.tags = tags
	s.mu.Unlock()
}

func (s *TaskStore) lockID(id string) func() {
	value, _ := s.idLocks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
