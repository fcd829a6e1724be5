package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/validation"
	"go.uber.org/zap"
)

// Overlay makes task creation feel instantaneous: a temporary pending entry
// is shown immediately while the real creation round-trips, then replaced
// in place on success or rolled back after a short delay on failure.
type Overlay struct {
	store *TaskStore
	// Delay before a failed entry is removed, so an exit transition can play
	rollbackDelay time.Duration
	log           *zap.Logger

	mu      sync.Mutex
	entries []models.OptimisticTask
}

// NewOverlay wraps the store. rollbackDelay bounds how long a failed
// optimistic entry lingers in the Exiting state.
func NewOverlay(store *TaskStore, rollbackDelay time.Duration, log *zap.Logger) *Overlay {
	return &Overlay{
		store:         store,
		rollbackDelay: rollbackDelay,
		log:           log,
	}
}

// Create shows an optimistic pending task immediately, then issues the real
// creation call directly — bypassing the store's refresh-on-success path so
// the entry keeps its list position. On success the temporary entry is
// replaced in place by the confirmed task; on failure it is removed after
// the rollback delay and the error surfaced for manual retry.
func (o *Overlay) Create(ctx context.Context, input models.TaskInput) (models.Task, error) {
	if err := validation.ValidateInput(&input); err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	tempID := models.NewTempID()
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	temp := models.OptimisticTask{
		Task: models.Task{
			ID:        tempID,
			Title:     input.Title,
			Priority:  priority,
			Tags:      models.NormalizeTags(input.Tags),
			Memo:      input.Memo,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Pending: true,
	}

	o.mu.Lock()
	o.entries = append([]models.OptimisticTask{temp}, o.entries...)
	o.mu.Unlock()

	o.store.errors.Clear()
	confirmed, err := o.store.backend.CreateTask(ctx, input)
	if err != nil {
		o.markExiting(tempID)
		time.AfterFunc(o.rollbackDelay, func() {
			o.remove(tempID)
		})
		o.store.errors.SetError(err, func(ctx context.Context) error {
			_, retryErr := o.Create(ctx, input)
			return retryErr
		})
		return models.Task{}, fmt.Errorf("optimistic create failed: %w", err)
	}

	// The overlay stays the source of truth for this entry until the next
	// natural refresh; no forced store refresh, so the position is stable.
	o.confirm(tempID, confirmed)
	o.store.refreshTags(ctx)
	return confirmed, nil
}

// Display is the merged list exposed to the UI: optimistic entries first,
// then authoritative tasks whose ids are not already represented.
func (o *Overlay) Display() []models.OptimisticTask {
	o.mu.Lock()
	overlay := make([]models.OptimisticTask, len(o.entries))
	copy(overlay, o.entries)
	o.mu.Unlock()

	seen := make(map[string]bool, len(overlay))
	for _, entry := range overlay {
		seen[entry.ID] = true
	}

	for _, task := range o.store.Tasks() {
		if seen[task.ID] {
			continue
		}
		overlay = append(overlay, models.OptimisticTask{Task: task})
	}
	return overlay
}

// Prune drops confirmed entries that the authoritative list now carries.
// Called after a natural refresh; pending entries are never pruned.
func (o *Overlay) Prune() {
	authoritative := make(map[string]bool)
	for _, task := range o.store.Tasks() {
		authoritative[task.ID] = true
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	kept := o.entries[:0]
	for _, entry := range o.entries {
		if !entry.Pending && authoritative[entry.ID] {
			continue
		}
		kept = append(kept, entry)
	}
	o.entries = kept
}

// confirm replaces the temporary entry in place with the server task
func (o *Overlay) confirm(tempID string, confirmed models.Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.entries {
		if o.entries[i].ID == tempID {
			o.entries[i] = models.OptimisticTask{Task: confirmed}
			return
		}
	}
	// Entry already rolled back; nothing to replace
	o.log.Debug("optimistic_confirm_missed", zap.String("temp_id", tempID))
}

func (o *Overlay) markExiting(tempID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.entries {
		if o.entries[i].ID == tempID {
			o.entries[i].Exiting = true
			return
		}
	}
}

func (o *Overlay) remove(tempID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	kept := o.entries[:0]
	for _, entry := range o.entries {
		if entry.ID == tempID {
			continue
		}
		kept = append(kept, entry)
	}
	o.entries = kept
}
