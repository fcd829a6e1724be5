package store

import (
	"context"
	"sync"

	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/models"
)

// fakeBackend is a controllable Backend for store and overlay tests
type fakeBackend struct {
	mu sync.Mutex

	listFn   func(ctx context.Context, f filter.Filter) ([]models.Task, error)
	createFn func(ctx context.Context, input models.TaskInput) (models.Task, error)
	updateFn func(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	toggleFn func(ctx context.Context, id string) (models.Task, error)
	deleteFn func(ctx context.Context, id string) error
	tagsFn   func(ctx context.Context) ([]string, error)

	listCalls   int
	createCalls int
	tagsCalls   int
}

func (b *fakeBackend) ListTasks(ctx context.Context, f filter.Filter) ([]models.Task, error) {
	b.mu.Lock()
	b.listCalls++
	fn := b.listFn
	b.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, f)
}

func (b *fakeBackend) CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error) {
	b.mu.Lock()
	b.createCalls++
	fn := b.createFn
	b.mu.Unlock()
	if fn == nil {
		return models.Task{}, nil
	}
	return fn(ctx, input)
}

func (b *fakeBackend) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if b.updateFn == nil {
		return models.Task{}, nil
	}
	return b.updateFn(ctx, id, patch)
}

func (b *fakeBackend) ToggleTask(ctx context.Context, id string) (models.Task, error) {
	if b.toggleFn == nil {
		return models.Task{}, nil
	}
	return b.toggleFn(ctx, id)
}

func (b *fakeBackend) DeleteTask(ctx context.Context, id string) error {
	if b.deleteFn == nil {
		return nil
	}
	return b.deleteFn(ctx, id)
}

func (b *fakeBackend) Tags(ctx context.Context) ([]string, error) {
	b.mu.Lock()
	b.tagsCalls++
	fn := b.tagsFn
	b.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (b *fakeBackend) Archive(ctx context.Context) ([]models.ArchiveGroup, error) {
	return nil, nil
}

func (b *fakeBackend) counts() (list, create, tags int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls, b.createCalls, b.tagsCalls
}
