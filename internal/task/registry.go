package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when a task identifier is unknown to the registry.
var ErrNotFound = errors.New("task not found")

// ErrTerminal is returned when a mutation targets a completed or failed task.
var ErrTerminal = errors.New("task is terminal")

// Registry is the shared task store. Writers go through the mutation methods;
// readers receive snapshot copies, so the status boundary never observes a
// task mid-update.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	ttl   time.Duration
}

// NewRegistry creates a registry that evicts terminal tasks after ttl.
// A non-positive ttl disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

// Add registers a new task. The registry owns the stored copy from here on.
func (r *Registry) Add(t *Task) error {
	if t == nil || t.ID == "" {
		return errors.New("task requires an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; ok {
		return fmt.Errorf("task %s already registered", t.ID)
	}
	r.tasks[t.ID] = t.Clone()
	return nil
}

// Get returns a snapshot of the task with the given id.
func (r *Registry) Get(id string) (*Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// List returns snapshots of all tasks ordered by creation time, newest first.
func (r *Registry) List() []*Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SetProcessing transitions the task into the processing state at progress 0.
func (r *Registry) SetProcessing(id string) error {
	return r.mutate(id, func(t *Task) error {
		t.Status = StatusProcessing
		t.Progress = 0
		return nil
	})
}

// SetProgress advances the task's progress checkpoint. Regressions are
// ignored so progress stays monotonic.
func (r *Registry) SetProgress(id string, progress int) error {
	return r.mutate(id, func(t *Task) error {
		if progress > t.Progress {
			t.Progress = progress
		}
		return nil
	})
}

// Complete marks the task completed at 100% with its output file.
func (r *Registry) Complete(id, outputFile string) error {
	return r.mutate(id, func(t *Task) error {
		t.Status = StatusCompleted
		t.Progress = 100
		t.OutputFile = outputFile
		t.finishedAt = time.Now().UTC()
		return nil
	})
}

// Fail marks the task failed with a message; progress stays frozen at its
// last checkpoint.
func (r *Registry) Fail(id, message string) error {
	return r.mutate(id, func(t *Task) error {
		t.Status = StatusError
		t.Error = message
		t.finishedAt = time.Now().UTC()
		return nil
	})
}

// AddWarning appends a warning. Warnings are the only mutation permitted on
// terminal tasks.
func (r *Registry) AddWarning(id, warning string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.Warnings = append(t.Warnings, warning)
	return nil
}

func (r *Registry) mutate(id string, fn func(*Task) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status.Terminal() {
		return fmt.Errorf("%w: %s", ErrTerminal, id)
	}
	return fn(t)
}

// StartJanitor launches a background sweep that evicts terminal tasks older
// than the registry TTL. It returns immediately when eviction is disabled.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				r.evictExpired(now)
			}
		}
	}()
}

func (r *Registry) evictExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, t := range r.tasks {
		if !t.Status.Terminal() || t.finishedAt.IsZero() {
			continue
		}
		if now.Sub(t.finishedAt) >= r.ttl {
			delete(r.tasks, id)
			evicted++
		}
	}
	return evicted
}
