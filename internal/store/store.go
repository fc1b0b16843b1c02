package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/model"
	"github.com/google/uuid"
)

// SnapshotKey is the key the whole collection is persisted under
const SnapshotKey = "tasks"

// KV is the shared key-value store the snapshot is written to
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store owns the task collection. Every mutation persists the full
// collection before it becomes visible.
type Store struct {
	mu      sync.RWMutex
	kv      KV
	tasks   []model.Task
	version uint64

	now   func() time.Time
	newID func() string
	log   *logger.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides task id generation
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger; the global logger is used otherwise
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty store backed by kv. Call Load to read the snapshot.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		tasks: []model.Task{},
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		log:   logger.WithFields(logger.F("component", "store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted snapshot.
// A missing, unreadable or corrupt snapshot yields an empty collection.
func (s *Store) Load(ctx context.Context) {
	tasks := s.readSnapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.version++
}

func (s *Store) readSnapshot(ctx context.Context) []model.Task {
	data, ok, err := s.kv.Get(ctx, SnapshotKey)
	if err != nil {
		s.log.Warn("Failed to read snapshot, starting empty", logger.F("error", err))
		return []model.Task{}
	}
	if !ok {
		s.log.Info("No snapshot found, starting empty")
		return []model.Task{}
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.log.Warn("Snapshot is corrupt, starting empty", logger.F("error", err), logger.F("bytes", len(data)))
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	s.log.Debug("Snapshot loaded", logger.F("tasks", len(tasks)))
	return tasks
}

// Add validates and appends a new task
func (s *Store) Add(ctx context.Context, description string, priority model.Priority, due model.Date) (model.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Task{}, &ValidationError{Field: "description"}
	}
	if !priority.Valid() {
		return model.Task{}, &ValidationError{Field: "priority"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := model.Task{
		ID:          s.newID(),
		Description: description,
		Priority:    priority,
		DueDate:     due,
		Completed:   false,
		CreatedAt:   s.now().UTC(),
	}

	next := make([]model.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, task)

	if err := s.commit(ctx, next); err != nil {
		return model.Task{}, err
	}

	s.log.Debug("Task added", logger.F("id", task.ID), logger.F("priority", task.Priority))
	return task, nil
}

// Remove deletes the task with id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.log.Debug("Task removed", logger.F("id", id))
	return true, nil
}

// ToggleComplete flips the completed flag. Unknown ids are ignored.
func (s *Store) ToggleComplete(ctx context.Context, id string) (bool, error) {
	return s.update(ctx, id, func(t *model.Task) {
		t.Completed = !t.Completed
	})
}

// Reprioritize moves a task to another priority. An invalid priority is
// rejected with ErrInvalidPriority; unknown ids are ignored.
func (s *Store) Reprioritize(ctx context.Context, id string, priority model.Priority) (bool, error) {
	if !priority.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	return s.update(ctx, id, func(t *model.Task) {
		t.Priority = priority
	})
}

func (s *Store) update(ctx context.Context, id string, mutate func(*model.Task)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Task, len(s.tasks))
	copy(next, s.tasks)
	mutate(&next[i])

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.log.Debug("Task updated", logger.F("id", id),
		logger.F("priority", next[i].Priority), logger.F("completed", next[i].Completed))
	return true, nil
}

// ReplaceAll swaps the whole collection, as done by import. The input must
// consist of task-shaped records with unique ids; otherwise an *ImportError
// is returned and the current collection is kept.
func (s *Store) ReplaceAll(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		return &ImportError{Index: -1, Reason: "expected a list of tasks"}
	}

	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		switch {
		case strings.TrimSpace(t.ID) == "":
			return &ImportError{Index: i, Reason: "missing id"}
		case strings.TrimSpace(t.Description) == "":
			return &ImportError{Index: i, Reason: "missing description"}
		case !t.Priority.Valid():
			return &ImportError{Index: i, Reason: fmt.Sprintf("unknown priority %q", t.Priority)}
		case seen[t.ID]:
			return &ImportError{Index: i, Reason: fmt.Sprintf("duplicate id %q", t.ID)}
		}
		seen[t.ID] = true
	}

	next := make([]model.Task, len(tasks))
	copy(next, tasks)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info("Collection replaced", logger.F("tasks", len(next)))
	return nil
}

// Snapshot returns a copy of the collection in store order
func (s *Store) Snapshot() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with id
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Resolve finds a task by full id or unique id prefix
func (s *Store) Resolve(ref string) (model.Task, bool) {
	if t, ok := s.Get(ref); ok {
		return t, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var match model.Task
	found := 0
	for _, t := range s.tasks {
		if ref != "" && strings.HasPrefix(t.ID, ref) {
			match = t
			found++
		}
	}
	return match, found == 1
}

// Len returns the number of tasks
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Version increments on every successful mutation
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// commit persists next and then makes it current. Must be called with mu held.
func (s *Store) commit(ctx context.Context, next []model.Task) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.kv.Put(ctx, SnapshotKey, data); err != nil {
		s.log.Error("Failed to persist snapshot", logger.F("error", err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.tasks = next
	s.version++
	return nil
}
