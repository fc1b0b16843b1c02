// Package reconcile keeps rendered task lists in line with the task store and
// turns interaction events (complete, delete, drop, import, search) into
// store calls.
package reconcile

import (
	"context"
	"errors"

	"github.com/existflow/taskpad/internal/derive"
	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
)

// Column identifies a rendered list
type Column string

const (
	ColumnHigh      Column = "high"
	ColumnMedium    Column = "medium"
	ColumnLow       Column = "low"
	ColumnCompleted Column = "completed"
)

// Columns lists every rendered list in display order
var Columns = []Column{ColumnHigh, ColumnMedium, ColumnLow, ColumnCompleted}

// PriorityTag returns the priority a drop onto this column assigns, or ""
// for columns that carry no priority
func (c Column) PriorityTag() string {
	switch c {
	case ColumnHigh, ColumnMedium, ColumnLow:
		return string(c)
	}
	return ""
}

// Node is a rendered task
type Node interface {
	TaskID() string
	Description() string
	SetVisible(visible bool)
}

// List is a rendered container of nodes with an empty-state indicator
type List interface {
	Clear()
	Append(n Node)
	SetEmpty(empty bool)
}

// Hooks are the per-task actions a rendered node can trigger
type Hooks struct {
	Complete func()
	Delete   func()
}

// Renderer instantiates a view node for a task
type Renderer interface {
	Render(t model.Task, hooks Hooks) Node
}

// Importer applies a raw import payload to the store
type Importer interface {
	Import(ctx context.Context, raw []byte) error
}

// Store is the subset of *store.Store the reconciler drives
type Store interface {
	Snapshot() []model.Task
	Add(ctx context.Context, description string, priority model.Priority, due model.Date) (model.Task, error)
	Remove(ctx context.Context, id string) (bool, error)
	ToggleComplete(ctx context.Context, id string) (bool, error)
	Reprioritize(ctx context.Context, id string, priority model.Priority) (bool, error)
}

// Reconciler regenerates every list from a fresh snapshot after each change
type Reconciler struct {
	ctx      context.Context
	store    Store
	renderer Renderer
	lists    map[Column]List
	importer Importer

	nodes  []Node
	search string

	onChange func(snapshot []model.Task)
	alert    func(err error)
	log      *logger.Logger
}

// Option configures a Reconciler
type Option func(*Reconciler)

// WithImporter wires the import path
func WithImporter(imp Importer) Option {
	return func(r *Reconciler) { r.importer = imp }
}

// OnChange registers a listener called after every render with the snapshot
// that was rendered (stats, progress and counters hang off this)
func OnChange(fn func(snapshot []model.Task)) Option {
	return func(r *Reconciler) { r.onChange = fn }
}

// OnAlert registers the sink for user-visible errors
func OnAlert(fn func(err error)) Option {
	return func(r *Reconciler) { r.alert = fn }
}

// WithContext sets the context passed to store calls
func WithContext(ctx context.Context) Option {
	return func(r *Reconciler) { r.ctx = ctx }
}

// New creates a reconciler. lists must hold an entry for every Column.
func New(s Store, renderer Renderer, lists map[Column]List, opts ...Option) *Reconciler {
	r := &Reconciler{
		ctx:      context.Background(),
		store:    s,
		renderer: renderer,
		lists:    lists,
		onChange: func([]model.Task) {},
		alert:    func(error) {},
		log:      logger.WithFields(logger.F("component", "reconciler")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render clears and repopulates every list from a fresh snapshot
func (r *Reconciler) Render() {
	snapshot := r.store.Snapshot()
	r.nodes = r.nodes[:0]

	for _, col := range Columns {
		list, ok := r.lists[col]
		if !ok {
			continue
		}

		var tasks []model.Task
		if col == ColumnCompleted {
			tasks = derive.FilterCompleted(snapshot)
		} else {
			tasks = derive.FilterByPriorityActive(snapshot, model.Priority(col))
		}

		list.Clear()
		for _, t := range tasks {
			node := r.renderer.Render(t, r.hooksFor(t.ID))
			list.Append(node)
			r.nodes = append(r.nodes, node)
		}
		list.SetEmpty(len(tasks) == 0)
	}

	r.applySearch()
	r.onChange(snapshot)
}

func (r *Reconciler) hooksFor(id string) Hooks {
	return Hooks{
		Complete: func() { r.Toggle(id) },
		Delete:   func() { r.Delete(id) },
	}
}

// Add creates a task. A *store.ValidationError is returned untouched so the
// caller can keep the form as it is; nothing is re-rendered in that case.
func (r *Reconciler) Add(description string, priority model.Priority, due model.Date) (model.Task, error) {
	task, err := r.store.Add(r.ctx, description, priority, due)
	if err != nil {
		var verr *store.ValidationError
		if !errors.As(err, &verr) {
			r.report("add", err)
		}
		return model.Task{}, err
	}
	r.Render()
	return task, nil
}

// Delete removes a task; stale ids are ignored
func (r *Reconciler) Delete(id string) {
	r.apply("delete", id, func() (bool, error) {
		return r.store.Remove(r.ctx, id)
	})
}

// Toggle flips a task's completion; stale ids are ignored
func (r *Reconciler) Toggle(id string) {
	r.apply("toggle", id, func() (bool, error) {
		return r.store.ToggleComplete(r.ctx, id)
	})
}

// Drop handles a reorder event: the node for id landed in a container tagged
// with tag. Containers without a recognized priority tag are ignored.
func (r *Reconciler) Drop(id, tag string) {
	priority := model.Priority(tag)
	if !priority.Valid() {
		r.log.Debug("Drop ignored", logger.F("id", id), logger.F("tag", tag))
		return
	}
	r.apply("reprioritize", id, func() (bool, error) {
		return r.store.Reprioritize(r.ctx, id, priority)
	})
}

func (r *Reconciler) apply(op, id string, mutate func() (bool, error)) {
	changed, err := mutate()
	if err != nil {
		r.report(op, err)
		return
	}
	if !changed {
		r.log.Debug("Stale reference ignored", logger.F("op", op), logger.F("id", id))
		return
	}
	r.Render()
}

// Import hands raw to the importer and re-renders on success. On failure the
// error is alerted and the store is untouched.
func (r *Reconciler) Import(raw []byte) error {
	if r.importer == nil {
		return errors.New("import is not available")
	}
	if err := r.importer.Import(r.ctx, raw); err != nil {
		r.report("import", err)
		return err
	}
	r.Render()
	return nil
}

// Search hides rendered nodes whose description does not contain term,
// case-insensitively. The store is not touched.
func (r *Reconciler) Search(term string) {
	r.search = term
	r.applySearch()
}

// SearchTerm returns the active search term
func (r *Reconciler) SearchTerm() string {
	return r.search
}

func (r *Reconciler) applySearch() {
	for _, n := range r.nodes {
		n.SetVisible(derive.MatchesSearch(n.Description(), r.search))
	}
}

func (r *Reconciler) report(op string, err error) {
	if errors.Is(err, store.ErrInvalidImport) {
		r.log.Warn("Import rejected", logger.F("error", err))
	} else {
		r.log.Error("Operation failed", logger.F("op", op), logger.F("error", err))
	}
	r.alert(err)
}
