package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/existflow/taskpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data    map[string][]byte
	puts    int
	failPut error
	failGet error
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.failGet != nil {
		return nil, false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	if m.failPut != nil {
		return m.failPut
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

var fixedNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

func newTestStore(kv KV) *Store {
	n := 0
	return New(kv,
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("task-%d", n)
		}),
	)
}

func seed(t *testing.T, s *Store, descs ...string) {
	t.Helper()
	for _, d := range descs {
		_, err := s.Add(context.Background(), d, model.PriorityMedium, model.Date{})
		require.NoError(t, err)
	}
}

func TestLoad_MissingSnapshotIsEmpty(t *testing.T) {
	s := newTestStore(newMemKV())
	s.Load(context.Background())

	assert.Empty(t, s.Snapshot())
	assert.NotNil(t, s.Snapshot())
}

func TestLoad_CorruptSnapshotIsEmpty(t *testing.T) {
	for _, raw := range []string{`not json`, `{"id":"1"}`, `"tasks"`} {
		kv := newMemKV()
		kv.data[SnapshotKey] = []byte(raw)

		s := newTestStore(kv)
		s.Load(context.Background())
		assert.Empty(t, s.Snapshot(), raw)
	}
}

func TestLoad_ReadFailureIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.failGet = errors.New("disk gone")

	s := newTestStore(kv)
	s.Load(context.Background())
	assert.Empty(t, s.Snapshot())
}

func TestLoad_RestoresPersistedCollection(t *testing.T) {
	kv := newMemKV()
	first := newTestStore(kv)
	seed(t, first, "A", "B")

	second := newTestStore(kv)
	second.Load(context.Background())
	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestAdd(t *testing.T) {
	kv := newMemKV()
	s := newTestStore(kv)
	due := model.Date{Year: 2024, Month: time.May, Day: 12}

	task, err := s.Add(context.Background(), "  write report ", model.PriorityHigh, due)
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "write report", task.Description)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, due, task.DueDate)
	assert.False(t, task.Completed)
	assert.Equal(t, fixedNow, task.CreatedAt)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, kv.puts)
}

func TestAdd_GrowsByExactlyOne(t *testing.T) {
	s := newTestStore(newMemKV())
	for i, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		before := s.Len()
		task, err := s.Add(context.Background(), fmt.Sprintf("task %d", i), p, model.Date{})
		require.NoError(t, err)
		assert.Equal(t, before+1, s.Len())
		assert.False(t, task.Completed)
	}
}

func TestAdd_Validation(t *testing.T) {
	kv := newMemKV()
	s := newTestStore(kv)

	tests := []struct {
		desc     string
		priority model.Priority
		field    string
	}{
		{"", model.PriorityHigh, "description"},
		{"   ", model.PriorityHigh, "description"},
		{"ok", "", "priority"},
		{"ok", "urgent", "priority"},
	}
	for _, tt := range tests {
		_, err := s.Add(context.Background(), tt.desc, tt.priority, model.Date{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, tt.field, verr.Field)
		assert.ErrorIs(t, err, ErrInvalidTask)
	}
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, kv.puts)
}

func TestAdd_PersistFailureKeepsState(t *testing.T) {
	kv := newMemKV()
	s := newTestStore(kv)
	seed(t, s, "A")
	version := s.Version()

	kv.failPut = errors.New("read-only")
	_, err := s.Add(context.Background(), "B", model.PriorityLow, model.Date{})

	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, version, s.Version())
}

func TestRemove(t *testing.T) {
	s := newTestStore(newMemKV())
	seed(t, s, "A", "B", "C")

	removed, err := s.Remove(context.Background(), "task-2")
	require.NoError(t, err)
	assert.True(t, removed)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "A", snap[0].Description)
	assert.Equal(t, "C", snap[1].Description)
}

func TestRemove_UnknownIDLeavesCollection(t *testing.T) {
	kv := newMemKV()
	s := newTestStore(kv)
	seed(t, s, "A", "B", "C")
	before := s.Snapshot()
	puts := kv.puts

	removed, err := s.Remove(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, puts, kv.puts)
}

func TestToggleComplete_Involution(t *testing.T) {
	s := newTestStore(newMemKV())
	seed(t, s, "A")

	changed, err := s.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	assert.True(t, changed)
	got, _ := s.Get("task-1")
	assert.True(t, got.Completed)

	_, err = s.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	got, _ = s.Get("task-1")
	assert.False(t, got.Completed)
}

func TestToggleComplete_UnknownID(t *testing.T) {
	s := newTestStore(newMemKV())
	seed(t, s, "A")

	changed, err := s.ToggleComplete(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReprioritize(t *testing.T) {
	s := newTestStore(newMemKV())
	seed(t, s, "A")

	changed, err := s.Reprioritize(context.Background(), "task-1", model.PriorityLow)
	require.NoError(t, err)
	assert.True(t, changed)

	got, _ := s.Get("task-1")
	assert.Equal(t, model.PriorityLow, got.Priority)
}

func TestReprioritize_InvalidPriorityRejected(t *testing.T) {
	kv := newMemKV()
	s := newTestStore(kv)
	seed(t, s, "A")
	before := s.Snapshot()
	puts := kv.puts

	changed, err := s.Reprioritize(context.Background(), "task-1", "critical")
	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.False(t, changed)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, puts, kv.puts)
}

func TestReplaceAll(t *testing.T) {
	kv := newMemKV()
	s := newTestStore(kv)
	seed(t, s, "old")

	incoming := []model.Task{
		{ID: "x", Description: "imported", Priority: model.PriorityHigh, CreatedAt: fixedNow},
		{ID: "y", Description: "done", Priority: model.PriorityLow, Completed: true},
	}
	require.NoError(t, s.ReplaceAll(context.Background(), incoming))
	assert.Equal(t, incoming, s.Snapshot())

	var persisted []model.Task
	require.NoError(t, json.Unmarshal(kv.data[SnapshotKey], &persisted))
	assert.Len(t, persisted, 2)
}

func TestReplaceAll_RejectsInvalid(t *testing.T) {
	tests := map[string][]model.Task{
		"nil":              nil,
		"missing id":       {{Description: "a", Priority: model.PriorityLow}},
		"missing desc":     {{ID: "1", Priority: model.PriorityLow}},
		"unknown priority": {{ID: "1", Description: "a", Priority: "p1"}},
		"duplicate id": {
			{ID: "1", Description: "a", Priority: model.PriorityLow},
			{ID: "1", Description: "b", Priority: model.PriorityLow},
		},
	}
	for name, tasks := range tests {
		t.Run(name, func(t *testing.T) {
			kv := newMemKV()
			s := newTestStore(kv)
			seed(t, s, "keep me")
			before := append([]byte(nil), kv.data[SnapshotKey]...)

			err := s.ReplaceAll(context.Background(), tasks)

			var ierr *ImportError
			require.ErrorAs(t, err, &ierr)
			assert.ErrorIs(t, err, ErrInvalidImport)
			assert.Equal(t, "keep me", s.Snapshot()[0].Description)
			assert.Equal(t, before, kv.data[SnapshotKey])
		})
	}
}

func TestReplaceAll_EmptyListClears(t *testing.T) {
	s := newTestStore(newMemKV())
	seed(t, s, "A")

	require.NoError(t, s.ReplaceAll(context.Background(), []model.Task{}))
	assert.Equal(t, 0, s.Len())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newTestStore(newMemKV())
	seed(t, s, "A")

	snap := s.Snapshot()
	snap[0].Description = "mutated"

	got, _ := s.Get("task-1")
	assert.Equal(t, "A", got.Description)
}

func TestResolve_Prefix(t *testing.T) {
	s := New(newMemKV(), WithIDFunc(func() string { return "" }))
	require.NoError(t, s.ReplaceAll(context.Background(), []model.Task{
		{ID: "abc123", Description: "a", Priority: model.PriorityLow},
		{ID: "abd456", Description: "b", Priority: model.PriorityLow},
	}))

	got, ok := s.Resolve("abc")
	assert.True(t, ok)
	assert.Equal(t, "abc123", got.ID)

	_, ok = s.Resolve("ab")
	assert.False(t, ok, "ambiguous prefix")

	_, ok = s.Resolve("")
	assert.False(t, ok)
}

func TestVersion_IncrementsOnMutation(t *testing.T) {
	s := newTestStore(newMemKV())
	v0 := s.Version()

	seed(t, s, "A")
	v1 := s.Version()
	assert.Greater(t, v1, v0)

	_, _ = s.Remove(context.Background(), "missing")
	assert.Equal(t, v1, s.Version())
}

func TestImportError_Message(t *testing.T) {
	assert.Equal(t, "import failed: task 2: missing id", (&ImportError{Index: 1, Reason: "missing id"}).Error())
	assert.Equal(t, "import failed: not a list: boom",
		(&ImportError{Index: -1, Reason: "not a list", Err: errors.New("boom")}).Error())
}
