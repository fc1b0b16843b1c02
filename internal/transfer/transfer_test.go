package transfer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

var asOf = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.Local)

func newSeededStore(t *testing.T) (*store.Store, *memKV) {
	t.Helper()
	kv := &memKV{data: map[string][]byte{}}
	s := store.New(kv, store.WithClock(func() time.Time {
		return time.Date(2024, time.May, 1, 8, 0, 0, 123456789, time.UTC)
	}))
	ctx := context.Background()

	_, err := s.Add(ctx, "File taxes", model.PriorityHigh, model.DateOf(asOf))
	require.NoError(t, err)
	b, err := s.Add(ctx, "Water plants", model.PriorityLow, model.Date{})
	require.NoError(t, err)
	_, err = s.Add(ctx, "Call \"Mom\"", model.PriorityMedium, model.DateOf(asOf).AddDays(3))
	require.NoError(t, err)
	_, err = s.ToggleComplete(ctx, b.ID)
	require.NoError(t, err)

	return s, kv
}

func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := newSeededStore(t)

	var buf bytes.Buffer
	require.NoError(t, NewCodec(src).Export(&buf))
	exported := buf.Bytes()

	dst := store.New(&memKV{data: map[string][]byte{}})
	require.NoError(t, NewCodec(dst).Import(context.Background(), exported))

	want, got := src.Snapshot(), dst.Snapshot()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Priority, got[i].Priority)
		assert.Equal(t, want[i].DueDate, got[i].DueDate)
		assert.Equal(t, want[i].Completed, got[i].Completed)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
	}

	var again bytes.Buffer
	require.NoError(t, NewCodec(dst).Export(&again))
	assert.Equal(t, string(exported), again.String())
}

func TestExport_Format(t *testing.T) {
	src, _ := newSeededStore(t)

	var buf bytes.Buffer
	require.NoError(t, NewCodec(src).Export(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"id\": "))
	for _, field := range []string{`"description"`, `"priority"`, `"dueDate"`, `"completed"`, `"createdAt"`} {
		assert.Contains(t, out, field)
	}
	assert.Contains(t, out, `"dueDate": ""`)
}

func TestExport_EmptyCollection(t *testing.T) {
	s := store.New(&memKV{data: map[string][]byte{}})

	var buf bytes.Buffer
	require.NoError(t, NewCodec(s).Export(&buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestImport_RejectsNonArrays(t *testing.T) {
	payloads := []string{
		`{"id":"1","description":"a","priority":"high"}`,
		`"tasks"`,
		`42`,
		``,
		`[1, 2]`,
		`["a"]`,
		`[{"id":"1"`,
		`[{"id":"1","description":"a","priority":"high","completed":"yes"}]`,
		`[{"id":"1","description":"a","priority":"high","dueDate":"someday"}]`,
		`[{"description":"no id","priority":"high"}]`,
		`[{"id":"1","description":"a","priority":"urgent"}]`,
	}
	for _, p := range payloads {
		s, kv := newSeededStore(t)
		before := append([]byte(nil), kv.data[store.SnapshotKey]...)
		snapshot := s.Snapshot()

		err := NewCodec(s).Import(context.Background(), []byte(p))

		assert.ErrorIs(t, err, store.ErrInvalidImport, p)
		assert.Equal(t, snapshot, s.Snapshot(), p)
		assert.Equal(t, before, kv.data[store.SnapshotKey], p)
	}
}

func TestImport_AcceptsBrowserShapedRecords(t *testing.T) {
	s := store.New(&memKV{data: map[string][]byte{}})
	raw := `[
  {"id":"1715330000000","description":"Legacy","priority":"medium","dueDate":"2024-05-12","completed":false,"createdAt":"2024-05-10T08:33:20.000Z"},
  {"id":"1715330000001","description":"No date","priority":"low","dueDate":"","completed":true,"createdAt":"2024-05-10T08:33:21.000Z"}
]`

	require.NoError(t, NewCodec(s).Import(context.Background(), []byte(raw)))

	got := s.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, model.Date{Year: 2024, Month: time.May, Day: 12}, got[0].DueDate)
	assert.True(t, got[1].Completed)
	assert.False(t, got[1].HasDueDate())
}

func TestImport_IsReplaceNotMerge(t *testing.T) {
	s, _ := newSeededStore(t)
	raw := `[{"id":"only","description":"Only one","priority":"high"}]`

	require.NoError(t, NewCodec(s).Import(context.Background(), []byte(raw)))
	assert.Equal(t, 1, s.Len())
}

func TestExportFile_And_ImportFile(t *testing.T) {
	src, _ := newSeededStore(t)
	dir := filepath.Join(t.TempDir(), "out")

	path, err := NewCodec(src).ExportFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ExportFileName), path)

	dst := store.New(&memKV{data: map[string][]byte{}})
	require.NoError(t, NewCodec(dst).ImportFile(context.Background(), path))
	assert.Equal(t, src.Len(), dst.Len())

	err = NewCodec(dst).ImportFile(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, store.ErrInvalidImport)
	assert.Equal(t, src.Len(), dst.Len())
}

func TestBuildReport_FirstPage(t *testing.T) {
	s, _ := newSeededStore(t)

	r := BuildReport(s.Snapshot(), asOf, DefaultLinesPerPage)
	require.Len(t, r.Pages, 1)

	page := r.Pages[0]
	assert.Equal(t, "Task Manager Report", page[0])
	assert.Equal(t, "Generated on: May 10, 2024", page[1])
	assert.Contains(t, page, "Total Tasks: 3")
	assert.Contains(t, page, "Completed Tasks: 1")
	assert.Contains(t, page, "Completion Rate: 33%")
	assert.Contains(t, page, "Due Today: 1")
	assert.Contains(t, page, "[ ] File taxes (Due: May 10, 2024)")
	assert.Contains(t, page, "[✓] Water plants")
	assert.Contains(t, page, `[ ] Call "Mom" (Due: May 13, 2024)`)
}

func TestBuildReport_Paginates(t *testing.T) {
	tasks := make([]model.Task, 40)
	for i := range tasks {
		tasks[i] = model.Task{ID: fmt.Sprint(i), Description: fmt.Sprintf("task %02d", i), Priority: model.PriorityLow}
	}

	r := BuildReport(tasks, asOf, 20)

	total := 0
	for _, p := range r.Pages {
		assert.LessOrEqual(t, len(p), 20)
		total += len(p)
	}
	assert.Equal(t, 10+40, total)
	require.Len(t, r.Pages, 3)
	assert.Equal(t, "[ ] task 09", r.Pages[0][19])
	assert.Equal(t, "[ ] task 10", r.Pages[1][0])
}

func TestBuildReport_MultiLineDescriptionsKeepPageBudget(t *testing.T) {
	tasks := make([]model.Task, 40)
	for i := range tasks {
		tasks[i] = model.Task{ID: fmt.Sprint(i), Description: fmt.Sprintf("task %02d\nsecond line\n\nthird", i), Priority: model.PriorityLow}
	}

	r := BuildReport(tasks, asOf, 20)
	require.Len(t, r.Pages, 3)
	assert.Equal(t, "[ ] task 00 second line third", r.Pages[0][10])

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)

	for i, page := range strings.Split(buf.String(), "\f") {
		// blank line and footer follow the body
		assert.LessOrEqual(t, strings.Count(page, "\n"), 20+2, "page %d", i+1)
	}
}

func TestReport_WriteTo(t *testing.T) {
	tasks := []model.Task{{ID: "1", Description: "one", Priority: model.PriorityLow}}
	r := BuildReport(tasks, asOf, 10)
	require.Len(t, r.Pages, 2)

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\f"))
	assert.Contains(t, out, "Page 1/2")
	assert.Contains(t, out, "Page 2/2")
}

func TestExportReportFile(t *testing.T) {
	s, _ := newSeededStore(t)
	dir := t.TempDir()

	path, err := NewCodec(s).ExportReportFile(dir, asOf, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Task Manager Report")
}
