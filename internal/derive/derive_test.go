package derive

import (
	"testing"
	"time"

	"github.com/existflow/taskpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, time.May, 10, 18, 45, 0, 0, time.Local)

func day(offset int) model.Date {
	return model.DateOf(asOf).AddDays(offset)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(0, 5))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 13, Percent(1, 8))
	assert.Equal(t, 100, Percent(4, 4))
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, asOf)
	assert.Equal(t, Stats{}, s)
	assert.Equal(t, 0, s.CompletionRate)
}

func TestComputeStats_DueTodayAndOverdue(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Description: "A", Priority: model.PriorityHigh, DueDate: day(0)},
		{ID: "b", Description: "B", Priority: model.PriorityHigh, DueDate: day(-1)},
	}

	s := ComputeStats(tasks, asOf)
	assert.Equal(t, 1, s.DueToday)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 2, s.Distribution.High)
	assert.Equal(t, 0, s.CompletionRate)
	assert.Equal(t, 2, s.Active)
}

func TestComputeStats_Mixed(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Priority: model.PriorityHigh, Completed: true, DueDate: day(-3)},
		{ID: "2", Priority: model.PriorityMedium, DueDate: day(-3)},
		{ID: "3", Priority: model.PriorityMedium, Completed: true, DueDate: day(0)},
		{ID: "4", Priority: model.PriorityLow},
	}

	s := ComputeStats(tasks, asOf)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 50, s.CompletionRate)
	assert.Equal(t, Distribution{High: 1, Medium: 2, Low: 1}, s.Distribution)
	assert.Equal(t, 0, s.DueToday, "completed tasks are not due")
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 2, s.Distribution.Get(model.PriorityMedium))
	assert.Equal(t, 0, s.Distribution.Get("none"))
}

func TestProgress(t *testing.T) {
	done, total, pct := Progress([]model.Task{{Completed: true}, {}, {}})
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, 33, pct)

	_, _, pct = Progress(nil)
	assert.Equal(t, 0, pct)
}

func TestBarHeights(t *testing.T) {
	assert.Equal(t, [3]int{10, 10, 10}, BarHeights(Distribution{}))
	assert.Equal(t, [3]int{100, 50, 10}, BarHeights(Distribution{High: 4, Medium: 2, Low: 0}))
	assert.Equal(t, [3]int{10, 100, 10}, BarHeights(Distribution{High: 1, Medium: 20, Low: 1}))
}

func TestFilters(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Priority: model.PriorityHigh},
		{ID: "2", Priority: model.PriorityHigh, Completed: true},
		{ID: "3", Priority: model.PriorityLow},
		{ID: "4", Priority: model.PriorityHigh},
		{ID: "5", Priority: model.PriorityLow, Completed: true},
	}

	high := FilterByPriorityActive(tasks, model.PriorityHigh)
	require.Len(t, high, 2)
	assert.Equal(t, "1", high[0].ID)
	assert.Equal(t, "4", high[1].ID)

	assert.Empty(t, FilterByPriorityActive(tasks, model.PriorityMedium))
	assert.NotNil(t, FilterByPriorityActive(tasks, model.PriorityMedium))

	done := FilterCompleted(tasks)
	require.Len(t, done, 2)
	assert.Equal(t, "2", done[0].ID)
	assert.Equal(t, "5", done[1].ID)
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Description: "Buy Milk"},
		{ID: "2", Description: "milkshake"},
		{ID: "3", Description: "Call bank"},
	}

	got := Search(tasks, "MILK")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	assert.Len(t, Search(tasks, ""), 3)
	assert.Empty(t, Search(tasks, "zzz"))
	assert.NotNil(t, Search(nil, "x"))
}

func TestClassifyUpcoming(t *testing.T) {
	tasks := []model.Task{
		{ID: "week", DueDate: day(7)},
		{ID: "eight", DueDate: day(8)},
		{ID: "tomorrow", DueDate: day(1)},
		{ID: "today", DueDate: day(0)},
		{ID: "old", DueDate: day(-10)},
		{ID: "yesterday", DueDate: day(-1)},
		{ID: "nodate"},
		{ID: "done", DueDate: day(2), Completed: true},
		{ID: "three", DueDate: day(3)},
	}

	s := ClassifyUpcoming(tasks, asOf)
	assert.Equal(t, []string{"today"}, ids(s.DueToday))
	assert.Equal(t, []string{"old", "yesterday"}, ids(s.Overdue))
	assert.Equal(t, []string{"tomorrow", "three", "week"}, ids(s.Upcoming))
	assert.False(t, s.Empty())
}

func TestClassifyUpcoming_StableForSameDay(t *testing.T) {
	tasks := []model.Task{
		{ID: "first", DueDate: day(2)},
		{ID: "second", DueDate: day(2)},
	}
	s := ClassifyUpcoming(tasks, asOf)
	assert.Equal(t, []string{"first", "second"}, ids(s.Upcoming))
}

func TestDueNotifier(t *testing.T) {
	tasks := []model.Task{{ID: "ten", DueDate: day(10)}}

	var n Notifier = DueNotifier{}
	assert.True(t, n.Summarize(tasks, asOf).Empty())

	n = DueNotifier{WindowDays: 14}
	assert.Equal(t, []string{"ten"}, ids(n.Summarize(tasks, asOf).Upcoming))
}

type fakeSource struct {
	tasks   []model.Task
	version uint64
	reads   int
}

func (f *fakeSource) Snapshot() []model.Task {
	f.reads++
	return f.tasks
}

func (f *fakeSource) Version() uint64 { return f.version }

func TestCache(t *testing.T) {
	src := &fakeSource{tasks: []model.Task{{ID: "1", Priority: model.PriorityLow}}, version: 1}
	c := NewCache(src)

	assert.Equal(t, 1, c.Stats(asOf).Total)
	assert.Equal(t, 1, c.Stats(asOf.Add(time.Minute)).Total)
	assert.Equal(t, 1, src.reads, "same version and day is served from cache")

	src.tasks = append(src.tasks, model.Task{ID: "2", Priority: model.PriorityHigh})
	src.version++
	assert.Equal(t, 2, c.Stats(asOf).Total)
	assert.Equal(t, 2, src.reads)

	c.Stats(asOf.AddDate(0, 0, 1))
	assert.Equal(t, 3, src.reads, "new day recomputes due counts")

	c.Stats(asOf.AddDate(0, 0, 1))
	assert.Equal(t, 3, src.reads)
}
