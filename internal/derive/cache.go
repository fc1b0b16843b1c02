package derive

import (
	"sync"
	"time"

	"github.com/existflow/taskpad/internal/model"
)

// Source is a versioned task collection, typically *store.Store
type Source interface {
	Snapshot() []model.Task
	Version() uint64
}

// Cache memoizes ComputeStats until the source version or the asOf day changes
type Cache struct {
	src Source

	mu      sync.Mutex
	valid   bool
	version uint64
	day     model.Date
	stats   Stats
}

// NewCache creates a stats cache over src
func NewCache(src Source) *Cache {
	return &Cache{src: src}
}

// Stats returns the statistics for asOf, recomputing only when stale
func (c *Cache) Stats(asOf time.Time) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	version := c.src.Version()
	day := model.DateOf(asOf)
	if c.valid && c.version == version && c.day == day {
		return c.stats
	}

	c.stats = ComputeStats(c.src.Snapshot(), asOf)
	c.version = version
	c.day = day
	c.valid = true
	return c.stats
}
