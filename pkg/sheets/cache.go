package sheets

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a snapshot stays fresh.
const DefaultTTL = 120 * time.Second

// Cache owns the process-wide count snapshot. A snapshot older than
// the TTL (or never fetched) is stale; the first caller to observe
// staleness performs the refresh while holding the mutex, so at most
// one fetch is in flight and concurrent callers always see either the
// previous or the new snapshot, never a partial one. A failed refresh
// keeps the previous snapshot and timestamp: stale data beats no data.
type Cache struct {
	fetcher Fetcher
	column  string
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	snapshot  Snapshot
	fetchedAt time.Time
}

// NewCache builds a cache over the given fetch collaborator. column
// names the CSV field holding municipality labels.
func NewCache(fetcher Fetcher, column string, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		fetcher:  fetcher,
		column:   column,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		snapshot: Snapshot{},
	}
}

// Counts returns the current snapshot, refreshing first when force is
// set or the snapshot is stale. It never fails: on fetch or parse
// failure the previous snapshot is returned unchanged (empty if none
// was ever fetched).
func (c *Cache) Counts(ctx context.Context, force bool) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if force || c.staleLocked() {
		c.refreshLocked(ctx)
	}
	return c.snapshot
}

// Age reports how long ago the last successful fetch happened, and
// false if nothing has ever been fetched.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() {
		return 0, false
	}
	return c.now().Sub(c.fetchedAt), true
}

func (c *Cache) staleLocked() bool {
	return c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) >= c.ttl
}

// refreshLocked runs one fetch-and-parse cycle. Only a fully parsed,
// non-empty result replaces the snapshot and advances fetchedAt.
func (c *Cache) refreshLocked(ctx context.Context) {
	data, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Warn("sheet fetch failed, keeping previous snapshot", "error", err)
		return
	}

	counts, err := ParseCounts(data, c.column)
	if err != nil {
		c.logger.Warn("sheet parse failed, keeping previous snapshot", "error", err)
		return
	}

	c.snapshot = counts
	c.fetchedAt = c.now()
	c.logger.Debug("snapshot refreshed", "municipios", len(counts), "rows", Total(counts))
}
