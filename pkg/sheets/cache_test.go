package sheets

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// fakeFetcher serves scripted responses and counts calls.
type fakeFetcher struct {
	mu      sync.Mutex
	data    []byte
	err     error
	fetches int
}

func (f *fakeFetcher) Fetch(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.data, f.err
}

func (f *fakeFetcher) set(data []byte, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data, f.err = data, err
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// fakeClock advances only when told to.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCache(f Fetcher) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	c := NewCache(f, "Municipio", 120*time.Second, slog.Default())
	c.now = clock.now
	return c, clock
}

func TestCacheFreshnessGating(t *testing.T) {
	f := &fakeFetcher{data: []byte("Municipio\nA\nA\nB\n")}
	c, clock := newTestCache(f)
	ctx := context.Background()

	snap := c.Counts(ctx, false)
	if snap["A"] != 2 || snap["B"] != 1 {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
	if f.calls() != 1 {
		t.Fatalf("fetches = %d, want 1", f.calls())
	}

	// Within the TTL nothing refetches.
	clock.advance(60 * time.Second)
	c.Counts(ctx, false)
	if f.calls() != 1 {
		t.Errorf("fetches = %d after fresh read, want 1", f.calls())
	}

	// Past the TTL the next read refetches.
	clock.advance(61 * time.Second)
	c.Counts(ctx, false)
	if f.calls() != 2 {
		t.Errorf("fetches = %d after stale read, want 2", f.calls())
	}
}

func TestCacheForceRefresh(t *testing.T) {
	f := &fakeFetcher{data: []byte("Municipio\nA\n")}
	c, _ := newTestCache(f)
	ctx := context.Background()

	c.Counts(ctx, false)
	f.set([]byte("Municipio\nA\nA\n"), nil)
	snap := c.Counts(ctx, true)
	if f.calls() != 2 {
		t.Errorf("fetches = %d, want 2 (force bypasses TTL)", f.calls())
	}
	if snap["A"] != 2 {
		t.Errorf("snapshot not replaced: %v", snap)
	}
}

func TestCacheStaleFallbackOnFetchFailure(t *testing.T) {
	f := &fakeFetcher{data: []byte("Municipio\nA\nA\nA\nA\nA\n")}
	c, clock := newTestCache(f)
	ctx := context.Background()

	c.Counts(ctx, false)
	age0, ok := c.Age()
	if !ok || age0 != 0 {
		t.Fatalf("Age after fetch = (%v, %v), want (0, true)", age0, ok)
	}

	f.set(nil, errors.New("connection refused"))
	clock.advance(200 * time.Second)

	snap := c.Counts(ctx, false)
	if snap["A"] != 5 {
		t.Errorf("failed refresh blanked the snapshot: %v", snap)
	}
	// fetchedAt must not advance: the next read retries.
	if age, _ := c.Age(); age != 200*time.Second {
		t.Errorf("Age = %v, want 200s (fetchedAt untouched by failure)", age)
	}
	c.Counts(ctx, false)
	if f.calls() != 3 {
		t.Errorf("fetches = %d, want 3 (still stale, retried)", f.calls())
	}
}

func TestCacheStaleFallbackOnParseFailure(t *testing.T) {
	f := &fakeFetcher{data: []byte("Municipio\nA\n")}
	c, clock := newTestCache(f)
	ctx := context.Background()

	c.Counts(ctx, false)

	// Upstream dropped the column entirely.
	f.set([]byte("Nombre\nA\n"), nil)
	clock.advance(300 * time.Second)
	snap := c.Counts(ctx, false)
	if snap["A"] != 1 {
		t.Errorf("parse failure blanked the snapshot: %v", snap)
	}
}

func TestCacheEmptyBeforeFirstSuccess(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	c, _ := newTestCache(f)

	snap := c.Counts(context.Background(), false)
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %v", snap)
	}
	if _, ok := c.Age(); ok {
		t.Error("Age should report no fetch yet")
	}
}

func TestCacheSingleFlight(t *testing.T) {
	f := &fakeFetcher{data: []byte("Municipio\nA\n")}
	c, _ := newTestCache(f)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := c.Counts(ctx, false)
			if snap["A"] != 1 {
				t.Errorf("reader saw inconsistent snapshot: %v", snap)
			}
		}()
	}
	wg.Wait()

	if f.calls() != 1 {
		t.Errorf("fetches = %d, want 1 (refresh is serialized)", f.calls())
	}
}
