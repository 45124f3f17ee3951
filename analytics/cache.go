package analytics

import (
	"sync"

	"github.com/rustyeddy/tradejournal/journal"
)

// Version identifies a trade set. Trades are append-only and their prices
// are immutable, so the count plus the last ID pins the set down.
type Version struct {
	Count  int
	LastID string
}

// VersionOf returns the version of recs.
func VersionOf(recs []journal.TradeRecord) Version {
	v := Version{Count: len(recs)}
	if len(recs) > 0 {
		v.LastID = recs[len(recs)-1].ID
	}
	return v
}

type cacheKey struct {
	owner   string
	version Version
	order   GroupOrder
}

type cacheEntry struct {
	series  EquitySeries
	summary PerformanceSummary
	groups  []GroupSummary
	hasPerf bool
	hasGrp  bool
}

// Cache memoizes results per (owner, trade-set version). It never changes
// what the compute functions return; callers always get private copies.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[cacheKey]*cacheEntry
	order   []cacheKey // insertion order for eviction
}

// NewCache returns a cache holding at most max entries (minimum 1).
func NewCache(max int) *Cache {
	if max < 1 {
		max = 1
	}
	return &Cache{
		max:     max,
		entries: make(map[cacheKey]*cacheEntry),
	}
}

// Performance returns ComputePerformance(recs), reusing a prior result for
// the same owner and version.
func (c *Cache) Performance(owner string, recs []journal.TradeRecord) (EquitySeries, PerformanceSummary) {
	key := cacheKey{owner: owner, version: VersionOf(recs)}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.hasPerf {
		series, summary := cloneSeries(e.series), e.summary
		c.mu.Unlock()
		return series, summary
	}
	c.mu.Unlock()

	series, summary := ComputePerformance(recs)

	c.mu.Lock()
	e := c.entry(key)
	e.series, e.summary, e.hasPerf = cloneSeries(series), summary, true
	c.mu.Unlock()

	return series, summary
}

// Breakdown returns ComputeGroupBreakdown(recs, order) with the same reuse
// rules as Performance.
func (c *Cache) Breakdown(owner string, recs []journal.TradeRecord, order GroupOrder) []GroupSummary {
	key := cacheKey{owner: owner, version: VersionOf(recs), order: order}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.hasGrp {
		groups := cloneGroups(e.groups)
		c.mu.Unlock()
		return groups
	}
	c.mu.Unlock()

	groups := ComputeGroupBreakdown(recs, order)

	c.mu.Lock()
	e := c.entry(key)
	e.groups, e.hasGrp = cloneGroups(groups), true
	c.mu.Unlock()

	return groups
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// entry returns the entry for key, creating it and evicting the oldest
// entry when full. Callers hold c.mu.
func (c *Cache) entry(key cacheKey) *cacheEntry {
	if e, ok := c.entries[key]; ok {
		return e
	}
	for len(c.entries) >= c.max && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	e := &cacheEntry{}
	c.entries[key] = e
	c.order = append(c.order, key)
	return e
}

func cloneSeries(s EquitySeries) EquitySeries {
	out := make(EquitySeries, len(s))
	copy(out, s)
	return out
}

func cloneGroups(g []GroupSummary) []GroupSummary {
	out := make([]GroupSummary, len(g))
	copy(out, g)
	return out
}
