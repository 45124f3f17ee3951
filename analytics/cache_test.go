package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/journal"
)

func TestCacheMatchesCompute(t *testing.T) {
	t.Parallel()

	c := NewCache(8)
	recs := scenarioTrades()

	wantSeries, wantSummary := ComputePerformance(recs)
	for i := 0; i < 3; i++ {
		series, summary := c.Performance("vicky", recs)
		assert.Equal(t, wantSeries, series)
		assert.Equal(t, wantSummary, summary)
	}

	wantGroups := ComputeGroupBreakdown(recs, GroupAlphabetical)
	assert.Equal(t, wantGroups, c.Breakdown("vicky", recs, GroupAlphabetical))
	assert.Equal(t, wantGroups, c.Breakdown("vicky", recs, GroupAlphabetical))
}

func TestCacheReturnsPrivateCopies(t *testing.T) {
	t.Parallel()

	c := NewCache(8)
	recs := scenarioTrades()

	series, _ := c.Performance("vicky", recs)
	series[0].Equity = 1000

	again, _ := c.Performance("vicky", recs)
	assert.InDelta(t, 0.01, again[0].Equity, 1e-9)

	groups := c.Breakdown("vicky", recs, GroupByFirstSeen)
	groups[0].NetPnL = 1000
	assert.InDelta(t, 0.01, c.Breakdown("vicky", recs, GroupByFirstSeen)[0].NetPnL, 1e-9)
}

func TestCacheNewVersionRecomputes(t *testing.T) {
	t.Parallel()

	c := NewCache(8)
	recs := scenarioTrades()[:2]
	_, before := c.Performance("vicky", recs)
	assert.Equal(t, 2, before.Count)

	recs = scenarioTrades()
	_, after := c.Performance("vicky", recs)
	assert.Equal(t, 3, after.Count)
	assert.InDelta(t, -0.98, after.NetPnL, 1e-9)
}

func TestCacheOwnersAreSeparate(t *testing.T) {
	t.Parallel()

	c := NewCache(8)
	recs := scenarioTrades()
	other := []journal.TradeRecord{trade("EURUSD", journal.Long, 1, 0.5, 2, 1)}
	other[0].ID = recs[2].ID

	_, a := c.Performance("vicky", recs)
	_, b := c.Performance("test", other)
	assert.Equal(t, 3, a.Count)
	assert.Equal(t, 1, b.Count)
}

func TestCacheEvictsOldest(t *testing.T) {
	t.Parallel()

	c := NewCache(2)
	recs := scenarioTrades()
	c.Performance("a", recs)
	c.Performance("b", recs)
	c.Performance("c", recs)
	assert.Equal(t, 2, c.Len())
}

func TestVersionOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Version{}, VersionOf(nil))
	assert.Equal(t, Version{Count: 3, LastID: "T3"}, VersionOf(scenarioTrades()))
}
