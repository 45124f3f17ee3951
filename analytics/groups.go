package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// GroupOrder decides the order of a breakdown.
type GroupOrder int

const (
	// GroupByFirstSeen lists instruments in the order they first appear.
	GroupByFirstSeen GroupOrder = iota
	// GroupAlphabetical lists instruments by byte-wise ascending name.
	GroupAlphabetical
)

func (o GroupOrder) String() string {
	switch o {
	case GroupAlphabetical:
		return "alphabetical"
	default:
		return "first_seen"
	}
}

// ParseGroupOrder accepts "first_seen" (or "") and "alphabetical".
func ParseGroupOrder(s string) (GroupOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_seen", "first-seen":
		return GroupByFirstSeen, nil
	case "alphabetical", "alpha":
		return GroupAlphabetical, nil
	}
	return GroupByFirstSeen, fmt.Errorf("unknown group order %q", s)
}

// GroupSummary is the per-instrument slice of a PerformanceSummary.
// Equity and drawdown are portfolio-wide and not computed per group.
type GroupSummary struct {
	Instrument string
	Count      int
	Wins       int
	WinRate    float64
	NetPnL     float64
	AvgRR      float64
}

// ComputeGroupBreakdown partitions recs by instrument and summarizes each
// partition with the same win rule as ComputePerformance.
func ComputeGroupBreakdown(recs []journal.TradeRecord, order GroupOrder) []GroupSummary {
	index := make(map[string]int)
	var keys []string
	var groups []totals

	for _, rec := range recs {
		i, ok := index[rec.Instrument]
		if !ok {
			i = len(groups)
			index[rec.Instrument] = i
			keys = append(keys, rec.Instrument)
			groups = append(groups, totals{})
		}
		groups[i].add(ComputeDerivedMetrics(rec))
	}

	out := make([]GroupSummary, len(groups))
	for i, t := range groups {
		out[i] = GroupSummary{
			Instrument: keys[i],
			Count:      t.count,
			Wins:       t.wins,
			WinRate:    t.winRate(),
			NetPnL:     t.pnl,
			AvgRR:      t.avgRR(),
		}
	}

	if order == GroupAlphabetical {
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].Instrument < out[b].Instrument
		})
	}
	return out
}
