package analytics

import (
	"math"

	"github.com/rustyeddy/tradejournal/journal"
)

// EquityPoint is the state of the equity curve after one trade.
type EquityPoint struct {
	TradeID  string
	Equity   float64 // cumulative P/L so far
	Peak     float64 // running maximum of Equity
	Drawdown float64 // Equity - Peak, never positive
}

// EquitySeries holds one point per trade, in the order the trades were
// given (creation order), not sorted by price or P/L.
type EquitySeries []EquityPoint

// Equity returns the cumulative P/L column.
func (s EquitySeries) Equity() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Equity
	}
	return out
}

// Drawdowns returns the drawdown column.
func (s EquitySeries) Drawdowns() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Drawdown
	}
	return out
}

// PerformanceSummary aggregates a set of trades.
type PerformanceSummary struct {
	Count       int
	Wins        int     // trades with P/L strictly above zero
	Losses      int     // Count - Wins; breakeven trades count here
	WinRate     float64 // percent, 0..100
	AvgRR       float64
	NetPnL      float64
	MaxDrawdown float64 // most negative drawdown, 0 when there is none
}

// ComputePerformance folds recs, in the given order, into an equity curve
// and a summary. recs should already be in creation order (see
// journal.SortByCreation). An empty input gives an empty series and an
// all-zero summary.
func ComputePerformance(recs []journal.TradeRecord) (EquitySeries, PerformanceSummary) {
	series := make(EquitySeries, len(recs))
	metrics := ComputeAll(recs)

	var equity, peak, maxDD float64
	for i, m := range metrics {
		equity += m.PnL
		if i == 0 || equity > peak {
			peak = equity
		}
		dd := equity - peak
		if math.IsNaN(dd) {
			dd = 0
		}
		if dd < maxDD {
			maxDD = dd
		}
		series[i] = EquityPoint{
			TradeID:  recs[i].ID,
			Equity:   equity,
			Peak:     peak,
			Drawdown: dd,
		}
	}

	t := tally(metrics)
	summary := PerformanceSummary{
		Count:       t.count,
		Wins:        t.wins,
		Losses:      t.count - t.wins,
		WinRate:     t.winRate(),
		AvgRR:       t.avgRR(),
		NetPnL:      equity,
		MaxDrawdown: maxDD,
	}
	return series, summary
}

// totals are the order-independent sums shared by the portfolio and the
// per-instrument summaries, so both use one definition of a win.
type totals struct {
	count int
	wins  int
	pnl   float64
	rr    float64
}

func (t *totals) add(m DerivedMetrics) {
	t.count++
	if m.PnL > 0 {
		t.wins++
	}
	t.pnl += m.PnL
	t.rr += m.RiskRewardRatio
}

func (t totals) winRate() float64 {
	if t.count == 0 {
		return 0
	}
	return 100 * float64(t.wins) / float64(t.count)
}

func (t totals) avgRR() float64 {
	if t.count == 0 {
		return 0
	}
	return t.rr / float64(t.count)
}

func tally(metrics []DerivedMetrics) totals {
	var t totals
	for _, m := range metrics {
		t.add(m)
	}
	return t
}
