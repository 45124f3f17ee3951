// Package analytics derives performance figures from journaled trades.
//
// Every function here is pure: records are passed in explicitly, nothing is
// read from storage or package state, and the same input always yields the
// same output. Presentation code must use these results rather than
// re-deriving P/L, RR or drawdown on its own.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// rrPlaces is the number of decimal places RR is rounded to.
const rrPlaces = 2

// DerivedMetrics are the per-trade figures computed from a TradeRecord.
// They are never stored.
type DerivedMetrics struct {
	PnL             float64
	Risk            float64
	Reward          float64
	RiskRewardRatio float64
}

// ComputeDerivedMetrics computes P/L, risk, reward and RR for one trade.
//
// P/L is measured to the take-profit price. An unset stop or target (0) is
// valid input and simply produces a large or zero risk/reward. RR is
// reward/risk rounded to two places, and 0 when risk is 0.
func ComputeDerivedMetrics(rec journal.TradeRecord) DerivedMetrics {
	var pnl float64
	if rec.Direction == journal.Long {
		pnl = (rec.TakeProfitPrice - rec.EntryPrice) * rec.PositionSize
	} else {
		pnl = (rec.EntryPrice - rec.TakeProfitPrice) * rec.PositionSize
	}

	risk := math.Abs(rec.EntryPrice-rec.StopLossPrice) * rec.PositionSize
	reward := math.Abs(rec.TakeProfitPrice-rec.EntryPrice) * rec.PositionSize

	return DerivedMetrics{
		PnL:             pnl,
		Risk:            risk,
		Reward:          reward,
		RiskRewardRatio: riskReward(risk, reward),
	}
}

func riskReward(risk, reward float64) float64 {
	if risk <= 0 || math.IsNaN(risk) || math.IsInf(risk, 0) {
		return 0
	}
	rr := reward / risk
	if math.IsNaN(rr) || math.IsInf(rr, 0) {
		return 0
	}
	return decimal.NewFromFloat(rr).RoundBank(rrPlaces).InexactFloat64()
}

// ComputeAll returns the derived metrics of recs in the same order.
func ComputeAll(recs []journal.TradeRecord) []DerivedMetrics {
	out := make([]DerivedMetrics, len(recs))
	for i, rec := range recs {
		out[i] = ComputeDerivedMetrics(rec)
	}
	return out
}
