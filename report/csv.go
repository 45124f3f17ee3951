package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// TradeColumns is the header of WriteTradesCSV. The trade columns use the
// default import names, so an export can be imported again.
var TradeColumns = []string{
	"trade_id", "created_at", "pair", "direction", "entry", "stoploss", "takeprofit", "lot",
	"screenshot", "notes", "pnl", "risk", "reward", "rr",
}

// EquityColumns is the header of WriteEquityCSV.
var EquityColumns = []string{"trade_id", "equity", "peak", "drawdown"}

// WriteTradesCSV writes recs and their metrics (metrics[i] belongs to recs[i]).
func WriteTradesCSV(w io.Writer, recs []journal.TradeRecord, metrics []analytics.DerivedMetrics) error {
	if len(metrics) != len(recs) {
		return fmt.Errorf("write trades: %d records, %d metrics", len(recs), len(metrics))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(TradeColumns); err != nil {
		return err
	}
	for i, t := range recs {
		m := metrics[i]
		err := cw.Write([]string{
			t.ID,
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
			t.Instrument,
			string(t.Direction),
			exact(t.EntryPrice),
			exact(t.StopLossPrice),
			exact(t.TakeProfitPrice),
			exact(t.PositionSize),
			t.ScreenshotRef,
			t.Notes,
			f(m.PnL),
			f(m.Risk),
			f(m.Reward),
			fixed2(m.RiskRewardRatio),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteEquityCSV(w io.Writer, series analytics.EquitySeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EquityColumns); err != nil {
		return err
	}
	for _, p := range series {
		err := cw.Write([]string{
			p.TradeID,
			f(p.Equity),
			f(p.Peak),
			f(p.Drawdown),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
