package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// NoTrades is printed in place of any table when the journal is empty.
const NoTrades = "No trades yet"

func PrintSummary(w io.Writer, owner string, s analytics.PerformanceSummary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " Performance: %s\n", owner)
	fmt.Fprintln(w, "==================================================")

	if s.Count == 0 {
		fmt.Fprintln(w, NoTrades)
		return
	}

	fmt.Fprintf(w, "Trades:        %d\n", s.Count)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %s%%\n", fixed2(s.WinRate))
	fmt.Fprintf(w, "Avg RR:        %s\n", fixed2(s.AvgRR))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", fixed2(s.MaxDrawdown))
	fmt.Fprintf(w, "Net P/L:       %s\n", fixed2(s.NetPnL))
}

// PrintTrades prints one row per trade. metrics[i] belongs to recs[i].
func PrintTrades(w io.Writer, recs []journal.TradeRecord, metrics []analytics.DerivedMetrics) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, NoTrades)
		return nil
	}
	if len(metrics) != len(recs) {
		return fmt.Errorf("print trades: %d records, %d metrics", len(recs), len(metrics))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tCreated\tPair\tDir\tEntry\tSL\tTP\tLot\tP/L\tRR\t")
	for i, r := range recs {
		m := metrics[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.ID,
			r.CreatedAt.UTC().Format("2006-01-02 15:04"),
			r.Instrument,
			r.Direction,
			price(r.EntryPrice),
			price(r.StopLossPrice),
			price(r.TakeProfitPrice),
			fixed2(r.PositionSize),
			fixed2(m.PnL),
			fixed2(m.RiskRewardRatio),
		)
	}
	return tw.Flush()
}

// PrintTrade prints a single trade with its derived metrics.
func PrintTrade(w io.Writer, r journal.TradeRecord, m analytics.DerivedMetrics) {
	fmt.Fprintf(w, "Trade ID:      %s\n", r.ID)
	fmt.Fprintf(w, "Created:       %s\n", r.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Pair:          %s\n", r.Instrument)
	fmt.Fprintf(w, "Direction:     %s\n", r.Direction)
	fmt.Fprintf(w, "Entry:         %s\n", price(r.EntryPrice))
	fmt.Fprintf(w, "Stop Loss:     %s\n", price(r.StopLossPrice))
	fmt.Fprintf(w, "Take Profit:   %s\n", price(r.TakeProfitPrice))
	fmt.Fprintf(w, "Lot:           %s\n", fixed2(r.PositionSize))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "P/L:           %s\n", fixed2(m.PnL))
	fmt.Fprintf(w, "Risk:          %s\n", fixed2(m.Risk))
	fmt.Fprintf(w, "Reward:        %s\n", fixed2(m.Reward))
	fmt.Fprintf(w, "RR:            %s\n", fixed2(m.RiskRewardRatio))

	if r.ScreenshotRef != "" {
		fmt.Fprintf(w, "Screenshot:    %s\n", r.ScreenshotRef)
	}
	if r.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Notes")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintln(w, r.Notes)
	}
}

func PrintEquity(w io.Writer, series analytics.EquitySeries) error {
	if len(series) == 0 {
		fmt.Fprintln(w, NoTrades)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTrade\tEquity\tPeak\tDrawdown\t")
	for i, p := range series {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			i+1, p.TradeID, fixed2(p.Equity), fixed2(p.Peak), fixed2(p.Drawdown))
	}
	return tw.Flush()
}

func PrintBreakdown(w io.Writer, groups []analytics.GroupSummary) error {
	if len(groups) == 0 {
		fmt.Fprintln(w, NoTrades)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Pair\tTrades\tWins\tWin Rate %\tNet P/L\tAvg RR\t")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t\n",
			g.Instrument, g.Count, g.Wins, fixed2(g.WinRate), fixed2(g.NetPnL), fixed2(g.AvgRR))
	}
	return tw.Flush()
}
