package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting into a journal.
// Structured facts live in a PROPERTIES drawer for easy search; the trade's notes
// become the Review section.
func FormatTradeOrg(t journal.TradeRecord, m analytics.DerivedMetrics) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Instrument, t.Direction, shortID(t.ID))
	created := t.CreatedAt.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", t.Instrument))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":LOT: %s\n", fixed2(t.PositionSize)))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.5f\n", t.StopLossPrice))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", t.TakeProfitPrice))
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", created))
	b.WriteString(fmt.Sprintf(":PNL: %s\n", fixed2(m.PnL)))
	b.WriteString(fmt.Sprintf(":RISK: %s\n", fixed2(m.Risk)))
	b.WriteString(fmt.Sprintf(":REWARD: %s\n", fixed2(m.Reward)))
	b.WriteString(fmt.Sprintf(":RR: %s\n", fixed2(m.RiskRewardRatio)))
	if t.ScreenshotRef != "" {
		b.WriteString(fmt.Sprintf(":SCREENSHOT: %s\n", t.ScreenshotRef))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n")
	if t.Notes == "" {
		b.WriteString("- \n")
	} else {
		for _, line := range strings.Split(strings.TrimRight(t.Notes, "\n"), "\n") {
			b.WriteString("- " + line + "\n")
		}
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
// metrics[i] belongs to trades[i].
func FormatTradesOrg(trades []journal.TradeRecord, metrics []analytics.DerivedMetrics) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		var m analytics.DerivedMetrics
		if i < len(metrics) {
			m = metrics[i]
		}
		b.WriteString(FormatTradeOrg(t, m))
	}
	return b.String()
}

// shortID keeps the random tail of a ULID; its head is the timestamp and is
// shared by trades entered in the same millisecond.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
