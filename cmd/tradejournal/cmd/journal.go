package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/service"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Long: `Record a single trade. Stop loss and take profit are optional.

Examples:
  tradejournal add --pair EURUSD --direction buy --entry 1.1 --sl 1.095 --tp 1.11 --lot 1
  tradejournal add --pair XAUUSD --direction sell --entry 2000 --lot 0.1 --notes "news fade"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from a CSV file",
	Long: `Import trades from a CSV file with a header line. Columns are matched using
the import.columns mapping of the config (default: pair,direction,entry,stoploss,
takeprofit,lot and optional screenshot,notes). Invalid rows are skipped and listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List trades in creation order",
	Long: `List trades with their P/L and risk-reward ratio.

Examples:
  tradejournal trades
  tradejournal trades --today
  tradejournal trades --day 2024-01-15 --org`,
	Args: cobra.NoArgs,
	RunE: runTrades,
}

var tradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Show details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrade,
}

var noteCmd = &cobra.Command{
	Use:   "note <trade-id>",
	Short: "Set the notes and screenshot of a trade",
	Long: `Replace the notes and screenshot reference of a trade. Prices and size
cannot be changed after a trade is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runNote,
}

var (
	addPair       string
	addDirection  string
	addEntry      string
	addStopLoss   string
	addTakeProfit string
	addLot        string
	addScreenshot string
	addNotes      string

	tradesDay   string
	tradesToday bool
	tradesOrg   bool
	tradeOrg    bool

	noteText       string
	noteScreenshot string
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(tradesCmd)
	rootCmd.AddCommand(tradeCmd)
	rootCmd.AddCommand(noteCmd)

	addCmd.Flags().StringVarP(&addPair, "pair", "p", "", "instrument, e.g. EURUSD (required)")
	addCmd.Flags().StringVar(&addDirection, "direction", "", "buy/long or sell/short (required)")
	addCmd.Flags().StringVarP(&addEntry, "entry", "e", "", "entry price (required)")
	addCmd.Flags().StringVar(&addStopLoss, "sl", "", "stop loss price")
	addCmd.Flags().StringVar(&addTakeProfit, "tp", "", "take profit price")
	addCmd.Flags().StringVarP(&addLot, "lot", "l", "", "position size in lots (required)")
	addCmd.Flags().StringVar(&addScreenshot, "screenshot", "", "screenshot path or URL")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")

	tradesCmd.Flags().StringVar(&tradesDay, "day", "", "only trades created on this day (YYYY-MM-DD, local time)")
	tradesCmd.Flags().BoolVar(&tradesToday, "today", false, "only trades created today")
	tradesCmd.Flags().BoolVar(&tradesOrg, "org", false, "print as Org-mode blocks")
	tradeCmd.Flags().BoolVar(&tradeOrg, "org", false, "print as an Org-mode block")

	noteCmd.Flags().StringVarP(&noteText, "notes", "n", "", "notes text")
	noteCmd.Flags().StringVar(&noteScreenshot, "screenshot", "", "screenshot path or URL")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m := a.svc.Mapping()
	row := map[string]string{
		m.Instrument: addPair,
		m.Direction:  addDirection,
		m.Entry:      addEntry,
		m.StopLoss:   addStopLoss,
		m.TakeProfit: addTakeProfit,
		m.Lot:        addLot,
		m.Screenshot: addScreenshot,
		m.Notes:      addNotes,
	}

	rec, err := a.svc.AddTrade(cmd.Context(), a.cfg.Owner, row)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Recorded trade %s\n\n", rec.ID)
	report.PrintTrade(out, rec, analytics.ComputeDerivedMetrics(rec))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	res, err := a.svc.ImportCSV(cmd.Context(), a.cfg.Owner, f)
	out := cmd.OutOrStdout()
	if res.Imported > 0 || res.Skipped > 0 {
		fmt.Fprintf(out, "Imported: %d\n", res.Imported)
		fmt.Fprintf(out, "Skipped:  %d\n", res.Skipped)
		for _, ve := range res.Errors {
			fmt.Fprintf(out, "  %v\n", ve)
		}
	}
	if err != nil {
		return err
	}
	if res.Imported == 0 && res.Skipped == 0 {
		fmt.Fprintln(out, report.NoTrades)
	}
	return nil
}

func runTrades(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	day := tradesDay
	if tradesToday {
		day = time.Now().Format("2006-01-02")
	}

	recs, err := listTrades(ctx, a.svc, a.cfg.Owner, day, time.Local)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	metrics := analytics.ComputeAll(recs)
	if tradesOrg {
		if len(recs) == 0 {
			fmt.Fprintln(out, report.NoTrades)
			return nil
		}
		fmt.Fprintln(out, report.FormatTradesOrg(recs, metrics))
		return nil
	}
	return report.PrintTrades(out, recs, metrics)
}

func runTrade(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, m, err := a.svc.TradeDetail(cmd.Context(), a.cfg.Owner, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	if tradeOrg {
		fmt.Fprintln(cmd.OutOrStdout(), report.FormatTradeOrg(rec, m))
		return nil
	}
	report.PrintTrade(cmd.OutOrStdout(), rec, m)
	return nil
}

func runNote(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	rec, _, err := a.svc.TradeDetail(ctx, a.cfg.Owner, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	notes, shot := rec.Notes, rec.ScreenshotRef
	if cmd.Flags().Changed("notes") {
		notes = noteText
	}
	if cmd.Flags().Changed("screenshot") {
		shot = noteScreenshot
	}

	if err := a.svc.UpdateMetadata(ctx, a.cfg.Owner, rec.ID, shot, notes); err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated trade %s\n", rec.ID)
	return nil
}

// listTrades returns all of owner's trades, or only those created on day
// (YYYY-MM-DD in loc) when day is set.
func listTrades(ctx context.Context, svc *service.Service, owner, day string, loc *time.Location) ([]journal.TradeRecord, error) {
	if day == "" {
		recs, err := svc.Trades(ctx, owner)
		if err != nil {
			return nil, fmt.Errorf("query trades: %w", err)
		}
		return recs, nil
	}

	start, end, err := dayBounds(loc, day)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	recs, err := svc.TradesBetween(ctx, owner, start, end)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return recs, nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
