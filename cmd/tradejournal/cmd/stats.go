package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the performance summary",
	Long:  `Show trade count, win rate, average RR, max drawdown and net P/L.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Show the equity curve and drawdown per trade",
	Args:  cobra.NoArgs,
	RunE:  runEquity,
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Show performance per pair",
	Long: `Show trades, wins, win rate, net P/L and average RR for each pair.
Pairs are listed in first-seen order unless report.group_order is
"alphabetical" or --alpha is given.`,
	Args: cobra.NoArgs,
	RunE: runPairs,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades and the equity curve",
	Long: `Export trades (CSV with derived metrics), the equity curve (CSV) or an
Org-mode journal. With no output flags the trades CSV is written to stdout.

Examples:
  tradejournal export > trades.csv
  tradejournal export --trades trades.csv --equity equity.csv
  tradejournal export --org journal.org`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	pairsAlpha bool

	exportTrades string
	exportEquity string
	exportOrg    string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(exportCmd)

	pairsCmd.Flags().BoolVar(&pairsAlpha, "alpha", false, "sort pairs alphabetically")

	exportCmd.Flags().StringVar(&exportTrades, "trades", "", "trades CSV output path")
	exportCmd.Flags().StringVar(&exportEquity, "equity", "", "equity CSV output path")
	exportCmd.Flags().StringVar(&exportOrg, "org", "", "Org-mode output path")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	_, summary, err := a.svc.Performance(cmd.Context(), a.cfg.Owner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	report.PrintSummary(cmd.OutOrStdout(), a.cfg.Owner, summary)
	return nil
}

func runEquity(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	series, _, err := a.svc.Performance(cmd.Context(), a.cfg.Owner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	return report.PrintEquity(cmd.OutOrStdout(), series)
}

func runPairs(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var groups []analytics.GroupSummary
	if pairsAlpha {
		recs, err := a.svc.Trades(cmd.Context(), a.cfg.Owner)
		if err != nil {
			return fmt.Errorf("breakdown: %w", err)
		}
		groups = analytics.ComputeGroupBreakdown(recs, analytics.GroupAlphabetical)
	} else {
		groups, err = a.svc.Breakdown(cmd.Context(), a.cfg.Owner)
		if err != nil {
			return fmt.Errorf("breakdown: %w", err)
		}
	}
	return report.PrintBreakdown(cmd.OutOrStdout(), groups)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := a.svc.Trades(cmd.Context(), a.cfg.Owner)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	metrics := analytics.ComputeAll(recs)

	if exportTrades == "" && exportEquity == "" && exportOrg == "" {
		return report.WriteTradesCSV(cmd.OutOrStdout(), recs, metrics)
	}

	if exportTrades != "" {
		err := writeFile(exportTrades, func(w io.Writer) error {
			return report.WriteTradesCSV(w, recs, metrics)
		})
		if err != nil {
			return err
		}
	}
	if exportEquity != "" {
		series, _ := analytics.ComputePerformance(recs)
		err := writeFile(exportEquity, func(w io.Writer) error {
			return report.WriteEquityCSV(w, series)
		})
		if err != nil {
			return err
		}
	}
	if exportOrg != "" {
		err := writeFile(exportOrg, func(w io.Writer) error {
			_, err := io.WriteString(w, report.FormatTradesOrg(recs, metrics)+"\n")
			return err
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades\n", len(recs))
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
