package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or check a journal config file",
	Long: `Create or check journal config files (YAML, or JSON by extension).

Examples:
  tradejournal config init -o journal.yaml
  tradejournal config validate -f journal.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Long: `Write a config file with the default owner, SQLite storage, import
column mapping, report and log settings.

Example:
  tradejournal config init -o journal.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a config file and report its settings",
	Long: `Load a config file, validate it and print the effective settings.

Example:
  tradejournal config validate -f journal.yaml`,
	RunE: runConfigValidate,
}

var (
	initOut      string
	validateFile string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&initOut, "output", "o", "tradejournal.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "config file to check (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(initOut); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", initOut)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  tradejournal --config %s stats\n", initOut)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(validateFile)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", validateFile)
	fmt.Fprintf(out, "  Owner:   %s\n", cfg.Owner)
	fmt.Fprintf(out, "  Storage: %s\n", cfg.Storage.Type)
	fmt.Fprintf(out, "  Columns: %s,%s,%s,%s,%s,%s\n",
		cfg.Import.Columns.Instrument, cfg.Import.Columns.Direction, cfg.Import.Columns.Entry,
		cfg.Import.Columns.StopLoss, cfg.Import.Columns.TakeProfit, cfg.Import.Columns.Lot)
	fmt.Fprintf(out, "  Pairs:   %s\n", cfg.GroupOrder())
	return nil
}
