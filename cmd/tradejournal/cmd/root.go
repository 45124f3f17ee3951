package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/service"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A personal trading journal with performance analytics",
	Long: `Tradejournal records discretionary trades and turns them into
performance analytics.

It provides tools for:
  - Logging trades by hand or importing them from CSV
  - Per-trade P/L, risk, reward and risk-reward ratio
  - Equity curve and drawdown
  - Win rate, average RR and per-pair breakdowns
  - Exporting trades as CSV or Org-mode

Settings come from a YAML config file, a .env file, TRADEJOURNAL_* environment
variables and the flags below, in increasing order of precedence.`,
	SilenceUsage: true,
}

var (
	cfgFile     string
	envFile     string
	flagOwner   string
	flagDB      string
	flagStorage string
	flagLog     string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	pf.StringVar(&envFile, "env", ".env", "dotenv file to load if present")
	pf.StringVarP(&flagOwner, "owner", "u", "", "journal owner (overrides config)")
	pf.StringVarP(&flagDB, "db", "d", "", "path to SQLite journal DB (overrides config)")
	pf.StringVar(&flagStorage, "storage", "", "storage type: sqlite, postgres or memory")
	pf.StringVar(&flagLog, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig merges config file, .env, environment and flags.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if flagOwner != "" {
		cfg.Owner = flagOwner
	}
	if flagStorage != "" {
		cfg.Storage.Type = flagStorage
	}
	if flagDB != "" {
		cfg.Storage.DBPath = flagDB
	}
	if flagLog != "" {
		cfg.Log.Level = flagLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// app is what a journal command needs: config, logger and service.
type app struct {
	cfg *config.Config
	log *zap.Logger
	svc *service.Service
}

func (a *app) Close() {
	_ = a.svc.Close()
	_ = a.log.Sync()
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	store, err := cfg.OpenStore(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	delim, _ := cfg.Import.DelimiterRune()
	opts := []service.Option{
		service.WithLogger(log),
		service.WithMapping(cfg.Import.Columns, delim),
		service.WithGroupOrder(cfg.GroupOrder()),
	}
	if cfg.Report.Cache {
		opts = append(opts, service.WithCache(analytics.NewCache(cfg.Report.CacheSize)))
	}

	return &app{cfg: cfg, log: log, svc: service.New(store, opts...)}, nil
}
