package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/ingest"
	"github.com/rustyeddy/tradejournal/internal/logger"
)

// Config represents the complete journal configuration
type Config struct {
	Owner   string        `json:"owner" yaml:"owner"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Import  ImportConfig  `json:"import" yaml:"import"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	Log     logger.Config `json:"log" yaml:"log"`
}

// StorageConfig selects the trade store
type StorageConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite", "postgres" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// ImportConfig describes the layout of CSV imports
type ImportConfig struct {
	Columns   ingest.ColumnMapping `json:"columns" yaml:"columns"`
	Delimiter string               `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// ReportConfig contains analytics display options
type ReportConfig struct {
	GroupOrder string `json:"group_order" yaml:"group_order"` // "first_seen" or "alphabetical"
	Cache      bool   `json:"cache" yaml:"cache"`
	CacheSize  int    `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	cfg.Import.Columns = cfg.Import.Columns.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from the environment. Call it after .env
// files have been loaded.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Owner, "TRADEJOURNAL_OWNER")
	set(&c.Storage.Type, "TRADEJOURNAL_STORAGE")
	set(&c.Storage.DBPath, "TRADEJOURNAL_DB")
	set(&c.Storage.DSN, "TRADEJOURNAL_DSN")
	c.Log = logger.LoadConfigFromEnv(c.Log)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("owner is required")
	}
	switch c.Storage.Type {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage db_path required for sqlite type")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage dsn required for postgres type")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.type must be 'sqlite', 'postgres' or 'memory'")
	}
	if err := c.Import.Columns.WithDefaults().Validate(); err != nil {
		return err
	}
	if _, err := c.Import.DelimiterRune(); err != nil {
		return err
	}
	if _, err := analytics.ParseGroupOrder(c.Report.GroupOrder); err != nil {
		return fmt.Errorf("report.group_order: %w", err)
	}
	if c.Report.CacheSize < 0 {
		return fmt.Errorf("report.cache_size must not be negative")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// DelimiterRune returns the field separator. Empty means ','; "tab" and
// "\t" both mean a tab.
func (ic ImportConfig) DelimiterRune() (rune, error) {
	switch ic.Delimiter {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(ic.Delimiter)
	if size != len(ic.Delimiter) || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("import.delimiter %q must be a single character", ic.Delimiter)
	}
	return r, nil
}

// GroupOrder returns the parsed report.group_order.
func (c *Config) GroupOrder() analytics.GroupOrder {
	o, _ := analytics.ParseGroupOrder(c.Report.GroupOrder)
	return o
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Owner: "default",
		Storage: StorageConfig{
			Type:   "sqlite",
			DBPath: "./tradejournal.sqlite",
		},
		Import: ImportConfig{
			Columns:   ingest.DefaultMapping(),
			Delimiter: ",",
		},
		Report: ReportConfig{
			GroupOrder: "first_seen",
			Cache:      true,
			CacheSize:  16,
		},
		Log: logger.DefaultConfig(),
	}
}
