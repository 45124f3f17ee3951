package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "default", cfg.Owner)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "pair", cfg.Import.Columns.Instrument)
	assert.Equal(t, analytics.GroupByFirstSeen, cfg.GroupOrder())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			edit: func(*Config) {},
		},
		{
			name:    "missing owner",
			edit:    func(c *Config) { c.Owner = " " },
			wantErr: true,
			errMsg:  "owner is required",
		},
		{
			name:    "unknown storage",
			edit:    func(c *Config) { c.Storage.Type = "csv" },
			wantErr: true,
			errMsg:  "storage.type must be",
		},
		{
			name:    "sqlite without path",
			edit:    func(c *Config) { c.Storage.DBPath = "" },
			wantErr: true,
			errMsg:  "db_path required",
		},
		{
			name:    "postgres without dsn",
			edit:    func(c *Config) { c.Storage.Type = "postgres" },
			wantErr: true,
			errMsg:  "dsn required",
		},
		{
			name: "memory needs nothing",
			edit: func(c *Config) { c.Storage = StorageConfig{Type: "memory"} },
		},
		{
			name:    "bad delimiter",
			edit:    func(c *Config) { c.Import.Delimiter = ";;" },
			wantErr: true,
			errMsg:  "single character",
		},
		{
			name:    "bad group order",
			edit:    func(c *Config) { c.Report.GroupOrder = "by_pnl" },
			wantErr: true,
			errMsg:  "report.group_order",
		},
		{
			name:    "bad log level",
			edit:    func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log format",
			edit:    func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Owner = "vicky"
			cfg.Import.Columns.Instrument = "Symbol"
			cfg.Report.GroupOrder = "alphabetical"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
			assert.Equal(t, analytics.GroupAlphabetical, loaded.GroupOrder())
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "owner: vicky\nimport:\n  columns:\n    instrument: Symbol\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "vicky", cfg.Owner)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "Symbol", cfg.Import.Columns.Instrument)
	assert.Equal(t, "lot", cfg.Import.Columns.Lot)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: csv\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRADEJOURNAL_OWNER", "vicky")
	t.Setenv("TRADEJOURNAL_STORAGE", "postgres")
	t.Setenv("TRADEJOURNAL_DSN", "postgres://localhost/journal")
	t.Setenv("TRADEJOURNAL_DB", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "vicky", cfg.Owner)
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, "postgres://localhost/journal", cfg.Storage.DSN)
	assert.Equal(t, "./tradejournal.sqlite", cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", ',', false},
		{",", ',', false},
		{";", ';', false},
		{"tab", '\t', false},
		{`\t`, '\t', false},
		{"|", '|', false},
		{"\"", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		got, err := ImportConfig{Delimiter: tt.in}.DelimiterRune()
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "journal.sqlite")
	s, err := cfg.OpenStore(ctx)
	require.NoError(t, err)
	_, ok := s.(*journal.SQLite)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	cfg.Storage = StorageConfig{Type: "memory"}
	s, err = cfg.OpenStore(ctx)
	require.NoError(t, err)
	_, ok = s.(*journal.Memory)
	assert.True(t, ok)

	cfg.Storage = StorageConfig{Type: "csv"}
	_, err = cfg.OpenStore(ctx)
	assert.Error(t, err)

	cfg.Storage = StorageConfig{Type: "sqlite", DBPath: filepath.Join(t.TempDir(), "missing", "dir", "x.sqlite")}
	_, err = cfg.OpenStore(ctx)
	assert.True(t, errors.Is(err, journal.ErrStorageUnavailable))
}
