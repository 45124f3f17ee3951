// Package logger builds the zap loggers used by the service and the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // console or json
}

// DefaultConfig is info level console output.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// LoadConfigFromEnv overlays LOG_LEVEL and LOG_FORMAT on base.
func LoadConfigFromEnv(base Config) Config {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		base.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		base.Format = v
	}
	return base
}

// New returns a logger writing to stderr. Stdout is left to command output.
func New(cfg Config) (*zap.Logger, error) {
	return NewTo(cfg, os.Stderr)
}

// NewTo returns a logger writing to w.
func NewTo(cfg Config, w io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	case "", "console", "text":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
