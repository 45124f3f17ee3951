package config

import (
	"context"
	"fmt"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/journal/postgres"
)

// OpenStore opens the trade store named by c.Storage.
func (c *Config) OpenStore(ctx context.Context) (journal.Store, error) {
	switch c.Storage.Type {
	case "sqlite":
		s, err := journal.NewSQLite(c.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", c.Storage.DBPath, err)
		}
		return s, nil
	case "postgres":
		s, err := postgres.Open(ctx, c.Storage.DSN, postgres.DefaultPoolConfig())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return s, nil
	case "memory":
		return journal.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage type %q", c.Storage.Type)
}
