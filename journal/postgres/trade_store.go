package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// TradeStore implements journal.Store using PostgreSQL.
type TradeStore struct {
	pool *Pool
	now  func() time.Time
}

// NewTradeStore creates a TradeStore on an already migrated pool.
func NewTradeStore(pool *Pool) *TradeStore {
	return &TradeStore{pool: pool, now: time.Now}
}

// Open connects, migrates and returns a ready store. Close releases the pool.
func Open(ctx context.Context, dsn string, pc PoolConfig) (*TradeStore, error) {
	pool, err := NewPool(ctx, dsn, pc)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewTradeStore(pool), nil
}

var (
	_ journal.Store       = (*TradeStore)(nil)
	_ journal.RangeLister = (*TradeStore)(nil)
)

const selectTrades = `
	SELECT trade_id, owner, instrument, direction, entry_price, stop_loss_price,
	       take_profit_price, position_size, screenshot_ref, notes, created_at
	FROM trades
`

// AppendTrade inserts rec and returns its ID. Timestamps are kept at
// microsecond precision to match timestamptz.
func (s *TradeStore) AppendTrade(ctx context.Context, rec journal.TradeRecord) (string, error) {
	if err := journal.CheckAppend(rec); err != nil {
		return "", err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Microsecond)
	rec.ID = id.NewAt(rec.CreatedAt)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO trades (
			trade_id, owner, instrument, direction, entry_price, stop_loss_price,
			take_profit_price, position_size, screenshot_ref, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.Owner, rec.Instrument, string(rec.Direction), rec.EntryPrice,
		rec.StopLossPrice, rec.TakeProfitPrice, rec.PositionSize,
		rec.ScreenshotRef, rec.Notes, rec.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return "", journal.ErrDuplicateKey
		}
		return "", fmt.Errorf("insert trade: %w", err)
	}
	return rec.ID, nil
}

// ListTrades returns owner's trades ordered by created_at, trade_id.
func (s *TradeStore) ListTrades(ctx context.Context, owner string) ([]journal.TradeRecord, error) {
	return s.queryTrades(ctx, selectTrades+`
		WHERE owner = $1
		ORDER BY created_at ASC, trade_id ASC`, owner)
}

// ListTradesCreatedBetween returns owner's trades created within [start, end).
func (s *TradeStore) ListTradesCreatedBetween(ctx context.Context, owner string, start, end time.Time) ([]journal.TradeRecord, error) {
	return s.queryTrades(ctx, selectTrades+`
		WHERE owner = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC, trade_id ASC`, owner, start.UTC(), end.UTC())
}

func (s *TradeStore) queryTrades(ctx context.Context, query string, args ...any) ([]journal.TradeRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	out := []journal.TradeRecord{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trades: %w", err)
	}
	return out, nil
}

// GetTrade retrieves one trade. Returns journal.ErrNotFound if it does not
// exist for owner.
func (s *TradeStore) GetTrade(ctx context.Context, owner, tradeID string) (journal.TradeRecord, error) {
	row := s.pool.QueryRow(ctx, selectTrades+`WHERE owner = $1 AND trade_id = $2`, owner, tradeID)
	rec, err := scanTrade(row)
	if err != nil {
		if isNotFoundError(err) {
			return journal.TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, journal.ErrNotFound)
		}
		return journal.TradeRecord{}, fmt.Errorf("get trade: %w", err)
	}
	return rec, nil
}

func (s *TradeStore) UpdateMetadata(ctx context.Context, owner, tradeID, screenshotRef, notes string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE trades SET screenshot_ref = $1, notes = $2
		WHERE owner = $3 AND trade_id = $4`,
		screenshotRef, notes, owner, tradeID,
	)
	if err != nil {
		return fmt.Errorf("update trade metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, journal.ErrNotFound)
	}
	return nil
}

func (s *TradeStore) Close() error {
	s.pool.Close()
	return nil
}

func scanTrade(row pgx.Row) (journal.TradeRecord, error) {
	var (
		rec journal.TradeRecord
		dir string
	)
	err := row.Scan(
		&rec.ID, &rec.Owner, &rec.Instrument, &dir, &rec.EntryPrice, &rec.StopLossPrice,
		&rec.TakeProfitPrice, &rec.PositionSize, &rec.ScreenshotRef, &rec.Notes, &rec.CreatedAt,
	)
	if err != nil {
		return journal.TradeRecord{}, err
	}
	rec.Direction = journal.Direction(dir)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}
