package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// SQLite is the default on-disk Store.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrStorageUnavailable, err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// AppendTrade inserts rec and returns its new ID. CreatedAt is stamped when
// the caller left it zero.
func (j *SQLite) AppendTrade(ctx context.Context, rec TradeRecord) (string, error) {
	if err := CheckAppend(rec); err != nil {
		return "", err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = j.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.ID = id.NewAt(rec.CreatedAt)

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, owner, instrument, direction, entry_price, stop_loss_price, take_profit_price,
		 position_size, screenshot_ref, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Owner, rec.Instrument, string(rec.Direction), rec.EntryPrice,
		rec.StopLossPrice, rec.TakeProfitPrice, rec.PositionSize,
		rec.ScreenshotRef, rec.Notes, rec.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert trade: %w", err)
	}
	return rec.ID, nil
}

// UpdateMetadata replaces the screenshot reference and notes of a trade.
// Prices and size are never touched.
func (j *SQLite) UpdateMetadata(ctx context.Context, owner, tradeID, screenshotRef, notes string) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET screenshot_ref = ?, notes = ?
		WHERE owner = ? AND trade_id = ?`,
		screenshotRef, notes, owner, tradeID,
	)
	if err != nil {
		return fmt.Errorf("update trade metadata: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trade metadata: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

var (
	_ Store       = (*SQLite)(nil)
	_ RangeLister = (*SQLite)(nil)
)
