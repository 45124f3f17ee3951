package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, owner, instrument, direction, entry_price, stop_loss_price,
	take_profit_price, position_size, screenshot_ref, notes, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (TradeRecord, error) {
	var (
		rec TradeRecord
		dir string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Owner,
		&rec.Instrument,
		&dir,
		&rec.EntryPrice,
		&rec.StopLossPrice,
		&rec.TakeProfitPrice,
		&rec.PositionSize,
		&rec.ScreenshotRef,
		&rec.Notes,
		&rec.CreatedAt,
	)
	rec.Direction = Direction(dir)
	return rec, err
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, owner, tradeID string) (TradeRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE owner = ? AND trade_id = ?`, owner, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns every trade of owner in creation order.
func (j *SQLite) ListTrades(ctx context.Context, owner string) ([]TradeRecord, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE owner = ?
		ORDER BY created_at ASC, trade_id ASC`, owner)
}

// ListTradesCreatedBetween returns trades of owner created within [start, end).
func (j *SQLite) ListTradesCreatedBetween(ctx context.Context, owner string, start, end time.Time) ([]TradeRecord, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE owner = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, trade_id ASC`, owner, start.UTC(), end.UTC())
}

func (j *SQLite) queryTrades(ctx context.Context, query string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TradeRecord{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
