// journal/journal.go
package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Direction is the side of a trade. It decides the sign of its P/L.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// ParseDirection normalizes a user supplied side. Both the Long/Short and
// the Buy/Sell vocabularies are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long, nil
	case "short", "sell":
		return Short, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// TradeRecord is a single journaled trade. Once appended only ScreenshotRef
// and Notes may change; prices and size are write-once.
type TradeRecord struct {
	ID              string
	Owner           string
	Instrument      string
	Direction       Direction
	EntryPrice      float64
	StopLossPrice   float64 // 0 means not set
	TakeProfitPrice float64 // 0 means not set
	PositionSize    float64 // lots, > 0

	ScreenshotRef string
	Notes         string

	CreatedAt time.Time
}

// Store persists trade records per owner. ListTrades returns records in
// creation order with ties broken by ID ascending.
type Store interface {
	AppendTrade(ctx context.Context, rec TradeRecord) (string, error)
	ListTrades(ctx context.Context, owner string) ([]TradeRecord, error)
	GetTrade(ctx context.Context, owner, tradeID string) (TradeRecord, error)
	UpdateMetadata(ctx context.Context, owner, tradeID, screenshotRef, notes string) error
	Close() error
}

// RangeLister is implemented by stores that can filter trades by creation
// time. Results keep the ListTrades order.
type RangeLister interface {
	ListTradesCreatedBetween(ctx context.Context, owner string, start, end time.Time) ([]TradeRecord, error)
}

// CheckAppend validates the fields every store requires before an insert.
func CheckAppend(rec TradeRecord) error {
	if rec.Owner == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if rec.Instrument == "" {
		return fmt.Errorf("%w: instrument is required", ErrInvalidInput)
	}
	if !rec.Direction.Valid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidInput, rec.Direction)
	}
	if rec.PositionSize <= 0 {
		return fmt.Errorf("%w: position size must be positive", ErrInvalidInput)
	}
	return nil
}

// SortByCreation returns a copy of recs ordered by CreatedAt, ties broken by
// ID ascending. The input slice is left untouched.
func SortByCreation(recs []TradeRecord) []TradeRecord {
	out := make([]TradeRecord, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
