package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// Memory is an in-memory Store. It is used by tests and by the
// `storage.type: memory` configuration for throwaway sessions.
type Memory struct {
	mu     sync.RWMutex
	trades map[string][]TradeRecord // keyed by owner, append order
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		trades: make(map[string][]TradeRecord),
		now:    time.Now,
	}
}

func (m *Memory) AppendTrade(_ context.Context, rec TradeRecord) (string, error) {
	if err := CheckAppend(rec); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.ID = id.NewAt(rec.CreatedAt)

	m.trades[rec.Owner] = append(m.trades[rec.Owner], rec)
	return rec.ID, nil
}

// ListTrades returns a copy of owner's trades in creation order.
func (m *Memory) ListTrades(_ context.Context, owner string) ([]TradeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return SortByCreation(m.trades[owner]), nil
}

// ListTradesCreatedBetween returns owner's trades created within [start, end).
func (m *Memory) ListTradesCreatedBetween(_ context.Context, owner string, start, end time.Time) ([]TradeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []TradeRecord{}
	for _, rec := range SortByCreation(m.trades[owner]) {
		if !rec.CreatedAt.Before(start) && rec.CreatedAt.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *Memory) GetTrade(_ context.Context, owner, tradeID string) (TradeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.trades[owner] {
		if rec.ID == tradeID {
			return rec, nil
		}
	}
	return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
}

func (m *Memory) UpdateMetadata(_ context.Context, owner, tradeID, screenshotRef, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.trades[owner]
	for i := range recs {
		if recs[i].ID == tradeID {
			recs[i].ScreenshotRef = screenshotRef
			recs[i].Notes = notes
			return nil
		}
	}
	return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
}

func (m *Memory) Close() error {
	return nil
}

var (
	_ Store       = (*Memory)(nil)
	_ RangeLister = (*Memory)(nil)
)
