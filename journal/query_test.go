package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	created := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	expected := TradeRecord{
		Owner:           "vicky",
		Instrument:      "GBPUSD",
		Direction:       Short,
		EntryPrice:      1.2500,
		StopLossPrice:   1.2550,
		TakeProfitPrice: 1.2400,
		PositionSize:    0.5,
		Notes:           "fade",
		CreatedAt:       created,
	}

	tradeID, err := j.AppendTrade(ctx, expected)
	require.NoError(t, err)

	actual, err := j.GetTrade(ctx, "vicky", tradeID)
	require.NoError(t, err)

	assert.Equal(t, tradeID, actual.ID)
	assert.Equal(t, expected.Owner, actual.Owner)
	assert.Equal(t, expected.Instrument, actual.Instrument)
	assert.Equal(t, Short, actual.Direction)
	assert.InDelta(t, expected.EntryPrice, actual.EntryPrice, 1e-9)
	assert.InDelta(t, expected.StopLossPrice, actual.StopLossPrice, 1e-9)
	assert.InDelta(t, expected.TakeProfitPrice, actual.TakeProfitPrice, 1e-9)
	assert.InDelta(t, expected.PositionSize, actual.PositionSize, 1e-9)
	assert.Equal(t, expected.Notes, actual.Notes)
	assert.True(t, actual.CreatedAt.Equal(created))
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade(context.Background(), "vicky", "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTradesOwnerIsolation(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	_, err := j.AppendTrade(ctx, eurusdLong("vicky"))
	require.NoError(t, err)
	_, err = j.AppendTrade(ctx, eurusdLong("test"))
	require.NoError(t, err)
	_, err = j.AppendTrade(ctx, eurusdLong("vicky"))
	require.NoError(t, err)

	vicky, err := j.ListTrades(ctx, "vicky")
	require.NoError(t, err)
	assert.Len(t, vicky, 2)
	for _, rec := range vicky {
		assert.Equal(t, "vicky", rec.Owner)
	}

	nobody, err := j.ListTrades(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, nobody)
	assert.Empty(t, nobody)
}

func TestListTradesCreationOrder(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	instruments := []string{"USDJPY", "EURUSD", "XAUUSD"}
	offsets := []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour}

	for i, inst := range instruments {
		rec := eurusdLong("vicky")
		rec.Instrument = inst
		rec.CreatedAt = base.Add(offsets[i])
		_, err := j.AppendTrade(ctx, rec)
		require.NoError(t, err)
	}

	recs, err := j.ListTrades(ctx, "vicky")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "EURUSD", recs[0].Instrument)
	assert.Equal(t, "XAUUSD", recs[1].Instrument)
	assert.Equal(t, "USDJPY", recs[2].Instrument)
}

// Not parallel: ID tie-breaking relies on the monotonic ULID source seeing
// this test's timestamps back to back.
func TestListTradesSameTimestampKeepsInsertOrder(t *testing.T) {
	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	stamp := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	want := []string{"EURUSD", "GBPUSD", "USDJPY", "BTCUSD"}
	for _, inst := range want {
		rec := eurusdLong("vicky")
		rec.Instrument = inst
		rec.CreatedAt = stamp
		_, err := j.AppendTrade(ctx, rec)
		require.NoError(t, err)
	}

	recs, err := j.ListTrades(ctx, "vicky")
	require.NoError(t, err)
	require.Len(t, recs, len(want))
	for i, inst := range want {
		assert.Equal(t, inst, recs[i].Instrument)
	}
}

func TestListTradesCreatedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, h := range []int{1, 5, 10, 24} {
		rec := eurusdLong("vicky")
		rec.Notes = []string{"early", "middle", "late", "next_day"}[i]
		rec.CreatedAt = base.Add(time.Duration(h) * time.Hour)
		_, err := j.AppendTrade(ctx, rec)
		require.NoError(t, err)
	}

	results, err := j.ListTradesCreatedBetween(ctx, "vicky", base.Add(3*time.Hour), base.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "middle", results[0].Notes)
	assert.Equal(t, "late", results[1].Notes)
}
