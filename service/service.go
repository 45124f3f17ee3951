// Package service ties the journal store, the ingestion validator and the
// analytics engine together behind owner-scoped operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/ingest"
	"github.com/rustyeddy/tradejournal/journal"
)

type Service struct {
	store     journal.Store
	log       *zap.Logger
	clock     *clock
	cache     *analytics.Cache
	mapping   ingest.ColumnMapping
	delimiter rune
	order     analytics.GroupOrder
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the source of creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.clock = newClock(now) }
}

// WithCache memoizes performance and breakdown results. A nil cache
// disables memoization.
func WithCache(c *analytics.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithMapping sets the import column mapping and delimiter (0 means ',').
func WithMapping(m ingest.ColumnMapping, delimiter rune) Option {
	return func(s *Service) {
		s.mapping = m.WithDefaults()
		s.delimiter = delimiter
	}
}

func WithGroupOrder(o analytics.GroupOrder) Option {
	return func(s *Service) { s.order = o }
}

func New(store journal.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		log:     zap.NewNop(),
		clock:   newClock(nil),
		mapping: ingest.DefaultMapping(),
		order:   analytics.GroupByFirstSeen,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mapping returns the column mapping used for manual entry and imports.
func (s *Service) Mapping() ingest.ColumnMapping { return s.mapping }

// AddTrade validates a single manually entered row and appends it.
func (s *Service) AddTrade(ctx context.Context, owner string, row map[string]string) (journal.TradeRecord, error) {
	rec, err := ingest.ValidateAndBuildRecord(owner, row, s.mapping)
	if err != nil {
		return journal.TradeRecord{}, err
	}
	rec.CreatedAt = s.clock.next()

	id, err := s.store.AppendTrade(ctx, rec)
	if err != nil {
		s.log.Error("append trade failed", zap.String("owner", rec.Owner), zap.Error(err))
		return journal.TradeRecord{}, storageErr("append trade", err)
	}
	rec.ID = id

	s.log.Info("trade added",
		zap.String("owner", rec.Owner),
		zap.String("id", id),
		zap.String("instrument", rec.Instrument),
		zap.String("direction", string(rec.Direction)),
	)
	return rec, nil
}

// ImportCSV imports a delimited file for owner. Rows that fail validation
// are skipped and reported in the result.
func (s *Service) ImportCSV(ctx context.Context, owner string, r io.Reader) (ingest.BatchResult, error) {
	res, err := ingest.ImportCSV(ctx, owner, r, stamper{s}, ingest.Options{
		Mapping:   s.mapping,
		Delimiter: s.delimiter,
	})

	for _, ve := range res.Errors {
		s.log.Debug("row skipped",
			zap.Int("row", ve.Row),
			zap.String("field", ve.Field),
			zap.String("reason", string(ve.Reason)),
			zap.String("value", ve.Value),
		)
	}
	if err != nil {
		s.log.Error("import failed",
			zap.String("owner", owner),
			zap.Int("imported", res.Imported),
			zap.Error(err),
		)
		return res, fmt.Errorf("import: %w", err)
	}

	s.log.Info("import finished",
		zap.String("owner", owner),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// stamper appends records with service-issued creation times so an import
// keeps its input order.
type stamper struct{ s *Service }

func (st stamper) AppendTrade(ctx context.Context, rec journal.TradeRecord) (string, error) {
	rec.CreatedAt = st.s.clock.next()
	id, err := st.s.store.AppendTrade(ctx, rec)
	if err != nil {
		return "", storageErr("append trade", err)
	}
	return id, nil
}

// Trades returns owner's trades in creation order.
func (s *Service) Trades(ctx context.Context, owner string) ([]journal.TradeRecord, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	recs, err := s.store.ListTrades(ctx, owner)
	if err != nil {
		s.log.Error("list trades failed", zap.String("owner", owner), zap.Error(err))
		return nil, storageErr("list trades", err)
	}
	return journal.SortByCreation(recs), nil
}

// TradesBetween returns owner's trades created within [start, end), in
// creation order.
func (s *Service) TradesBetween(ctx context.Context, owner string, start, end time.Time) ([]journal.TradeRecord, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	if rl, ok := s.store.(journal.RangeLister); ok {
		recs, err := rl.ListTradesCreatedBetween(ctx, owner, start, end)
		if err != nil {
			return nil, storageErr("list trades", err)
		}
		return journal.SortByCreation(recs), nil
	}

	recs, err := s.Trades(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := []journal.TradeRecord{}
	for _, rec := range recs {
		if !rec.CreatedAt.Before(start) && rec.CreatedAt.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// TradeDetail returns one trade with its derived metrics.
func (s *Service) TradeDetail(ctx context.Context, owner, tradeID string) (journal.TradeRecord, analytics.DerivedMetrics, error) {
	if err := checkOwner(owner); err != nil {
		return journal.TradeRecord{}, analytics.DerivedMetrics{}, err
	}
	rec, err := s.store.GetTrade(ctx, owner, tradeID)
	if err != nil {
		return journal.TradeRecord{}, analytics.DerivedMetrics{}, storageErr("get trade", err)
	}
	return rec, analytics.ComputeDerivedMetrics(rec), nil
}

// Performance returns owner's equity curve and summary.
func (s *Service) Performance(ctx context.Context, owner string) (analytics.EquitySeries, analytics.PerformanceSummary, error) {
	recs, err := s.Trades(ctx, owner)
	if err != nil {
		return nil, analytics.PerformanceSummary{}, err
	}
	if s.cache != nil {
		series, summary := s.cache.Performance(owner, recs)
		return series, summary, nil
	}
	series, summary := analytics.ComputePerformance(recs)
	return series, summary, nil
}

// Breakdown returns owner's per-instrument summaries.
func (s *Service) Breakdown(ctx context.Context, owner string) ([]analytics.GroupSummary, error) {
	recs, err := s.Trades(ctx, owner)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		return s.cache.Breakdown(owner, recs, s.order), nil
	}
	return analytics.ComputeGroupBreakdown(recs, s.order), nil
}

// UpdateMetadata replaces the screenshot reference and notes of a trade.
func (s *Service) UpdateMetadata(ctx context.Context, owner, tradeID, screenshotRef, notes string) error {
	if err := checkOwner(owner); err != nil {
		return err
	}
	if err := s.store.UpdateMetadata(ctx, owner, tradeID, screenshotRef, notes); err != nil {
		return storageErr("update metadata", err)
	}
	s.log.Info("metadata updated", zap.String("owner", owner), zap.String("id", tradeID))
	return nil
}

func (s *Service) Close() error {
	return s.store.Close()
}

func checkOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: owner is required", journal.ErrInvalidInput)
	}
	return nil
}

// storageErr wraps err for op. Errors the store already classified keep
// their sentinel; anything else is reported as ErrStorageUnavailable.
func storageErr(op string, err error) error {
	switch {
	case errors.Is(err, journal.ErrNotFound),
		errors.Is(err, journal.ErrInvalidInput),
		errors.Is(err, journal.ErrDuplicateKey),
		errors.Is(err, journal.ErrStorageUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, journal.ErrStorageUnavailable, err)
}
