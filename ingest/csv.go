package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rustyeddy/tradejournal/journal"
)

// Row is one data line of an import file keyed by header.
type Row struct {
	Num    int // 1-based, header excluded
	Values map[string]string
}

// RowReader reads a delimited file with a header line.
type RowReader struct {
	r      *csv.Reader
	header []string
	num    int
}

// NewRowReader reads the header from r. A zero delim means ','.
func NewRowReader(r io.Reader, delim rune) (*RowReader, error) {
	cr := csv.NewReader(r)
	if delim != 0 {
		cr.Comma = delim
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = !unicode.IsSpace(cr.Comma)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}
	return &RowReader{r: cr, header: header}, nil
}

func (rr *RowReader) Header() []string { return rr.header }

// Next returns the next row. ok is false at end of input. Short lines leave
// the missing columns empty; extra cells are ignored.
func (rr *RowReader) Next() (Row, bool, error) {
	for {
		rec, err := rr.r.Read()
		if err == io.EOF {
			return Row{}, false, nil
		}
		if err != nil {
			return Row{}, false, fmt.Errorf("read row %d: %w", rr.num+1, err)
		}
		if blank(rec) {
			continue
		}
		rr.num++
		values := make(map[string]string, len(rr.header))
		for i, h := range rr.header {
			if i < len(rec) {
				values[h] = rec[i]
			} else {
				values[h] = ""
			}
		}
		return Row{Num: rr.num, Values: values}, true, nil
	}
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Appender stores one validated record. journal.Store satisfies it.
type Appender interface {
	AppendTrade(ctx context.Context, rec journal.TradeRecord) (string, error)
}

// Options control a batch import.
type Options struct {
	Mapping   ColumnMapping
	Delimiter rune
}

// BatchResult summarizes an import. Imported + Skipped is the number of
// data rows read.
type BatchResult struct {
	Imported int
	Skipped  int
	Errors   []*ValidationError
	IDs      []string // IDs of imported trades in input order
}

// ImportCSV validates every row of r and appends the accepted ones to dst
// in input order. Invalid rows are skipped and reported in the result; they
// never stop the batch. A missing required column, a malformed file or a
// failed append stops the import and returns what was done so far.
func ImportCSV(ctx context.Context, owner string, r io.Reader, dst Appender, opts Options) (BatchResult, error) {
	var res BatchResult

	m := opts.Mapping.WithDefaults()
	rr, err := NewRowReader(r, opts.Delimiter)
	if err != nil {
		return res, err
	}
	if err := CheckColumns(rr.Header(), m); err != nil {
		return res, err
	}
	m = m.Resolve(rr.Header())

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		row, ok, err := rr.Next()
		if err != nil {
			return res, err
		}
		if !ok {
			return res, nil
		}

		rec, err := buildRecord(row.Num, owner, row.Values, m)
		if err != nil {
			var ve *ValidationError
			if !errors.As(err, &ve) {
				return res, err
			}
			res.Skipped++
			res.Errors = append(res.Errors, ve)
			continue
		}

		id, err := dst.AppendTrade(ctx, rec)
		if err != nil {
			return res, fmt.Errorf("append row %d: %w", row.Num, err)
		}
		res.Imported++
		res.IDs = append(res.IDs, id)
	}
}
