// Package ingest turns loosely typed rows (form input or CSV lines) into
// validated journal.TradeRecords.
package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// ValidateAndBuildRecord validates row and returns the record it describes.
// row maps column headers to raw values and m says which header holds which
// field. The returned record has no ID or CreatedAt; storage assigns both.
//
// Any failure is a *ValidationError.
func ValidateAndBuildRecord(owner string, row map[string]string, m ColumnMapping) (journal.TradeRecord, error) {
	return buildRecord(0, owner, row, m)
}

func buildRecord(rowNum int, owner string, row map[string]string, m ColumnMapping) (journal.TradeRecord, error) {
	fail := func(field string, reason Reason, value string) (journal.TradeRecord, error) {
		return journal.TradeRecord{}, &ValidationError{Row: rowNum, Field: field, Reason: reason, Value: value}
	}

	owner = strings.TrimSpace(owner)
	if owner == "" {
		return fail(FieldOwner, MissingField, "")
	}

	inst := strings.ToUpper(lookup(row, m.Instrument))
	if inst == "" {
		return fail(FieldInstrument, MissingField, "")
	}

	rawDir := lookup(row, m.Direction)
	if rawDir == "" {
		return fail(FieldDirection, MissingField, "")
	}
	dir, err := journal.ParseDirection(rawDir)
	if err != nil {
		return fail(FieldDirection, UnknownDirection, rawDir)
	}

	rawEntry := lookup(row, m.Entry)
	if rawEntry == "" {
		return fail(FieldEntry, MissingField, "")
	}
	entry, ok := parseFinite(rawEntry)
	if !ok {
		return fail(FieldEntry, Unparseable, rawEntry)
	}
	if entry <= 0 {
		return fail(FieldEntry, InvalidPrice, rawEntry)
	}

	rawLot := lookup(row, m.Lot)
	if rawLot == "" {
		return fail(FieldLot, MissingField, "")
	}
	lot, ok := parseFinite(rawLot)
	if !ok {
		return fail(FieldLot, Unparseable, rawLot)
	}
	if lot <= 0 {
		return fail(FieldLot, NonPositiveSize, rawLot)
	}

	stop := optionalPrice(lookup(row, m.StopLoss))
	target := optionalPrice(lookup(row, m.TakeProfit))
	if !finiteProducts(lot, entry, stop, target) {
		return fail(FieldLot, OutOfRange, rawLot)
	}

	return journal.TradeRecord{
		Owner:           owner,
		Instrument:      inst,
		Direction:       dir,
		EntryPrice:      entry,
		StopLossPrice:   stop,
		TakeProfitPrice: target,
		PositionSize:    lot,
		ScreenshotRef:   lookup(row, m.Screenshot),
		Notes:           lookup(row, m.Notes),
	}, nil
}

// lookup returns the trimmed value under header, matching the header
// exactly first and then case-insensitively. When several keys match
// case-insensitively the smallest one wins.
func lookup(row map[string]string, header string) string {
	if header == "" {
		return ""
	}
	if v, ok := row[header]; ok {
		return strings.TrimSpace(v)
	}
	want := normalize(header)
	key, found := "", false
	for k := range row {
		if normalize(k) == want && (!found || k < key) {
			key, found = k, true
		}
	}
	if !found {
		return ""
	}
	return strings.TrimSpace(row[key])
}

// finiteProducts reports whether every price difference times size stays
// finite, so P/L, risk and reward of the record are all finite.
func finiteProducts(size float64, entry, stop, target float64) bool {
	for _, d := range []float64{target - entry, entry - stop, entry, stop, target} {
		v := d * size
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// optionalPrice parses a stop or target. Blank or bad values mean "not set".
func optionalPrice(s string) float64 {
	if s == "" {
		return 0
	}
	f, ok := parseFinite(s)
	if !ok {
		return 0
	}
	return f
}
