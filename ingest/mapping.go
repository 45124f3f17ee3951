package ingest

import (
	"fmt"
	"strings"
)

// Semantic field names used in errors and mappings.
const (
	FieldOwner      = "owner"
	FieldInstrument = "instrument"
	FieldDirection  = "direction"
	FieldEntry      = "entry"
	FieldStopLoss   = "stoploss"
	FieldTakeProfit = "takeprofit"
	FieldLot        = "lot"
	FieldScreenshot = "screenshot"
	FieldNotes      = "notes"
)

// ColumnMapping maps semantic trade fields to the column headers of an
// import file.
type ColumnMapping struct {
	Instrument string `yaml:"instrument" json:"instrument"`
	Direction  string `yaml:"direction" json:"direction"`
	Entry      string `yaml:"entry" json:"entry"`
	StopLoss   string `yaml:"stoploss" json:"stoploss"`
	TakeProfit string `yaml:"takeprofit" json:"takeprofit"`
	Lot        string `yaml:"lot" json:"lot"`
	Screenshot string `yaml:"screenshot" json:"screenshot"`
	Notes      string `yaml:"notes" json:"notes"`
}

// DefaultMapping is the journal's native export layout:
// pair,direction,entry,stoploss,takeprofit,lot[,screenshot,notes].
func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		Instrument: "pair",
		Direction:  "direction",
		Entry:      "entry",
		StopLoss:   "stoploss",
		TakeProfit: "takeprofit",
		Lot:        "lot",
		Screenshot: "screenshot",
		Notes:      "notes",
	}
}

// WithDefaults fills unset columns from DefaultMapping.
func (m ColumnMapping) WithDefaults() ColumnMapping {
	d := DefaultMapping()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&m.Instrument, d.Instrument)
	fill(&m.Direction, d.Direction)
	fill(&m.Entry, d.Entry)
	fill(&m.StopLoss, d.StopLoss)
	fill(&m.TakeProfit, d.TakeProfit)
	fill(&m.Lot, d.Lot)
	fill(&m.Screenshot, d.Screenshot)
	fill(&m.Notes, d.Notes)
	return m
}

type column struct {
	field  string
	header string
}

func (m ColumnMapping) required() []column {
	return []column{
		{FieldInstrument, m.Instrument},
		{FieldDirection, m.Direction},
		{FieldEntry, m.Entry},
		{FieldLot, m.Lot},
	}
}

// Validate reports an error when a required field has no column.
func (m ColumnMapping) Validate() error {
	for _, c := range m.required() {
		if strings.TrimSpace(c.header) == "" {
			return fmt.Errorf("column mapping: %s has no column", c.field)
		}
	}
	return nil
}

// CheckColumns verifies that header carries every required column of m.
// Header names match case-insensitively, ignoring surrounding space.
func CheckColumns(header []string, m ColumnMapping) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[normalize(h)] = true
	}
	var missing []string
	for _, c := range m.required() {
		if !have[normalize(c.header)] {
			missing = append(missing, c.header)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// Resolve rewrites every column of m to the header cell it reads from: an
// exact match if there is one, otherwise the first case-insensitive match
// in header order. Columns absent from header are left as they are.
func (m ColumnMapping) Resolve(header []string) ColumnMapping {
	pick := func(name string) string {
		if name == "" {
			return name
		}
		for _, h := range header {
			if h == name {
				return h
			}
		}
		want := normalize(name)
		for _, h := range header {
			if normalize(h) == want {
				return h
			}
		}
		return name
	}
	m.Instrument = pick(m.Instrument)
	m.Direction = pick(m.Direction)
	m.Entry = pick(m.Entry)
	m.StopLoss = pick(m.StopLoss)
	m.TakeProfit = pick(m.TakeProfit)
	m.Lot = pick(m.Lot)
	m.Screenshot = pick(m.Screenshot)
	m.Notes = pick(m.Notes)
	return m
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
