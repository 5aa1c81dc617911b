package table

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Cell is the committed semantic form of one raw spreadsheet value. Each cell
// is normalized exactly once at ingestion; every downstream component reads
// the committed forms instead of re-parsing the raw text.
//
// A cell keeps both coercions because the raw data is loosely typed: a value
// may be usable as a number by one component and as a date by another. Num is
// NaN when the text is not numeric, Day is the zero time when it is not a
// recognizable date.
type Cell struct {
	Raw     string
	Missing bool
	Num     float64
	Day     time.Time
}

// NormalizeCell commits a raw value to its semantic forms. Total: never fails.
func NormalizeCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Missing: true, Num: math.NaN()}
	}
	day, _ := ParseDay(trimmed)
	return Cell{
		Raw: trimmed,
		Num: ParseNumber(trimmed),
		Day: day,
	}
}

// HasNumber reports whether the cell carries a usable numeric value.
func (c Cell) HasNumber() bool { return !math.IsNaN(c.Num) }

// HasDay reports whether the cell carries a usable calendar day.
func (c Cell) HasDay() bool { return !c.Day.IsZero() }

// NumOrZero returns the numeric value with NaN flattened to 0. Aggregation
// sums use this so unparsable cells contribute nothing instead of poisoning
// the total.
func (c Cell) NumOrZero() float64 {
	if c.HasNumber() {
		return c.Num
	}
	return 0
}

// ParseNumber coerces a raw cell to a number. Currency glyphs, thousands
// separators and whitespace are stripped; anything else left over means the
// value is not numeric and NaN is returned. Total: any input yields a value.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN()
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
			b.WriteRune(r)
		case r == ',' || unicode.IsSpace(r):
			// thousands separator or interior padding
		case r == '$' || r == '€' || r == '£' || r == '¥' || r == '₹' || unicode.Is(unicode.Sc, r):
			// currency glyph
		default:
			return math.NaN()
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// dayLayouts are tried in order; the first successful parse wins, which keeps
// date coercion deterministic for ambiguous inputs.
var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"1-2-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDay coerces a raw cell to a UTC calendar day. The time-of-day portion
// of timestamp inputs is truncated away.
func ParseDay(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// DayKeyFormat renders a bucketed day as its stable string key.
const DayKeyFormat = "2006-01-02"

// DayKey formats a UTC day as the key used by time series buckets.
func DayKey(day time.Time) string {
	return day.Format(DayKeyFormat)
}
