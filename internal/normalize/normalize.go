// Package normalize converts locale-ambiguous source values into
// canonical types. Parse failures never surface as errors: dates
// report ok=false and numbers default to zero, so one bad field never
// aborts a batch.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Spreadsheet serials count days since 1899-12-30; 25569 days separate
// that epoch from 1970-01-01.
const serialEpochOffsetDays = 25569

var strictDayMonthYear = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Fallback layouts for date text that is not strict DD/MM/YYYY.
var genericDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006",
	"02-01-2006",
}

// ParseDate resolves a raw cell into a calendar date. Native dates
// pass through, numeric values are treated as spreadsheet day serials,
// and text is tried first as strict DD/MM/YYYY at local midnight and
// then against a small set of generic layouts. ok is false when the
// value is empty or unparseable.
func ParseDate(v any) (t time.Time, ok bool) {
	switch c := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if c.IsZero() {
			return time.Time{}, false
		}
		return c, true
	case float64:
		return serialToTime(c), true
	case int:
		return serialToTime(float64(c)), true
	case string:
		return parseDateText(c)
	default:
		return time.Time{}, false
	}
}

func serialToTime(serial float64) time.Time {
	ms := int64((serial - serialEpochOffsetDays) * 86400 * 1000)
	u := time.UnixMilli(ms).UTC()
	// Serials carry no zone; rebuild in local time so calendar fields
	// line up with text-parsed dates.
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), 0, time.Local)
}

func parseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if strictDayMonthYear.MatchString(s) {
		if t, err := time.ParseInLocation("02/01/2006", s, time.Local); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber resolves a raw cell into an exact decimal. Numeric cells
// pass through. Text is stripped of a currency prefix, then the
// decimal separator is disambiguated by position: whichever of ',' and
// '.' occurs LAST is the decimal point, the other is a thousands
// separator. Anything unparseable yields zero.
func ParseNumber(v any) decimal.Decimal {
	switch c := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(c)
	case int:
		return decimal.NewFromInt(int64(c))
	case decimal.Decimal:
		return c
	case string:
		return parseNumberText(c)
	default:
		return decimal.Zero
	}
}

func parseNumberText(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma > lastDot:
		// Comma is the decimal separator, dots group thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma:
		// Dot is the decimal separator, commas group thousands.
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInt resolves a raw cell into an integer quantity, defaulting to
// 0 on parse failure.
func ParseInt(v any) int {
	switch c := v.(type) {
	case nil:
		return 0
	case float64:
		return int(c)
	case int:
		return c
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// YearMonthBefore reports whether a falls in a strictly earlier
// (year, month) than b, ignoring the day of month.
func YearMonthBefore(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() < b.Year()
	}
	return a.Month() < b.Month()
}
