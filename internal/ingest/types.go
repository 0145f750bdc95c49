package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Format identifies the tabular container a source file uses.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatForFilename maps a file name to its tabular format by extension.
// Unknown extensions fall back to CSV, matching how exports are usually named.
func FormatForFilename(name string) Format {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		return FormatXLSX
	}
	return FormatCSV
}

// RawRow is one source row keyed by trimmed header name. Values are
// string, float64 or time.Time depending on the container; missing
// trailing cells are nil.
type RawRow map[string]any

// Get returns the raw cell for any of the given header aliases.
// Header matching is case- and separator-insensitive so the same reader
// handles exports with slightly different column labels.
func (r RawRow) Get(aliases ...string) any {
	for _, a := range aliases {
		if v, ok := r[a]; ok {
			return v
		}
	}
	want := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		want[normalizeColumnName(a)] = struct{}{}
	}
	for k, v := range r {
		if _, ok := want[normalizeColumnName(k)]; ok {
			return v
		}
	}
	return nil
}

// Str returns the trimmed string form of a cell, with numeric cells
// rendered without a trailing ".0" so codes read from spreadsheets
// round-trip cleanly.
func (r RawRow) Str(aliases ...string) string {
	return CellString(r.Get(aliases...))
}

// CellString converts a raw cell to its canonical string form.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case time.Time:
		return c.Format("02/01/2006")
	default:
		return ""
	}
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}
