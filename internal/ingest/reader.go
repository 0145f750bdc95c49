package ingest

import (
	"fmt"
	"io"
	"os"
)

// ReadTable parses one tabular source into RawRows according to its
// declared container format.
func ReadTable(r io.Reader, format Format) ([]RawRow, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(r)
	case FormatCSV:
		return readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported table format %q", format)
	}
}

// ReadFile opens a local file and parses it with the format implied by
// its extension.
func ReadFile(path string) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadTable(f, FormatForFilename(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}
