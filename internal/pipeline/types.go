package pipeline

import (
	"io"

	"github.com/andresuchdata/salesrecon/internal/aggregate"
	"github.com/andresuchdata/salesrecon/internal/enrich"
	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/refdata"
)

// Table is one tabular input source with its declared container format.
type Table struct {
	Label  string
	Format ingest.Format
	Reader io.Reader
}

// Inputs are the four logically independent tables one run consumes.
type Inputs struct {
	Sales    Table // current-period sales transactions
	Clients  Table // client reference data
	Products Table // product reference data
	History  Table // historical sales transactions
}

// Result is the composite payload of one successful run.
type Result struct {
	Current []enrich.Record            `json:"current"`
	History []enrich.Record            `json:"history"`
	Orders  []aggregate.OrderAggregate `json:"orders"`
	Clients []refdata.ClientRecord     `json:"clients"`
}

// ProgressFunc receives ordered checkpoint events with a human-readable
// stage label and a monotonically non-decreasing completion percentage.
type ProgressFunc func(stage string, percent int)
