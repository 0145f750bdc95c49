// Package aggregate folds enriched sales records into one row per
// order id.
package aggregate

import (
	"strings"

	"github.com/andresuchdata/salesrecon/internal/enrich"
)

// OrderAggregate is one distinct order. All fields of the first-seen
// record act as the template; quantity, value and weight are exact
// sums over the member rows, and supplier notes are a deduplicated
// insertion-ordered set.
type OrderAggregate struct {
	enrich.Record

	SupplierNotes      []string `json:"supplierNotes"`
	SupplierNotesJoint string   `json:"supplierNotesJoined"`

	noteSet map[string]struct{}
}

// Orders groups enriched records by order id, summing quantity, sale
// value and net weight and collecting distinct supplier notes. Rows
// without an order id are discarded. Output preserves the encounter
// order of distinct order ids.
func Orders(records []enrich.Record) []OrderAggregate {
	byOrder := make(map[string]*OrderAggregate, len(records))
	var orderIDs []string

	for _, rec := range records {
		if rec.OrderID == "" {
			continue
		}

		agg, ok := byOrder[rec.OrderID]
		if !ok {
			agg = &OrderAggregate{
				Record:  rec,
				noteSet: make(map[string]struct{}),
			}
			byOrder[rec.OrderID] = agg
			orderIDs = append(orderIDs, rec.OrderID)
		} else {
			agg.QtySold += rec.QtySold
			agg.SaleValue = agg.SaleValue.Add(rec.SaleValue)
			agg.NetWeight = agg.NetWeight.Add(rec.NetWeight)
		}

		if note := strings.TrimSpace(rec.SupplierNote); note != "" {
			if _, seen := agg.noteSet[note]; !seen {
				agg.noteSet[note] = struct{}{}
				agg.SupplierNotes = append(agg.SupplierNotes, note)
			}
		}
	}

	out := make([]OrderAggregate, 0, len(orderIDs))
	for _, id := range orderIDs {
		agg := byOrder[id]
		agg.SupplierNotesJoint = strings.Join(agg.SupplierNotes, ", ")
		out = append(out, *agg)
	}
	return out
}
