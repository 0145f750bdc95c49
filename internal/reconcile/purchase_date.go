// Package reconcile updates client reference data from facts observed
// in the enriched current-period sales.
package reconcile

import (
	"time"

	"github.com/andresuchdata/salesrecon/internal/enrich"
	"github.com/andresuchdata/salesrecon/internal/normalize"
	"github.com/andresuchdata/salesrecon/internal/refdata"
)

const dateLayout = "02/01/2006"

// UpdateLastPurchase tracks the latest parsed order date per client
// across the current-period enriched records and advances each
// client's recorded last-purchase date when the recorded value is
// absent, unparseable or earlier than the observed maximum. Mutates
// the client index in place; must run after all current-period rows
// are enriched.
func UpdateLastPurchase(records []enrich.Record, clients map[string]*refdata.ClientRecord) {
	latest := make(map[string]time.Time)
	for _, rec := range records {
		if rec.ClientCode == "" {
			continue
		}
		orderDate, ok := normalize.ParseDate(rec.OrderDate)
		if !ok {
			continue
		}
		if current, seen := latest[rec.ClientCode]; !seen || orderDate.After(current) {
			latest[rec.ClientCode] = orderDate
		}
	}

	for code, client := range clients {
		observed, ok := latest[code]
		if !ok {
			continue
		}
		// The baseline is the client's previously recorded date, not
		// the tracked maximum.
		recorded, recordedOK := normalize.ParseDate(client.LastPurchase)
		if !recordedOK || recorded.Before(observed) {
			client.LastPurchase = observed.Format(dateLayout)
		}
	}
}
