// Package rules applies the ordered business corrections that resolve
// vendor, supervisor and routing identity for one raw sales row. Rule
// order matters: later rules override earlier ones.
package rules

import (
	"strings"

	"github.com/andresuchdata/salesrecon/internal/normalize"
	"github.com/andresuchdata/salesrecon/internal/refdata"
)

const (
	// Known data-entry misspelling of a supervisor name.
	misspelledSupervisor = "OSÉAS SANTOS OL"
	correctedSupervisor  = "OSEAS SANTOS OLIVEIRA"

	// CounterSupervisor is the canonical spelling of the generic
	// counter-sale account.
	CounterSupervisor         = "BALCAO"
	counterSupervisorAccented = "BALCÃO"

	// Identity forced onto key-account counter sales.
	keyAccountVendor = "VD AMERICANAS"

	// Identity forced onto direct-sale orders (prefix "120").
	DirectSaleVendor     = "VD HIAGO"
	DirectSaleSupervisor = "HIAGO ASSUNCAO"
)

// Input carries the already-extracted row fields the rules operate on.
// Dates stay in their raw cell form (text, native date or spreadsheet
// serial) so an uncorrected date is emitted exactly as it arrived.
type Input struct {
	OrderID         string
	Vendor          string
	Supervisor      string
	RoutingCode     string
	OrderDate       any
	ExitDate        any
	ClientLegalName string
}

// Resolution is the corrected identity and order date for one row.
type Resolution struct {
	Vendor      string
	Supervisor  string
	RoutingCode string
	OrderDate   any
}

// Apply runs the five correction rules in their fixed order.
func Apply(in Input) Resolution {
	out := Resolution{
		Vendor:      in.Vendor,
		Supervisor:  in.Supervisor,
		RoutingCode: in.RoutingCode,
		OrderDate:   in.OrderDate,
	}

	// 1. Fix the known supervisor misspelling.
	if strings.EqualFold(strings.TrimSpace(out.Supervisor), misspelledSupervisor) {
		out.Supervisor = correctedSupervisor
	}

	// 2. Unify accented and unaccented counter-sale spellings.
	if isCounterSupervisor(out.Supervisor) {
		out.Supervisor = CounterSupervisor
	}

	// 3. Counter sales for key-account clients are attributed to the
	// key-account vendor and routing code.
	if out.Supervisor == CounterSupervisor &&
		strings.Contains(strings.ToUpper(in.ClientLegalName), refdata.KeyAccountToken) {
		out.Vendor = keyAccountVendor
		out.RoutingCode = refdata.KeyAccountRoutingCode
	}

	// 4. The order numbering scheme wins over everything above: a
	// "120"-prefixed order is a direct sale no matter what the row says.
	if strings.HasPrefix(in.OrderID, refdata.DirectSaleOrderPrefix) {
		out.Vendor = DirectSaleVendor
		out.Supervisor = DirectSaleSupervisor
		out.RoutingCode = refdata.DirectSaleRoutingCode
	}

	// 5. An order date lagging the shipment month is a data-entry
	// fault; pull it forward to the exit date.
	if orderDate, ok := normalize.ParseDate(out.OrderDate); ok {
		if exitDate, ok := normalize.ParseDate(in.ExitDate); ok {
			if normalize.YearMonthBefore(orderDate, exitDate) {
				out.OrderDate = in.ExitDate
			}
		}
	}

	return out
}

func isCounterSupervisor(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, CounterSupervisor) || strings.EqualFold(s, counterSupervisorAccented)
}
