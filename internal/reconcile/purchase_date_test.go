package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/salesrecon/internal/enrich"
	"github.com/andresuchdata/salesrecon/internal/refdata"
)

func TestUpdateLastPurchaseAdvances(t *testing.T) {
	clients := map[string]*refdata.ClientRecord{
		"42": {Code: "42", LastPurchase: "01/01/2024"},
	}
	records := []enrich.Record{
		{ClientCode: "42", OrderDate: "01/05/2024"},
		{ClientCode: "42", OrderDate: "10/06/2024"},
	}

	UpdateLastPurchase(records, clients)

	assert.Equal(t, "10/06/2024", clients["42"].LastPurchase)
}

func TestUpdateLastPurchaseNoSalesLeavesClientUntouched(t *testing.T) {
	clients := map[string]*refdata.ClientRecord{
		"42": {Code: "42", LastPurchase: "01/01/2024"},
	}

	UpdateLastPurchase(nil, clients)

	assert.Equal(t, "01/01/2024", clients["42"].LastPurchase)
}

func TestUpdateLastPurchaseKeepsNewerRecordedDate(t *testing.T) {
	clients := map[string]*refdata.ClientRecord{
		"42": {Code: "42", LastPurchase: "31/12/2024"},
	}
	records := []enrich.Record{
		{ClientCode: "42", OrderDate: "01/05/2024"},
	}

	UpdateLastPurchase(records, clients)

	// The recorded date is already ahead of every observed sale.
	assert.Equal(t, "31/12/2024", clients["42"].LastPurchase)
}

func TestUpdateLastPurchaseReplacesUnparseableRecordedDate(t *testing.T) {
	clients := map[string]*refdata.ClientRecord{
		"42": {Code: "42", LastPurchase: "sem registro"},
	}
	records := []enrich.Record{
		{ClientCode: "42", OrderDate: "01/05/2024"},
	}

	UpdateLastPurchase(records, clients)

	assert.Equal(t, "01/05/2024", clients["42"].LastPurchase)
}

func TestUpdateLastPurchaseIgnoresRowsWithoutClientOrDate(t *testing.T) {
	clients := map[string]*refdata.ClientRecord{
		"42": {Code: "42"},
	}
	records := []enrich.Record{
		{ClientCode: "", OrderDate: "01/05/2024"},
		{ClientCode: "42", OrderDate: "pendente"},
	}

	UpdateLastPurchase(records, clients)

	assert.Empty(t, clients["42"].LastPurchase)
}
