package refdata

import (
	"strings"

	"github.com/andresuchdata/salesrecon/internal/ingest"
)

// BuildRoutingOverrides scans the current sales table BEFORE any row
// is enriched and maps each client that placed a direct-sale order
// (order id prefix "120") to the direct-sale routing code. The client
// index consumes this map during construction, so the later-discovered
// fact can retroactively shape client records.
func BuildRoutingOverrides(salesRows []ingest.RawRow) map[string]string {
	overrides := make(map[string]string)

	for _, row := range salesRows {
		orderID := row.Str("Pedido", "Ped. Venda", "Nº Pedido", "Num. Pedido")
		if !strings.HasPrefix(orderID, DirectSaleOrderPrefix) {
			continue
		}
		clientCode := row.Str("Cliente", "Cód. Cliente", "Cod. Cliente", "Código Cliente")
		if clientCode == "" {
			continue
		}
		overrides[clientCode] = DirectSaleRoutingCode
	}

	return overrides
}
