// Package enrich joins one raw sales row against the reference
// indexes and the rule engine to produce a canonical reconciled
// record. The same logic runs over the current-period and historical
// tables, independently.
package enrich

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/normalize"
	"github.com/andresuchdata/salesrecon/internal/refdata"
	"github.com/andresuchdata/salesrecon/internal/rules"
)

const unknownField = "N/A"

// Record is one reconciled sales line item. Numeric fields are never
// unparseable: normalization always yields a value, defaulting to 0.
type Record struct {
	OrderID            string          `json:"orderId"`
	Vendor             string          `json:"vendor"`
	Supervisor         string          `json:"supervisor"`
	RoutingCode        string          `json:"routingCode"`
	ProductCode        string          `json:"productCode"`
	Description        string          `json:"description"`
	Supplier           string          `json:"supplier"`
	SupplierNote       string          `json:"supplierNote"`
	SupplierCode       string          `json:"supplierCode"`
	ClientCode         string          `json:"clientCode"`
	ClientName         string          `json:"clientName"`
	ClientCity         string          `json:"clientCity"`
	ClientNeighborhood string          `json:"clientNeighborhood"`
	QtySold            int             `json:"qtySold"`
	SaleValue          decimal.Decimal `json:"saleValue"`
	NetWeight          decimal.Decimal `json:"netWeight"`
	OrderDate          string          `json:"orderDate"`
	ExitDate           string          `json:"exitDate"`
	Status             string          `json:"status"`
	QtyMasterPack      float64         `json:"qtyMasterPack"`
}

// Enrich resolves one raw sales row into a Record using the client
// index and the master-pack index.
func Enrich(row ingest.RawRow, clients map[string]*refdata.ClientRecord, packs map[string]int) Record {
	clientCode := row.Str("Cliente", "Cód. Cliente", "Cod. Cliente", "Código Cliente")

	clientName, clientCity, clientNeighborhood := unknownField, unknownField, unknownField
	clientLegalName := ""
	clientRouting := ""
	if client, ok := clients[clientCode]; ok {
		clientName = client.Name
		clientCity = client.City
		clientNeighborhood = client.Neighborhood
		clientLegalName = client.LegalName
		clientRouting = client.PrimaryRouting()
	}

	orderDateRaw := row.Get("Data Pedido", "Dt. Pedido", "Data do Pedido")
	exitDateRaw := row.Get("Data Saída", "Data Saida", "Dt. Saída", "Dt. Saida")

	routingCode := row.Str("RCA")
	if routingCode == "" {
		// Rows without an explicit routing code inherit the client's
		// primary one.
		routingCode = clientRouting
	}

	resolved := rules.Apply(rules.Input{
		OrderID:         row.Str("Pedido", "Ped. Venda", "Nº Pedido", "Num. Pedido"),
		Vendor:          row.Str("Vendedor"),
		Supervisor:      row.Str("Supervisor"),
		RoutingCode:     routingCode,
		OrderDate:       orderDateRaw,
		ExitDate:        exitDateRaw,
		ClientLegalName: clientLegalName,
	})

	productCode := row.Str("Código", "Codigo", "Cód. Produto", "Cod. Produto", "Produto")
	qtySold := normalize.ParseInt(row.Get("Qtde", "Qt. Vendida", "Quantidade"))
	packSize := refdata.PackSize(packs, productCode)

	return Record{
		OrderID:            row.Str("Pedido", "Ped. Venda", "Nº Pedido", "Num. Pedido"),
		Vendor:             resolved.Vendor,
		Supervisor:         resolved.Supervisor,
		RoutingCode:        resolved.RoutingCode,
		ProductCode:        productCode,
		Description:        row.Str("Descrição", "Descricao"),
		Supplier:           row.Str("Fornecedor"),
		SupplierNote:       strings.TrimSpace(row.Str("Observação", "Observacao", "Obs. Fornecedor")),
		SupplierCode:       row.Str("Cód. Fornecedor", "Cod. Fornecedor"),
		ClientCode:         clientCode,
		ClientName:         clientName,
		ClientCity:         clientCity,
		ClientNeighborhood: clientNeighborhood,
		QtySold:            qtySold,
		SaleValue:          normalize.ParseNumber(row.Get("Valor", "Vl. Venda", "Valor Venda")),
		NetWeight:          normalize.ParseNumber(row.Get("Peso Líquido", "Peso Liquido", "Peso")),
		OrderDate:          formatDate(resolved.OrderDate),
		ExitDate:           formatDate(exitDateRaw),
		Status:             row.Str("Posição", "Posicao", "Status"),
		QtyMasterPack:      float64(qtySold) / float64(packSize),
	}
}

// EnrichAll applies Enrich to every row of one sales table.
func EnrichAll(rows []ingest.RawRow, clients map[string]*refdata.ClientRecord, packs map[string]int) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Enrich(row, clients, packs))
	}
	return records
}

// formatDate canonicalizes a raw date cell to DD/MM/YYYY when it
// parses, otherwise keeps the source text.
func formatDate(v any) string {
	if t, ok := normalize.ParseDate(v); ok {
		return t.Format("02/01/2006")
	}
	return ingest.CellString(v)
}
