package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/salesrecon/internal/ingest"
)

const salesCSV = `Pedido;Cliente;Vendedor;Supervisor;RCA;Código;Descrição;Fornecedor;Observação;Cód. Fornecedor;Qtde;Valor;Peso Líquido;Data Pedido;Data Saída;Posição
500;42;VD MARIA;SUP A;7;P1;PROD UM;FORN X;NOTA A;F1;3;10,00;1,0;15/01/2024;01/03/2024;F
500;42;VD MARIA;SUP A;7;P2;PROD DOIS;FORN X;NOTA A;F1;5;20,00;2,0;15/03/2024;01/03/2024;F
1205551;77;VD JOAO;OSÉAS SANTOS OL;9;P1;PROD UM;FORN Y;;F2;4;30,00;1,5;10/02/2024;10/02/2024;F
`

const clientsCSV = `Código;Fantasia;Razão Social;Município;Bairro;RCA 1;RCA 2;Data Cadastro;Última Compra;Bloqueado
42;LOJA 42;LOJA 42 LTDA;NATAL;CENTRO;7;8;01/01/2020 10:00:00;01/01/2024;N
77;AMER;LOJAS AMERICANAS SA;RECIFE;BOA VISTA;9;;05/05/2019;;N
`

const productsCSV = `Código;Descrição;Qt. Emb. Master
P1;PROD UM;4
P2;PROD DOIS;0
`

const historyCSV = `Pedido;Cliente;Vendedor;Supervisor;RCA;Código;Qtde;Valor;Data Pedido;Data Saída
400;42;VD MARIA;SUP A;7;P1;2;5,00;10/11/2023;10/11/2023
`

func testInputs() Inputs {
	return Inputs{
		Sales:    Table{Label: "vendas.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(salesCSV)},
		Clients:  Table{Label: "clientes.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(clientsCSV)},
		Products: Table{Label: "produtos.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(productsCSV)},
		History:  Table{Label: "historico.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(historyCSV)},
	}
}

func TestRunFullPipeline(t *testing.T) {
	result, err := NewOrchestrator(nil).Run(context.Background(), testInputs())
	require.NoError(t, err)

	require.Len(t, result.Current, 3)
	require.Len(t, result.History, 1)

	// Row 1: order date lags exit month, pulled forward; pack size 4.
	first := result.Current[0]
	assert.Equal(t, "01/03/2024", first.OrderDate)
	assert.Equal(t, "LOJA 42", first.ClientName)
	assert.InDelta(t, 0.75, first.QtyMasterPack, 1e-9)

	// Row 3: direct-sale order numbering overrides everything.
	direct := result.Current[2]
	assert.Equal(t, "VD HIAGO", direct.Vendor)
	assert.Equal(t, "HIAGO ASSUNCAO", direct.Supervisor)
	assert.Equal(t, "1002", direct.RoutingCode)

	// Aggregation: order 500 groups two rows.
	require.Len(t, result.Orders, 2)
	agg := result.Orders[0]
	assert.Equal(t, "500", agg.OrderID)
	assert.Equal(t, 8, agg.QtySold)
	assert.True(t, agg.SaleValue.Equal(decimal.NewFromInt(30)), "got %s", agg.SaleValue)
	assert.Equal(t, []string{"NOTA A"}, agg.SupplierNotes)

	// Clients are emitted sorted by code.
	require.Len(t, result.Clients, 2)
	assert.Equal(t, "42", result.Clients[0].Code)
	assert.Equal(t, "77", result.Clients[1].Code)

	// Purchase dates advanced from the current-period sales.
	assert.Equal(t, "15/03/2024", result.Clients[0].LastPurchase)
	assert.Equal(t, "10/02/2024", result.Clients[1].LastPurchase)

	// Routing override from the sales table reshapes client 77, with
	// the key-account code in front.
	assert.Equal(t, []string{"1001", "1002", "9"}, result.Clients[1].RoutingCodes)
}

func TestRunProgressCheckpoints(t *testing.T) {
	var stages []string
	var percents []int
	progress := func(stage string, percent int) {
		stages = append(stages, stage)
		percents = append(percents, percent)
	}

	_, err := NewOrchestrator(progress).Run(context.Background(), testInputs())
	require.NoError(t, err)

	require.NotEmpty(t, percents)
	assert.Equal(t, 100, percents[len(percents)-1])
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1], "progress must be non-decreasing")
	}
	assert.Len(t, stages, len(percents))
}

func TestRunStructuralFailureNamesTable(t *testing.T) {
	in := testInputs()
	in.Clients = Table{Label: "clientes.csv", Format: ingest.FormatCSV, Reader: strings.NewReader("")}

	_, err := NewOrchestrator(nil).Run(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clientes.csv")
}

func TestRunMissingTable(t *testing.T) {
	in := testInputs()
	in.Products = Table{Label: "produtos"}

	_, err := NewOrchestrator(nil).Run(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produtos")
}

func TestRunWorkbookClientDates(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]any{"Código", "Fantasia", "Razão Social", "Última Compra", "Data Cadastro"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]any{"42", "LOJA 42", "LOJA 42 LTDA", 45657, 43890.4375}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	const sales = `Pedido;Cliente;Qtde;Valor;Data Pedido;Data Saída
500;42;1;10,00;01/05/2024;01/05/2024
`
	in := Inputs{
		Sales:    Table{Label: "vendas.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(sales)},
		Clients:  Table{Label: "clientes.xlsx", Format: ingest.FormatXLSX, Reader: bytes.NewReader(buf.Bytes())},
		Products: Table{Label: "produtos.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(productsCSV)},
		History:  Table{Label: "historico.csv", Format: ingest.FormatCSV, Reader: strings.NewReader(historyCSV)},
	}

	result, err := NewOrchestrator(nil).Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Clients, 1)
	c := result.Clients[0]
	assert.Equal(t, "29/02/2020", c.RegisteredAt, "registration serial resolves to a calendar date")

	// The recorded purchase date (serial 45657 = 31/12/2024) is newer
	// than the observed sale, so reconciliation must leave it alone.
	assert.Equal(t, "31/12/2024", c.LastPurchase)
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := NewOrchestrator(nil).Run(context.Background(), testInputs())
	require.NoError(t, err)
	second, err := NewOrchestrator(nil).Run(context.Background(), testInputs())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
