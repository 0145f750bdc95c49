package refdata

import (
	"strings"

	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/normalize"
)

const (
	// Key-account clients are identified by this token in the legal
	// name and always sell through the same routing code.
	KeyAccountToken       = "AMERICANAS"
	KeyAccountRoutingCode = "1001"

	// Orders numbered with this prefix belong to the direct-sale
	// channel regardless of what the row says.
	DirectSaleOrderPrefix = "120"
	DirectSaleRoutingCode = "1002"
)

// ClientRecord is one client from the reference table. LastPurchase is
// the only field mutated after construction (by the purchase-date
// reconciliation pass).
type ClientRecord struct {
	Code         string   `json:"code"`
	RoutingCodes []string `json:"routingCodes"`
	Name         string   `json:"name"`
	LegalName    string   `json:"legalName"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	RegisteredAt string   `json:"registeredAt"`
	LastPurchase string   `json:"lastPurchase"`
	Blocked      bool     `json:"blocked"`
}

// PrimaryRouting returns the first assigned routing code, if any.
func (c *ClientRecord) PrimaryRouting() string {
	if len(c.RoutingCodes) == 0 {
		return ""
	}
	return c.RoutingCodes[0]
}

// BuildClientIndex constructs the client lookup keyed by client code.
// Duplicate codes are last-write-wins. Routing overrides derived from
// the sales table are prepended to the client's routing sequence, and
// key-account clients always get the fixed key-account code up front.
func BuildClientIndex(rows []ingest.RawRow, overrides map[string]string) map[string]*ClientRecord {
	index := make(map[string]*ClientRecord, len(rows))

	for _, row := range rows {
		code := row.Str("Código", "Codigo", "Cód. Cliente", "Cod. Cliente", "Cliente")
		if code == "" {
			continue
		}

		routing := collectRoutingCodes(row)
		if override, ok := overrides[code]; ok && override != "" {
			routing = prependRouting(routing, override)
		}

		legalName := strOrNA(row.Str("Razão Social", "Razao Social"))
		if strings.Contains(strings.ToUpper(legalName), KeyAccountToken) {
			routing = prependRouting(routing, KeyAccountRoutingCode)
		}

		index[code] = &ClientRecord{
			Code:         code,
			RoutingCodes: routing,
			Name:         strOrNA(row.Str("Fantasia", "Nome Fantasia")),
			LegalName:    legalName,
			City:         strOrNA(row.Str("Município", "Municipio", "Cidade")),
			Neighborhood: strOrNA(row.Str("Bairro")),
			Address:      strOrNA(row.Str("Endereço", "Endereco")),
			Phone:        strOrNA(row.Str("Telefone", "Fone")),
			Email:        strOrNA(row.Str("E-mail", "Email")),
			RegisteredAt: canonicalDate(row.Get("Data Cadastro", "Dt. Cadastro", "Cadastro")),
			LastPurchase: canonicalDate(row.Get("Última Compra", "Ultima Compra", "Ult. Compra")),
			Blocked:      isBlocked(row.Str("Bloqueado", "Bloqueio")),
		}
	}

	return index
}

// collectRoutingCodes reads the up-to-two routing columns into a
// deduplicated ordered set.
func collectRoutingCodes(row ingest.RawRow) []string {
	var codes []string
	seen := make(map[string]struct{}, 2)
	for _, v := range []string{
		row.Str("RCA 1", "RCA1", "RCA"),
		row.Str("RCA 2", "RCA2"),
	} {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		codes = append(codes, v)
	}
	return codes
}

// prependRouting moves code to the front of the sequence, keeping the
// set deduplicated.
func prependRouting(codes []string, code string) []string {
	out := make([]string, 0, len(codes)+1)
	out = append(out, code)
	for _, c := range codes {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}

const dateLayout = "02/01/2006"

// canonicalDate resolves a raw date cell — text, native date or
// spreadsheet serial — to DD/MM/YYYY, keeping only the date portion
// when the source carries a time component. Unparseable text is kept
// verbatim apart from dropping a trailing time field.
func canonicalDate(v any) string {
	if t, ok := normalize.ParseDate(v); ok {
		return t.Format(dateLayout)
	}
	return dateOnly(ingest.CellString(v))
}

// dateOnly keeps just the date portion of text like
// "25/12/2024 10:30:00" when the date itself did not parse.
func dateOnly(s string) string {
	if fields := strings.Fields(s); len(fields) > 1 {
		return fields[0]
	}
	return s
}

func strOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func isBlocked(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S", "SIM", "BLOQUEADO":
		return true
	default:
		return false
	}
}
