package refdata

import (
	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/normalize"
)

// BuildPackIndex maps product code to units per master pack. Rows with
// an empty product code are skipped; a missing, invalid or
// non-positive quantity defaults to 1.
func BuildPackIndex(rows []ingest.RawRow) map[string]int {
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		code := row.Str("Código", "Codigo", "Cód. Produto", "Cod. Produto", "Produto")
		if code == "" {
			continue
		}

		qty := int(normalize.ParseNumber(row.Get("Qt. Emb. Master", "Qtde Emb. Master", "Emb. Master", "Embalagem Master")).IntPart())
		if qty <= 0 {
			qty = 1
		}
		index[code] = qty
	}

	return index
}

// PackSize looks up the master-pack size for a product, defaulting to 1.
func PackSize(index map[string]int, productCode string) int {
	if qty, ok := index[productCode]; ok && qty > 0 {
		return qty
	}
	return 1
}
