// Package joiner assigns a province to each invoice by joining against the
// marketplace export, keyed by tax ID.
package joiner

import (
	"strings"

	"github.com/lgaravaglia/contaflow/internal/model"
)

// BuildLookup scans the marketplace records in input order and maps each
// tax ID to its province. A repeated tax ID unconditionally overwrites the
// earlier entry: last write wins. Rows with an empty tax ID are skipped.
func BuildLookup(rows []model.MarketplaceRecord) model.RegionLookup {
	lookup := make(model.RegionLookup, len(rows))
	for _, row := range rows {
		key := strings.TrimSpace(row.TaxID)
		if key == "" {
			continue
		}
		lookup[key] = row.Province
	}
	return lookup
}

// Apply sets each record's province from the lookup, falling back to
// defaultRegion when the tax ID is absent. Every returned record has a
// non-empty province.
func Apply(records []model.InvoiceRecord, lookup model.RegionLookup, defaultRegion string) []model.InvoiceRecord {
	out := make([]model.InvoiceRecord, len(records))
	for i, record := range records {
		if province, ok := lookup[record.TaxID]; ok && province != "" {
			record.Province = province
		} else {
			record.Province = defaultRegion
		}
		out[i] = record
	}
	return out
}
