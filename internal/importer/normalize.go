package importer

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/lgaravaglia/contaflow/internal/dateparse"
	"github.com/lgaravaglia/contaflow/internal/model"
)

// LoadAFIP reads and normalizes the tax authority export. Rows whose date
// or amount cannot be parsed are dropped; the batch never aborts.
func LoadAFIP(path string) ([]model.InvoiceRecord, error) {
	rows, err := ReadDelimited(path, AFIPFields)
	if err != nil {
		return nil, err
	}

	records := make([]model.InvoiceRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		record, ok := NormalizeAFIP(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		slog.Warn("Dropped unparsable AFIP rows", "file", path, "dropped", dropped)
	}
	return records, nil
}

// LoadMarketplace reads the marketplace export, keeping only the rows that
// carry a tax ID.
func LoadMarketplace(path string) ([]model.MarketplaceRecord, error) {
	rows, err := ReadDelimited(path, MarketplaceFields)
	if err != nil {
		return nil, err
	}

	records := make([]model.MarketplaceRecord, 0, len(rows))
	for _, row := range rows {
		if record, ok := NormalizeMarketplace(row); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// LoadMarketplaceInvoices reads the marketplace export again, this time as
// sales: each usable row becomes an invoice record of its own, carrying the
// row's date, amount and province. Marketplace sales have no invoice number.
func LoadMarketplaceInvoices(path string) ([]model.InvoiceRecord, error) {
	rows, err := ReadDelimited(path, MarketplaceFields)
	if err != nil {
		return nil, err
	}

	records := make([]model.InvoiceRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		record, ok := NormalizeMarketplaceInvoice(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		slog.Warn("Dropped unparsable marketplace rows", "file", path, "dropped", dropped)
	}
	return records, nil
}

// NormalizeAFIP converts one raw AFIP row into an invoice record. The date
// and amount are required; ok=false means the row is unusable.
func NormalizeAFIP(row map[string]string) (model.InvoiceRecord, bool) {
	date, ok := dateparse.Parse(row["fecha"])
	if !ok {
		return model.InvoiceRecord{}, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(row["valor_total"], ",", "."))
	if err != nil {
		return model.InvoiceRecord{}, false
	}

	return model.InvoiceRecord{
		Date:   date,
		Number: strings.TrimSpace(row["numero_factura"]),
		TaxID:  strings.TrimSpace(row["dni"]),
		Amount: amount,
	}, true
}

// NormalizeMarketplace extracts the tax ID and province from one raw
// marketplace row. Rows without a tax ID are unusable.
func NormalizeMarketplace(row map[string]string) (model.MarketplaceRecord, bool) {
	taxID := strings.TrimSpace(row["dni"])
	if taxID == "" {
		return model.MarketplaceRecord{}, false
	}

	return model.MarketplaceRecord{
		TaxID:    taxID,
		Province: repairMojibake(strings.TrimSpace(row["provincia"])),
	}, true
}

// NormalizeMarketplaceInvoice converts one raw marketplace row into an
// invoice record. Like AFIP rows, the date and amount are required; the
// province is the row's own, not a lookup result.
func NormalizeMarketplaceInvoice(row map[string]string) (model.InvoiceRecord, bool) {
	date, ok := dateparse.Parse(row["fecha"])
	if !ok {
		return model.InvoiceRecord{}, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(row["valor_total"], ",", "."))
	if err != nil {
		return model.InvoiceRecord{}, false
	}

	return model.InvoiceRecord{
		Date:     date,
		TaxID:    strings.TrimSpace(row["dni"]),
		Province: repairMojibake(strings.TrimSpace(row["provincia"])),
		Amount:   amount,
	}, true
}

// repairMojibake undoes the double encoding seen in marketplace exports:
// UTF-8 text that was read as Latin-1. If the string's code points map back
// to bytes that form valid UTF-8, that decoding is the intended text.
func repairMojibake(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		buf = append(buf, byte(r))
	}
	if utf8.Valid(buf) {
		return string(buf)
	}
	return s
}
