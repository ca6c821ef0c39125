// Package exporter writes the processed outputs: the reconciled invoice CSV
// and the xlsx classification report.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgaravaglia/contaflow/internal/model"
)

// WriteInvoiceCSV writes the reconciled invoices as UTF-8, ';'-delimited
// CSV: dates as dd/mm/yyyy, amounts with two decimals.
func WriteInvoiceCSV(w io.Writer, records []model.InvoiceRecord) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write([]string{"fecha", "numero", "provincia", "valor"}); err != nil {
		return err
	}
	for _, record := range records {
		row := []string{
			record.Date.Format("02/01/2006"),
			record.Number,
			record.Province,
			record.Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportInvoiceCSV writes the invoice CSV to the named file, appending a
// .csv extension when missing.
func ExportInvoiceCSV(path string, records []model.InvoiceRecord) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		path += ".csv"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteInvoiceCSV(f, records); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
