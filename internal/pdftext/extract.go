// Package pdftext extracts page-ordered plain text from statement PDFs.
package pdftext

import (
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"

	"github.com/lgaravaglia/contaflow/internal/model"
)

// ExtractPages returns the plain text of every page, 1-based and in
// document order. A page whose extraction fails contributes empty text and
// a warning; only an unreadable file is fatal.
func ExtractPages(path string) ([]model.Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]model.Page, 0, total)
	for i := 1; i <= total; i++ {
		pages = append(pages, model.Page{Number: i, Text: pageText(reader, i)})
	}

	slog.Info("Extracted PDF text", "file", path, "pages", total)
	return pages, nil
}

func pageText(reader *pdf.Reader, number int) string {
	page := reader.Page(number)
	if page.V.IsNull() {
		slog.Warn("Skipping empty or unreadable page", "page", number)
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		slog.Warn("Failed to extract page text", "page", number, "error", err)
		return ""
	}
	return text
}
