package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lgaravaglia/contaflow/internal/model"
)

const reportSheet = "Sheet1"

// WriteClassificationReport writes one xlsx row per classified statement
// line, in page/line encounter order.
func WriteClassificationReport(path string, results []model.LineClassification) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"pagina", "linea_texto", "categoria_detectada", "patron_detectado"}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return err
	}

	for i, result := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{result.Page, result.Line, result.Category, result.Pattern}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}
