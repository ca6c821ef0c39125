package classifier

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lgaravaglia/contaflow/internal/common"
)

// Default rule table column headers, matched case-insensitively after
// trimming. Both can be overridden through configuration.
const (
	DefaultCategoryColumn = "CLASIFICACION CONTABLE"
	DefaultPatternColumn  = "ORIGINAL S/BANCO"
)

// LoadRules reads the rule table from an Excel workbook (first sheet) or a
// CSV file, depending on the extension, and returns its raw rows. A missing
// required column is a fatal configuration error.
func LoadRules(path, categoryColumn, patternColumn string) ([]RuleRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingFile, path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		rows, err = readWorkbook(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", common.ErrNoRules, path)
	}

	catIdx, err := findColumn(rows[0], categoryColumn)
	if err != nil {
		return nil, err
	}
	patIdx, err := findColumn(rows[0], patternColumn)
	if err != nil {
		return nil, err
	}

	ruleRows := make([]RuleRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		ruleRows = append(ruleRows, RuleRow{
			Category:    cellAt(row, catIdx),
			PatternCell: cellAt(row, patIdx),
		})
	}

	slog.Info("Loaded rule table", "file", path, "rows", len(ruleRows))
	return ruleRows, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func findColumn(header []string, name string) (int, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, cell := range header {
		if strings.ToUpper(strings.TrimSpace(cell)) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", common.ErrMissingColumn, name)
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
