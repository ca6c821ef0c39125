// Package importer reads the AFIP and marketplace CSV exports and
// normalizes their rows into domain records.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lgaravaglia/contaflow/internal/common"
)

// Field layouts of the two supported exports, in positional order for
// headerless files.
var (
	AFIPFields        = []string{"fecha", "numero_factura", "dni", "valor_total"}
	MarketplaceFields = []string{"fecha", "valor_total", "dni", "provincia"}
)

// ReadDelimited reads a ';'-delimited, Latin-1 encoded export and returns
// one string map per row, keyed by the given field names. A header row is
// detected by the literal token "fecha" in the lowered first line; without
// one, fields are assigned positionally and short rows are skipped.
func ReadDelimited(path string, fields []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := readDelimited(f, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

func readDelimited(r io.Reader, fields []string) ([]map[string]string, error) {
	raw, err := io.ReadAll(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	if strings.Contains(strings.ToLower(lines[0]), "fecha") {
		return mapByHeader(records, fields), nil
	}
	return mapByPosition(records, fields), nil
}

func mapByHeader(records [][]string, fields []string) []map[string]string {
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(fields))
		for _, field := range fields {
			if i, ok := index[field]; ok && i < len(record) {
				row[field] = strings.TrimSpace(record[i])
			} else {
				row[field] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func mapByPosition(records [][]string, fields []string) []map[string]string {
	var rows []map[string]string
	for _, record := range records {
		if len(record) < len(fields) {
			continue
		}
		row := make(map[string]string, len(fields))
		for i, field := range fields {
			row[field] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows
}
