package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgaravaglia/contaflow/internal/dateparse"
	"github.com/lgaravaglia/contaflow/internal/model"
)

func sampleRecords() []model.InvoiceRecord {
	return []model.InvoiceRecord{
		{
			Date:     time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC),
			Number:   "0001-00001234",
			TaxID:    "30123456",
			Province: "Córdoba",
			Amount:   decimal.RequireFromString("1500.75"),
		},
		{
			Date:     time.Date(2025, time.November, 17, 0, 0, 0, 0, time.UTC),
			Number:   "0001-00001235",
			TaxID:    "27999888",
			Province: "Santa Fe",
			Amount:   decimal.NewFromInt(200),
		},
	}
}

func TestWriteInvoiceCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInvoiceCSV(&buf, sampleRecords()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "fecha;numero;provincia;valor", lines[0])
	assert.Equal(t, "14/01/2025;0001-00001234;Córdoba;1500.75", lines[1])
	assert.Equal(t, "17/11/2025;0001-00001235;Santa Fe;200.00", lines[2])
}

func TestWriteInvoiceCSV_DateRoundTrip(t *testing.T) {
	// The exported date column must re-parse to the same calendar date.
	var buf bytes.Buffer
	records := sampleRecords()
	require.NoError(t, WriteInvoiceCSV(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines[1:] {
		dateField := strings.Split(line, ";")[0]
		parsed, ok := dateparse.Parse(dateField)
		require.True(t, ok, "exported date %q must parse", dateField)
		assert.True(t, parsed.Equal(records[i].Date))
	}
}

func TestExportInvoiceCSV_AppendsExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "salida")

	path, err := ExportInvoiceCSV(base, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, base+".csv", path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "fecha;numero;provincia;valor\n"))
}
