package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAFIP(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]string
		ok   bool
	}{
		{
			name: "valid row",
			row: map[string]string{
				"fecha":          "14/1/2025",
				"numero_factura": "0001-00001234",
				"dni":            "30123456",
				"valor_total":    "1500,75",
			},
			ok: true,
		},
		{
			name: "unparsable date drops the row",
			row: map[string]string{
				"fecha":          "no es fecha",
				"numero_factura": "0001",
				"dni":            "123",
				"valor_total":    "100",
			},
		},
		{
			name: "unparsable amount drops the row",
			row: map[string]string{
				"fecha":          "14/1/2025",
				"numero_factura": "0001",
				"dni":            "123",
				"valor_total":    "cien pesos",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := NormalizeAFIP(tt.row)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), record.Date)
			assert.Equal(t, "0001-00001234", record.Number)
			assert.Equal(t, "30123456", record.TaxID)
			assert.True(t, record.Amount.Equal(decimal.RequireFromString("1500.75")))
		})
	}
}

func TestNormalizeMarketplace(t *testing.T) {
	t.Run("empty tax id drops the row", func(t *testing.T) {
		_, ok := NormalizeMarketplace(map[string]string{"dni": "  ", "provincia": "Salta"})
		assert.False(t, ok)
	})

	t.Run("keeps tax id and province", func(t *testing.T) {
		record, ok := NormalizeMarketplace(map[string]string{"dni": "123", "provincia": "Santa Fe"})
		require.True(t, ok)
		assert.Equal(t, "123", record.TaxID)
		assert.Equal(t, "Santa Fe", record.Province)
	})

	t.Run("repairs double-encoded province", func(t *testing.T) {
		// "Córdoba" as UTF-8 bytes mis-read as Latin-1 shows up as "CÃ³rdoba".
		record, ok := NormalizeMarketplace(map[string]string{"dni": "123", "provincia": "CÃ³rdoba"})
		require.True(t, ok)
		assert.Equal(t, "Córdoba", record.Province)
	})
}

func TestNormalizeMarketplaceInvoice(t *testing.T) {
	t.Run("sale row becomes an invoice record", func(t *testing.T) {
		record, ok := NormalizeMarketplaceInvoice(map[string]string{
			"fecha":       "14/1/2025",
			"valor_total": "1500,75",
			"dni":         "123",
			"provincia":   "Santa Fe",
		})
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), record.Date)
		assert.Empty(t, record.Number)
		assert.Equal(t, "123", record.TaxID)
		assert.Equal(t, "Santa Fe", record.Province)
		assert.True(t, record.Amount.Equal(decimal.RequireFromString("1500.75")))
	})

	t.Run("unparsable date drops the row", func(t *testing.T) {
		_, ok := NormalizeMarketplaceInvoice(map[string]string{
			"fecha":       "basura",
			"valor_total": "100",
			"dni":         "123",
		})
		assert.False(t, ok)
	})

	t.Run("unparsable amount drops the row", func(t *testing.T) {
		_, ok := NormalizeMarketplaceInvoice(map[string]string{
			"fecha":       "14/1/2025",
			"valor_total": "cien",
			"dni":         "123",
		})
		assert.False(t, ok)
	})

	t.Run("missing tax id is still a sale", func(t *testing.T) {
		record, ok := NormalizeMarketplaceInvoice(map[string]string{
			"fecha":       "14/1/2025",
			"valor_total": "100",
			"provincia":   "Salta",
		})
		require.True(t, ok)
		assert.Empty(t, record.TaxID)
	})
}

func TestRepairMojibake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain ascii untouched", input: "Santa Fe", want: "Santa Fe"},
		{name: "double-encoded recovered", input: "CÃ³rdoba", want: "Córdoba"},
		{name: "genuine latin-1 text kept", input: "Córdoba", want: "Córdoba"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairMojibake(tt.input))
		})
	}
}

func TestLoadAFIP_DropsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afip.csv")
	content := "fecha;numero_factura;dni;valor_total\n" +
		"14/1/2025;0001;123;1000,50\n" +
		"basura;0002;456;100\n" +
		"15/1/2025;0003;789;no-numero\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	records, err := LoadAFIP(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0001", records[0].Number)
}

func TestLoadMarketplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mercado.csv")
	content := "fecha;valor_total;dni;provincia\n" +
		"14/1/2025;100;123;Salta\n" +
		"15/1/2025;200;;Jujuy\n" +
		"16/1/2025;300;123;Mendoza\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	records, err := LoadMarketplace(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Salta", records[0].Province)
	assert.Equal(t, "Mendoza", records[1].Province)
}

func TestLoadMarketplaceInvoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mercado.csv")
	content := "fecha;valor_total;dni;provincia\n" +
		"14/1/2025;100;123;Salta\n" +
		"basura;200;456;Jujuy\n" +
		"15/1/2025;300;;Mendoza\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	records, err := LoadMarketplaceInvoices(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Salta", records[0].Province)
	assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(100)))
	// A sale without a tax ID is still a sale.
	assert.Equal(t, "Mendoza", records[1].Province)
}
