// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRecord represents a single normalized invoice from either source.
type InvoiceRecord struct {
	Date     time.Time
	Number   string // Invoice number as printed, may be empty for marketplace rows
	TaxID    string
	Province string
	Amount   decimal.Decimal
}

// MarketplaceRecord is the lookup projection of a marketplace export row:
// the buyer's tax ID and the province of the sale. A full sale row can also
// be normalized into an InvoiceRecord of its own, with its date and amount.
type MarketplaceRecord struct {
	TaxID    string
	Province string
}

// RegionLookup maps a tax ID to the province of its most recent marketplace
// sale. Built with last-write-wins semantics over the export's row order.
type RegionLookup map[string]string
