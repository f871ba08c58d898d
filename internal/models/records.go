package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money fields go over the wire as bare JSON numbers; the frontend
// contract predates this service and does not accept quoted amounts.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is a dated cash movement. Amount is signed by convention of
// the Type field ("credit"/"debit") rather than by sign.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

// Asset is something the user owns, valued at a point in time.
type Asset struct {
	ID     int64           `json:"id"`
	UserID string          `json:"user_id"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
}

// Liability is an outstanding obligation.
type Liability struct {
	ID                 int64           `json:"id"`
	UserID             string          `json:"user_id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// Investment is a holding with an optional ticker and quantity.
type Investment struct {
	ID           int64            `json:"id"`
	UserID       string           `json:"user_id"`
	Name         string           `json:"name"`
	Ticker       string           `json:"ticker,omitempty"`
	Type         string           `json:"type"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	CurrentValue decimal.Decimal  `json:"current_value"`
}

// Summary aggregates portfolio totals for the dashboard.
type Summary struct {
	TotalAssets         decimal.Decimal `json:"total_assets"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`
	InvestmentPortfolio decimal.Decimal `json:"investment_portfolio"`
}
