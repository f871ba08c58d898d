package dto

import (
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

type CreateAssetRequest struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CreateLiabilityRequest accepts both snake_case and the frontend's
// camelCase alias for the balance field.
type CreateLiabilityRequest struct {
	Name                    string           `json:"name"`
	Type                    string           `json:"type"`
	OutstandingBalance      *decimal.Decimal `json:"outstanding_balance,omitempty"`
	OutstandingBalanceAlias *decimal.Decimal `json:"outstandingBalance,omitempty"`
}

// Balance resolves whichever field the client sent.
func (r CreateLiabilityRequest) Balance() (decimal.Decimal, bool) {
	if r.OutstandingBalance != nil {
		return *r.OutstandingBalance, true
	}
	if r.OutstandingBalanceAlias != nil {
		return *r.OutstandingBalanceAlias, true
	}
	return decimal.Decimal{}, false
}

type CreateInvestmentRequest struct {
	Name              string           `json:"name"`
	Ticker            string           `json:"ticker,omitempty"`
	Type              string           `json:"type"`
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
	CurrentValue      *decimal.Decimal `json:"current_value,omitempty"`
	CurrentValueAlias *decimal.Decimal `json:"currentValue,omitempty"`
}

// Value resolves whichever current-value field the client sent.
func (r CreateInvestmentRequest) Value() (decimal.Decimal, bool) {
	if r.CurrentValue != nil {
		return *r.CurrentValue, true
	}
	if r.CurrentValueAlias != nil {
		return *r.CurrentValueAlias, true
	}
	return decimal.Decimal{}, false
}

// TransactionView is the list shape expected by the dashboard.
type TransactionView struct {
	Date     string          `json:"date"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
}
