package models

import "github.com/shopspring/decimal"

// User captures application-facing fields for a finance-app account. The
// ID comes from the external identity provider; it is never generated
// locally.
type User struct {
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	CreditScore int             `json:"credit_score"`
	EPFBalance  decimal.Decimal `json:"epf_balance"`
	Permissions PermissionSet   `json:"-"`
}
