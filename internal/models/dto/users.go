package dto

import (
	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	UserID      string           `json:"user_id"`
	Name        string           `json:"name"`
	CreditScore *int             `json:"credit_score,omitempty"`
	EPFBalance  *decimal.Decimal `json:"epf_balance,omitempty"`
}

// UpdateProfileRequest updates credit score and/or EPF balance. Both
// fields are optional but at least one must be present.
type UpdateProfileRequest struct {
	CreditScore *int             `json:"credit_score,omitempty"`
	EPFBalance  *decimal.Decimal `json:"epf_balance,omitempty"`
}

// Permissions is the wire shape of a PermissionSet: six named booleans,
// kept stable for existing frontends.
type Permissions struct {
	Assets       bool `json:"perm_assets"`
	Liabilities  bool `json:"perm_liabilities"`
	Transactions bool `json:"perm_transactions"`
	Investments  bool `json:"perm_investments"`
	CreditScore  bool `json:"perm_credit_score"`
	EPFBalance   bool `json:"perm_epf_balance"`
}

// ToSet converts the wire booleans into the domain capability set.
func (p Permissions) ToSet() models.PermissionSet {
	ps := make(models.PermissionSet)
	for c, allowed := range map[models.Category]bool{
		models.CategoryAssets:       p.Assets,
		models.CategoryLiabilities:  p.Liabilities,
		models.CategoryTransactions: p.Transactions,
		models.CategoryInvestments:  p.Investments,
		models.CategoryCreditScore:  p.CreditScore,
		models.CategoryEPFBalance:   p.EPFBalance,
	} {
		if allowed {
			ps.Grant(c)
		}
	}
	return ps
}

// PermissionsFromSet projects a capability set back onto the wire shape.
func PermissionsFromSet(ps models.PermissionSet) Permissions {
	return Permissions{
		Assets:       ps.Allows(models.CategoryAssets),
		Liabilities:  ps.Allows(models.CategoryLiabilities),
		Transactions: ps.Allows(models.CategoryTransactions),
		Investments:  ps.Allows(models.CategoryInvestments),
		CreditScore:  ps.Allows(models.CategoryCreditScore),
		EPFBalance:   ps.Allows(models.CategoryEPFBalance),
	}
}

type UserResponse struct {
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	CreditScore int             `json:"credit_score"`
	EPFBalance  decimal.Decimal `json:"epf_balance"`
	Permissions Permissions     `json:"permissions"`
}

type TokenRequest struct {
	UserID string `json:"user_id"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
