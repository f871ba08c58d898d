package models

// Category is the unit of permission granularity: one disclosable slice of
// a user's financial data.
type Category string

const (
	CategoryAssets       Category = "assets"
	CategoryLiabilities  Category = "liabilities"
	CategoryTransactions Category = "transactions"
	CategoryInvestments  Category = "investments"
	CategoryCreditScore  Category = "credit_score"
	CategoryEPFBalance   Category = "epf_balance"
)

// AllCategories lists every category. Keep in sync with the constants
// above; PermissionSet iteration and the agent's schema view depend on it.
var AllCategories = []Category{
	CategoryAssets,
	CategoryLiabilities,
	CategoryTransactions,
	CategoryInvestments,
	CategoryCreditScore,
	CategoryEPFBalance,
}

// PermissionSet is the set of categories a user allows the assistant to
// read. Absence means denied.
type PermissionSet map[Category]struct{}

// AllowAll returns a set granting every category, the default for new users.
func AllowAll() PermissionSet {
	ps := make(PermissionSet, len(AllCategories))
	for _, c := range AllCategories {
		ps[c] = struct{}{}
	}
	return ps
}

// Allows reports whether the category may be disclosed.
func (ps PermissionSet) Allows(c Category) bool {
	_, ok := ps[c]
	return ok
}

// Grant adds a category to the set.
func (ps PermissionSet) Grant(c Category) {
	ps[c] = struct{}{}
}

// Revoke removes a category from the set.
func (ps PermissionSet) Revoke(c Category) {
	delete(ps, c)
}

// Empty reports whether every category is denied.
func (ps PermissionSet) Empty() bool {
	return len(ps) == 0
}
