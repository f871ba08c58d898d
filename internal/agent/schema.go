package agent

import (
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/models"
)

// schemaView renders the subset of the schema the user's permissions
// allow, as DDL-style text for the generation prompt. Denied categories
// are physically absent so the model cannot be steered toward them.
func schemaView(perms models.PermissionSet) string {
	var b strings.Builder

	b.WriteString("CREATE TABLE users (\n")
	b.WriteString("    user_id TEXT PRIMARY KEY,\n")
	b.WriteString("    name TEXT")
	if perms.Allows(models.CategoryCreditScore) {
		b.WriteString(",\n    credit_score INTEGER")
	}
	if perms.Allows(models.CategoryEPFBalance) {
		b.WriteString(",\n    epf_balance NUMERIC")
	}
	b.WriteString("\n);\n")

	if perms.Allows(models.CategoryAssets) {
		b.WriteString("CREATE TABLE assets (\n")
		b.WriteString("    id BIGINT PRIMARY KEY,\n")
		b.WriteString("    user_id TEXT REFERENCES users(user_id),\n")
		b.WriteString("    name TEXT,\n    type TEXT,\n    value NUMERIC\n);\n")
	}
	if perms.Allows(models.CategoryLiabilities) {
		b.WriteString("CREATE TABLE liabilities (\n")
		b.WriteString("    id BIGINT PRIMARY KEY,\n")
		b.WriteString("    user_id TEXT REFERENCES users(user_id),\n")
		b.WriteString("    name TEXT,\n    type TEXT,\n    outstanding_balance NUMERIC\n);\n")
	}
	if perms.Allows(models.CategoryInvestments) {
		b.WriteString("CREATE TABLE investments (\n")
		b.WriteString("    id BIGINT PRIMARY KEY,\n")
		b.WriteString("    user_id TEXT REFERENCES users(user_id),\n")
		b.WriteString("    name TEXT,\n    ticker TEXT,\n    type TEXT,\n    quantity NUMERIC,\n    current_value NUMERIC\n);\n")
	}
	if perms.Allows(models.CategoryTransactions) {
		b.WriteString("CREATE TABLE transactions (\n")
		b.WriteString("    id BIGINT PRIMARY KEY,\n")
		b.WriteString("    user_id TEXT REFERENCES users(user_id),\n")
		b.WriteString("    date DATE,\n    description TEXT,\n    category TEXT,\n    amount NUMERIC,\n    type TEXT\n);\n")
	}

	return b.String()
}

// deniedIdentifiers lists the table and column names the generated SQL
// must not reference for the given permission set.
func deniedIdentifiers(perms models.PermissionSet) []string {
	identifiers := map[models.Category]string{
		models.CategoryAssets:       "assets",
		models.CategoryLiabilities:  "liabilities",
		models.CategoryTransactions: "transactions",
		models.CategoryInvestments:  "investments",
		models.CategoryCreditScore:  "credit_score",
		models.CategoryEPFBalance:   "epf_balance",
	}
	var denied []string
	for _, c := range models.AllCategories {
		if !perms.Allows(c) {
			denied = append(denied, identifiers[c])
		}
	}
	return denied
}
