package agent

import (
	"testing"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSQL(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare", "SELECT 1", "SELECT 1"},
		{"trailing semicolon", "SELECT 1;\n", "SELECT 1"},
		{"fenced", "```sql\nSELECT value FROM assets\n```", "SELECT value FROM assets"},
		{"fenced no tag", "```\nSELECT 1\n```", "SELECT 1"},
		{"fence with prose", "Here you go:\n```sql\nSELECT 1\n```", "SELECT 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractSQL(tc.reply))
		})
	}
}

func TestValidateStatementReadOnly(t *testing.T) {
	perms := models.AllowAll()

	require.NoError(t, validateStatement("SELECT SUM(value) FROM assets WHERE user_id = 'u1'", perms))
	require.NoError(t, validateStatement("WITH totals AS (SELECT SUM(amount) s FROM transactions) SELECT s FROM totals", perms))

	bad := []string{
		"",
		"DELETE FROM transactions",
		"INSERT INTO assets VALUES (1)",
		"SELECT 1; DROP TABLE users",
		"UPDATE users SET name = 'x'",
		"EXPLAIN ANALYZE SELECT 1",
	}
	for _, stmt := range bad {
		assert.ErrorIs(t, validateStatement(stmt, perms), errBadStatement, "statement: %q", stmt)
	}
}

func TestValidateStatementDeniedIdentifiers(t *testing.T) {
	perms := models.AllowAll()
	perms.Revoke(models.CategoryLiabilities)
	perms.Revoke(models.CategoryCreditScore)

	err := validateStatement("SELECT SUM(outstanding_balance) FROM liabilities WHERE user_id = 'u1'", perms)
	assert.ErrorIs(t, err, errDeniedCategory)

	err = validateStatement("SELECT credit_score FROM users WHERE user_id = 'u1'", perms)
	assert.ErrorIs(t, err, errDeniedCategory)

	// Allowed tables still pass; column names that merely contain a denied
	// word as a substring are not false positives.
	require.NoError(t, validateStatement("SELECT SUM(value) FROM assets WHERE user_id = 'u1'", perms))
}

func TestDeniedColumnsInResult(t *testing.T) {
	perms := models.AllowAll()
	perms.Revoke(models.CategoryCreditScore)

	hits := deniedColumns([]string{"user_id", "name", "credit_score"}, perms)
	assert.Equal(t, []string{"credit_score"}, hits)

	// Case differences in result column names must not slip through.
	assert.NotEmpty(t, deniedColumns([]string{"CREDIT_SCORE"}, perms))

	assert.Empty(t, deniedColumns([]string{"user_id", "name"}, perms))
	assert.Empty(t, deniedColumns([]string{"credit_score"}, models.AllowAll()))
}

func TestValidateStatementWordBoundaries(t *testing.T) {
	perms := models.AllowAll()

	// "created_at" must not trip the CREATE keyword check.
	assert.NoError(t, validateStatement("SELECT created_at FROM transactions WHERE user_id = 'u1'", perms))
	// "OFFSET" must not trip the SET keyword check.
	assert.NoError(t, validateStatement("SELECT amount FROM transactions WHERE user_id = 'u1' LIMIT 10 OFFSET 5", perms))
}
