package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/models"
)

// forbiddenKeywords match any statement that could mutate state or
// escape the read-only contract. The executor additionally runs inside a
// read-only transaction, so this is the first of two independent guards.
var forbiddenKeywords = regexp.MustCompile(
	`(?i)\b(insert|update|delete|drop|alter|create|grant|revoke|truncate|copy|merge|call|vacuum|listen|notify|set)\b`,
)

var fencePattern = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)```")

// extractSQL pulls a bare statement out of a model reply, stripping
// markdown fences and a trailing semicolon.
func extractSQL(reply string) string {
	text := strings.TrimSpace(reply)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	return strings.TrimSuffix(strings.TrimSpace(text), ";")
}

// validateStatement enforces the read-only, permission-scoped contract on
// a generated statement. A denied-category reference yields
// errDeniedCategory, which callers turn into a refusal answer; every
// other violation yields errBadStatement.
func validateStatement(sqlText string, perms models.PermissionSet) error {
	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		return fmt.Errorf("%w: empty statement", errBadStatement)
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("%w: multiple statements", errBadStatement)
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return fmt.Errorf("%w: not a select", errBadStatement)
	}
	if kw := forbiddenKeywords.FindString(trimmed); kw != "" {
		return fmt.Errorf("%w: contains %q", errBadStatement, strings.ToLower(kw))
	}

	for _, id := range deniedIdentifiers(perms) {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(id) + `\b`)
		if pattern.MatchString(trimmed) {
			return fmt.Errorf("%w: %s", errDeniedCategory, id)
		}
	}
	return nil
}

// deniedColumns reports which executed-result columns belong to a denied
// category. Statement validation alone cannot catch these: a star
// projection over users never names credit_score or epf_balance yet still
// returns them, so results are checked again after execution.
func deniedColumns(columns []string, perms models.PermissionSet) []string {
	var hits []string
	for _, col := range columns {
		for _, id := range deniedIdentifiers(perms) {
			if strings.EqualFold(strings.TrimSpace(col), id) {
				hits = append(hits, col)
			}
		}
	}
	return hits
}
