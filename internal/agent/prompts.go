package agent

import (
	"fmt"
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

func reformulatePrompt(question, userID string) string {
	return fmt.Sprintf(
		"Based on the user's question, reformulate it into a direct, unambiguous question for a data analyst. "+
			"Include the user ID. Original Question: %s, User ID: %s. Reformulated Question:",
		question, userID,
	)
}

func generatePrompt(question, userID, schema string) string {
	var b strings.Builder
	b.WriteString("You are a data technician writing PostgreSQL for a personal-finance database.\n")
	b.WriteString("Only the tables and columns below exist; referencing anything else is an error.\n\n")
	b.WriteString(schema)
	b.WriteString("\nRules:\n")
	b.WriteString("- Write exactly one SELECT statement, nothing else.\n")
	b.WriteString(fmt.Sprintf("- Always filter rows to user_id = '%s'.\n", userID))
	b.WriteString("- Never modify data.\n")
	b.WriteString("- Reply with the bare SQL statement, no markdown, no explanation.\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\nSQL:", question))
	return b.String()
}

func synthesizePrompt(question, resultText string) string {
	return fmt.Sprintf(
		"You are a friendly and helpful AI financial assistant. The user asked: %q.\n"+
			"The database returned the following information:\n%s\n\n"+
			"Based on this, formulate a helpful and natural language response.\n"+
			"Use visually appealing markdown formatting, such as:\n"+
			"- Bolding for key terms and numbers.\n"+
			"- Bullet points for lists (e.g., transaction lists).\n"+
			"- Code blocks for tables if needed.\n",
		question, resultText,
	)
}

// renderTable serializes a query result as pipe-separated text for the
// synthesis prompt.
func renderTable(result storage.QueryResult) string {
	var b strings.Builder
	b.WriteString(strings.Join(result.Columns, " | "))
	for _, row := range result.Rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, " | "))
	}
	return b.String()
}
