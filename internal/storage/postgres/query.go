package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

// RunReadOnly executes a single model-generated statement inside a
// read-only transaction and serializes the result for prompt embedding.
// The transaction access mode makes mutation impossible even if a write
// slipped past statement validation, which is what makes retrying the
// execution stage safe.
func (s *Store) RunReadOnly(ctx context.Context, sql string) (storage.QueryResult, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return storage.QueryResult{}, fmt.Errorf("begin read-only tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return storage.QueryResult{}, err
	}
	defer rows.Close()

	var result storage.QueryResult
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, string(fd.Name))
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return storage.QueryResult{}, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = renderValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return storage.QueryResult{}, err
	}
	return result, nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return val.Format("2006-01-02")
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
