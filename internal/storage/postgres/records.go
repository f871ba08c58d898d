package postgres

import (
	"context"
	"errors"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the Postgres error code raised when a record
// references a missing user.
const foreignKeyViolation = "23503"

func mapRecordErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return storage.ErrNotFound
	}
	return err
}

// CreateTransaction inserts a dated cash movement for the user.
func (s *Store) CreateTransaction(ctx context.Context, userID string, in storage.TransactionInput) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO transactions (user_id, date, description, category, amount, type)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		userID, in.Date, in.Description, in.Category, in.Amount, in.Type,
	)
	return mapRecordErr(err)
}

// ListTransactions returns the user's transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, date, description, category, amount, type
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.Category, &t.Amount, &t.Type); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateAsset inserts an owned asset row.
func (s *Store) CreateAsset(ctx context.Context, asset models.Asset) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO assets (user_id, name, type, value)
		VALUES ($1, $2, $3, $4);`,
		asset.UserID, asset.Name, asset.Type, asset.Value,
	)
	return mapRecordErr(err)
}

// CreateLiability inserts an outstanding obligation row.
func (s *Store) CreateLiability(ctx context.Context, liability models.Liability) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO liabilities (user_id, name, type, outstanding_balance)
		VALUES ($1, $2, $3, $4);`,
		liability.UserID, liability.Name, liability.Type, liability.OutstandingBalance,
	)
	return mapRecordErr(err)
}

// CreateInvestment inserts a holding row.
func (s *Store) CreateInvestment(ctx context.Context, investment models.Investment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO investments (user_id, name, ticker, type, quantity, current_value)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		investment.UserID, investment.Name, investment.Ticker, investment.Type,
		investment.Quantity, investment.CurrentValue,
	)
	return mapRecordErr(err)
}

// Summary aggregates portfolio totals for the dashboard.
func (s *Store) Summary(ctx context.Context, userID string) (models.Summary, error) {
	var sum models.Summary
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(value) FROM assets WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(outstanding_balance) FROM liabilities WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(current_value) FROM investments WHERE user_id = $1), 0);`,
		userID,
	).Scan(&sum.TotalAssets, &sum.TotalLiabilities, &sum.InvestmentPortfolio)
	if err != nil {
		return models.Summary{}, err
	}
	return sum, nil
}
