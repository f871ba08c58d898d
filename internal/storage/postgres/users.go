package postgres

import (
	"context"
	"errors"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `user_id, name, credit_score, epf_balance,
	perm_assets, perm_liabilities, perm_transactions,
	perm_investments, perm_credit_score, perm_epf_balance`

const insertUserQuery = `
	INSERT INTO users (` + userColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + userColumns + `;`

// CreateUser inserts a new user row. Permission columns default to TRUE
// unless the caller revoked categories up front.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	perms := user.Permissions
	if perms == nil {
		perms = models.AllowAll()
	}
	row := s.pool.QueryRow(ctx, insertUserQuery,
		user.UserID, user.Name, user.CreditScore, user.EPFBalance,
		perms.Allows(models.CategoryAssets),
		perms.Allows(models.CategoryLiabilities),
		perms.Allows(models.CategoryTransactions),
		perms.Allows(models.CategoryInvestments),
		perms.Allows(models.CategoryCreditScore),
		perms.Allows(models.CategoryEPFBalance),
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// GetUser fetches a user with its permission flags.
func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, userID))
}

// DeleteUser removes the user; financial records cascade via FK.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateProfile updates credit score and/or EPF balance; nil fields keep
// their current values.
func (s *Store) UpdateProfile(ctx context.Context, userID string, update storage.ProfileUpdate) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET
			credit_score = COALESCE($2, credit_score),
			epf_balance = COALESCE($3, epf_balance)
		WHERE user_id = $1;`,
		userID, update.CreditScore, update.EPFBalance,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetPermissions reads the current permission flags. No caching: the row
// is re-read on every call so a revocation is visible immediately.
func (s *Store) GetPermissions(ctx context.Context, userID string) (models.PermissionSet, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Permissions, nil
}

// UpdatePermissions overwrites all six permission flags.
func (s *Store) UpdatePermissions(ctx context.Context, userID string, perms models.PermissionSet) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET
			perm_assets = $2,
			perm_liabilities = $3,
			perm_transactions = $4,
			perm_investments = $5,
			perm_credit_score = $6,
			perm_epf_balance = $7
		WHERE user_id = $1;`,
		userID,
		perms.Allows(models.CategoryAssets),
		perms.Allows(models.CategoryLiabilities),
		perms.Allows(models.CategoryTransactions),
		perms.Allows(models.CategoryInvestments),
		perms.Allows(models.CategoryCreditScore),
		perms.Allows(models.CategoryEPFBalance),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	var assets, liabilities, transactions, investments, creditScore, epfBalance bool
	err := row.Scan(
		&user.UserID, &user.Name, &user.CreditScore, &user.EPFBalance,
		&assets, &liabilities, &transactions, &investments, &creditScore, &epfBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	user.Permissions = make(models.PermissionSet)
	for cat, allowed := range map[models.Category]bool{
		models.CategoryAssets:       assets,
		models.CategoryLiabilities:  liabilities,
		models.CategoryTransactions: transactions,
		models.CategoryInvestments:  investments,
		models.CategoryCreditScore:  creditScore,
		models.CategoryEPFBalance:   epfBalance,
	} {
		if allowed {
			user.Permissions.Grant(cat)
		}
	}
	return user, nil
}
