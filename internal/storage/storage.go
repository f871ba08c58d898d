package storage

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	CreditScore *int
	EPFBalance  *decimal.Decimal
}

// TransactionInput holds the fields required to create a transaction.
type TransactionInput struct {
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal
	Type        string
}

// UserStore captures user and permission persistence needed by handlers
// and by the query pipeline. GetPermissions re-reads the row every call so
// revocation takes effect on the very next query.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error
	GetPermissions(ctx context.Context, userID string) (models.PermissionSet, error)
	UpdatePermissions(ctx context.Context, userID string, perms models.PermissionSet) error
}

// RecordStore captures persistence for the four financial record kinds.
type RecordStore interface {
	CreateTransaction(ctx context.Context, userID string, in TransactionInput) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	CreateAsset(ctx context.Context, asset models.Asset) error
	CreateLiability(ctx context.Context, liability models.Liability) error
	CreateInvestment(ctx context.Context, investment models.Investment) error
	Summary(ctx context.Context, userID string) (models.Summary, error)
}

// QueryResult is a tabular result from a read-only query, serialized to
// strings so it can be embedded into a prompt.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the query matched no rows.
func (r QueryResult) Empty() bool {
	return len(r.Rows) == 0
}

// ReadOnlyQuerier runs model-generated SQL under a read-only transaction.
// Implementations must guarantee the statement cannot mutate state.
type ReadOnlyQuerier interface {
	RunReadOnly(ctx context.Context, sql string) (QueryResult, error)
}
