package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// TestStoreIntegration exercises the store against a live Postgres.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	_ = godotenv.Overload(".env", "../.env", "../../.env", "../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	userID := fmt.Sprintf("it_user_%d", time.Now().UnixNano())
	defer store.DeleteUser(ctx, userID)

	created, err := store.CreateUser(ctx, models.User{
		UserID:      userID,
		Name:        "Integration Test",
		CreditScore: 750,
		EPFBalance:  decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, c := range models.AllCategories {
		if !created.Permissions.Allows(c) {
			t.Fatalf("new user should allow %s by default", c)
		}
	}

	if _, err := store.CreateUser(ctx, created); err != storage.ErrAlreadyExists {
		t.Fatalf("duplicate create: want ErrAlreadyExists, got %v", err)
	}

	if err := store.CreateAsset(ctx, models.Asset{
		UserID: userID, Name: "Savings", Type: "cash", Value: decimal.NewFromInt(10000),
	}); err != nil {
		t.Fatalf("create asset: %v", err)
	}
	if err := store.CreateLiability(ctx, models.Liability{
		UserID: userID, Name: "Car loan", Type: "loan", OutstandingBalance: decimal.NewFromInt(4000),
	}); err != nil {
		t.Fatalf("create liability: %v", err)
	}

	summary, err := store.Summary(ctx, userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.TotalAssets.Equal(decimal.NewFromInt(10000)) || !summary.TotalLiabilities.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("summary mismatch: %+v", summary)
	}

	// Permission revocation is visible on the very next read.
	perms := created.Permissions
	perms.Revoke(models.CategoryAssets)
	if err := store.UpdatePermissions(ctx, userID, perms); err != nil {
		t.Fatalf("update permissions: %v", err)
	}
	reread, err := store.GetPermissions(ctx, userID)
	if err != nil {
		t.Fatalf("get permissions: %v", err)
	}
	if reread.Allows(models.CategoryAssets) {
		t.Fatal("asset permission should be revoked immediately")
	}

	// Read-only execution rejects writes outright.
	query := fmt.Sprintf("SELECT SUM(value) AS total FROM assets WHERE user_id = '%s'", userID)
	result, err := store.RunReadOnly(ctx, query)
	if err != nil {
		t.Fatalf("run read-only: %v", err)
	}
	if result.Empty() || result.Rows[0][0] != "10000.00" {
		t.Fatalf("unexpected query result: %+v", result)
	}
	if _, err := store.RunReadOnly(ctx, "DELETE FROM assets"); err == nil {
		t.Fatal("read-only transaction should refuse a DELETE")
	}
}
