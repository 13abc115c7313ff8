package services_test

import (
	"testing"

	"marketplace/internal/repos"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedAccount registers an account (cart included) straight through the repo.
func seedAccount(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := repos.NewAccountRepo(db).Create(username, string(hash), username+"@example.com")
	require.NoError(t, err)
	return id
}

func seedItem(t *testing.T, db *sqlx.DB, sellerID int64, name string, price decimal.Decimal, quantity int) string {
	t.Helper()
	cat, err := repos.NewCategoryRepo(db).ByName("games")
	require.NoError(t, err)
	id, err := repos.NewItemRepo(db).Create(sellerID, name, "a "+name, price, quantity, cat.ID)
	require.NoError(t, err)
	return id
}

func itemStock(t *testing.T, db *sqlx.DB, itemID string) int {
	t.Helper()
	qty, err := repos.NewItemRepo(db).Stock(itemID)
	require.NoError(t, err)
	return qty
}
