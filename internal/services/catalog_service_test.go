package services_test

import (
	"testing"

	"marketplace/internal/domain"
	"marketplace/internal/repos"
	"marketplace/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(db *repos.ItemRepo, cats *repos.CategoryRepo) *services.CatalogService {
	return services.NewCatalogService(db, cats)
}

func TestCatalogCreateAndGet(t *testing.T) {
	db := testDB(t)
	seller := seedAccount(t, db, "bob")
	svc := newCatalogService(repos.NewItemRepo(db), repos.NewCategoryRepo(db))

	id, err := svc.Create(seller, "chess set", "wooden pieces", decimal.NewFromFloat(39.5), 4, "games")
	require.NoError(t, err)

	it, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "chess set", it.Name)
	assert.Equal(t, "bob", it.Seller)
	assert.Equal(t, "games", it.Category)
	assert.Equal(t, 4, it.Quantity)
	assert.True(t, it.Price.Equal(decimal.NewFromFloat(39.5)))
}

func TestCatalogCreateUnknownCategory(t *testing.T) {
	db := testDB(t)
	seller := seedAccount(t, db, "bob")
	svc := newCatalogService(repos.NewItemRepo(db), repos.NewCategoryRepo(db))

	_, err := svc.Create(seller, "widget", "desc", decimal.NewFromInt(1), 1, "gadgets")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogGetMissing(t *testing.T) {
	db := testDB(t)
	svc := newCatalogService(repos.NewItemRepo(db), repos.NewCategoryRepo(db))

	_, err := svc.Get(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogUpdateOwnershipAndFields(t *testing.T) {
	db := testDB(t)
	bob := seedAccount(t, db, "bob")
	eve := seedAccount(t, db, "eve")
	itemID := seedItem(t, db, bob, "radio", decimal.NewFromInt(80), 2)

	svc := newCatalogService(repos.NewItemRepo(db), repos.NewCategoryRepo(db))

	err := svc.Update(eve, itemID, services.ItemUpdate{Name: "stolen"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// a missing item reads the same as not owning it
	err = svc.Update(bob, uuid.NewString(), services.ItemUpdate{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	newPrice := decimal.NewFromFloat(75.25)
	newQty := 7
	require.NoError(t, svc.Update(bob, itemID, services.ItemUpdate{
		Name:     "transistor radio",
		Price:    &newPrice,
		Quantity: &newQty,
		Category: "accessories",
	}))

	it, err := svc.Get(itemID)
	require.NoError(t, err)
	assert.Equal(t, "transistor radio", it.Name)
	assert.Equal(t, 7, it.Quantity)
	assert.Equal(t, "accessories", it.Category)
	assert.True(t, it.Price.Equal(newPrice))

	bad := decimal.NewFromInt(-1)
	err = svc.Update(bob, itemID, services.ItemUpdate{Price: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogDeleteOwnershipAndListFilters(t *testing.T) {
	db := testDB(t)
	bob := seedAccount(t, db, "bob")
	eve := seedAccount(t, db, "eve")
	cheap := seedItem(t, db, bob, "cheap", decimal.NewFromInt(1), 1)
	dear := seedItem(t, db, bob, "dear", decimal.NewFromInt(100), 1)

	svc := newCatalogService(repos.NewItemRepo(db), repos.NewCategoryRepo(db))

	assert.ErrorIs(t, svc.Delete(eve, cheap), domain.ErrForbidden)

	// price ascending and descending
	asc, err := svc.List("low", "", 0, 20)
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "cheap", asc[0].Name)
	desc, err := svc.List("high", "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, "dear", desc[0].Name)

	// unknown category falls back to all rather than erroring
	all, err := svc.List("relevent", "nonsense", 0, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// category filter
	games, err := svc.List("relevent", "games", 0, 20)
	require.NoError(t, err)
	assert.Len(t, games, 2)
	books, err := svc.List("relevent", "books", 0, 20)
	require.NoError(t, err)
	assert.Empty(t, books)

	require.NoError(t, svc.Delete(bob, dear))
	_, err = svc.Get(dear)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
