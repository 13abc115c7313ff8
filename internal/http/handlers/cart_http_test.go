package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)
	doJSON(t, app, jsonReq(t, "GET", "/cart", nil, ""), fiber.StatusUnauthorized)
	doJSON(t, app, jsonReq(t, "GET", "/cart", nil, "garbage-token"), fiber.StatusUnauthorized)
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=add", map[string]any{
		"item_id": uuid.NewString(), "quantity": 1,
	}, ""), fiber.StatusUnauthorized)
}

func TestCartAddCapsAndViewOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	bob := register(t, app, "bob")
	alice := register(t, app, "alice")
	itemID := createItem(t, app, bob, "lamp", 20, 3)

	// asking for more than the shelf holds stores what the shelf holds
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=add", map[string]any{
		"item_id": itemID, "quantity": 10,
	}, alice), fiber.StatusOK)

	body := doJSON(t, app, jsonReq(t, "GET", "/cart", nil, alice), fiber.StatusOK)
	entries, ok := body["cart"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry, _ := entries[0].(map[string]any)
	assert.Equal(t, itemID, entry["item_id"])
	assert.EqualValues(t, 3, entry["quantity"])

	// adding to the cart never touches the shelf
	var stock int
	require.NoError(t, db.Get(&stock, `SELECT quantity FROM items WHERE item_id=?`, itemID))
	assert.Equal(t, 3, stock)

	// each account sees only its own cart
	body = doJSON(t, app, jsonReq(t, "GET", "/cart", nil, bob), fiber.StatusOK)
	entries, _ = body["cart"].([]any)
	assert.Empty(t, entries)
}

func TestCartMutateValidationOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	bob := register(t, app, "bob")
	alice := register(t, app, "alice")
	itemID := createItem(t, app, bob, "pen", 1, 5)

	// the mode is part of the contract
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=explode", map[string]any{
		"item_id": itemID, "quantity": 1,
	}, alice), fiber.StatusBadRequest)
	doJSON(t, app, jsonReq(t, "PUT", "/cart", map[string]any{
		"item_id": itemID, "quantity": 1,
	}, alice), fiber.StatusBadRequest)

	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=add", map[string]any{
		"item_id": itemID, "quantity": 0,
	}, alice), fiber.StatusBadRequest)
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=add", map[string]any{
		"item_id": "not-a-uuid", "quantity": 1,
	}, alice), fiber.StatusBadRequest)
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=add", map[string]any{
		"item_id": uuid.NewString(), "quantity": 1,
	}, alice), fiber.StatusNotFound)

	// removing something that was never added
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=remove", map[string]any{
		"item_id": itemID, "quantity": 1,
	}, alice), fiber.StatusNotFound)
}

func TestCartRemoveOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	bob := register(t, app, "bob")
	alice := register(t, app, "alice")
	itemID := createItem(t, app, bob, "mug", 3, 10)

	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=add", map[string]any{
		"item_id": itemID, "quantity": 6,
	}, alice), fiber.StatusOK)
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=remove", map[string]any{
		"item_id": itemID, "quantity": 4,
	}, alice), fiber.StatusOK)

	body := doJSON(t, app, jsonReq(t, "GET", "/cart", nil, alice), fiber.StatusOK)
	entries, _ := body["cart"].([]any)
	require.Len(t, entries, 1)
	entry, _ := entries[0].(map[string]any)
	assert.EqualValues(t, 2, entry["quantity"])

	// removing at least the remaining quantity drops the entry
	doJSON(t, app, jsonReq(t, "PUT", "/cart?m=remove", map[string]any{
		"item_id": itemID, "quantity": 5,
	}, alice), fiber.StatusOK)
	body = doJSON(t, app, jsonReq(t, "GET", "/cart", nil, alice), fiber.StatusOK)
	entries, _ = body["cart"].([]any)
	assert.Empty(t, entries)
}
