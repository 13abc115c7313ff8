package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/http/handlers"
	"marketplace/internal/repos"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the same routes as cmd/marketplace, minus the rate
// limiters, against an in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	deps := handlers.NewDeps(db, cfg)
	authed := handlers.RequireAccount(deps.Auth)

	app := fiber.New()
	app.Post("/account", deps.AccountHandler.Register)
	app.Get("/account/:username", deps.AccountHandler.Profile)
	app.Put("/account/:username", authed, deps.AccountHandler.Update)
	app.Delete("/account/:username", authed, deps.AccountHandler.Delete)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/item", authed, deps.ItemHandler.Create)
	app.Get("/item", deps.ItemHandler.List)
	app.Get("/item/:itemId", deps.ItemHandler.Detail)
	app.Put("/item/:itemId", authed, deps.ItemHandler.Update)
	app.Delete("/item/:itemId", authed, deps.ItemHandler.Delete)
	app.Get("/cart", authed, deps.CartHandler.View)
	app.Put("/cart", authed, deps.CartHandler.Mutate)
	app.Post("/orders", handlers.OptionalAccount(deps.Auth), deps.OrderHandler.Submit)
	app.Get("/order/:orderId", deps.OrderHandler.Detail)
	return app, db
}

func jsonReq(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, wantStatus int) map[string]any {
	t.Helper()
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode)
	out := map[string]any{}
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(b) > 0 && resp.Header.Get(fiber.HeaderContentType) != "" {
		_ = json.Unmarshal(b, &out)
	}
	return out
}

// register creates an account over the API and returns its bearer token.
func register(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	body := doJSON(t, app, jsonReq(t, "POST", "/account", map[string]any{
		"username": username,
		"password": "Str0ngPass",
		"email":    username + "@example.com",
	}, ""), fiber.StatusCreated)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createItem lists an item over the API and returns its id.
func createItem(t *testing.T, app *fiber.App, token, name string, price float64, quantity int) string {
	t.Helper()
	body := doJSON(t, app, jsonReq(t, "POST", "/item", map[string]any{
		"category":    "games",
		"name":        name,
		"description": "a " + name,
		"price":       price,
		"quantity":    quantity,
	}, token), fiber.StatusCreated)
	id, _ := body["item_id"].(string)
	require.NotEmpty(t, id)
	return id
}
