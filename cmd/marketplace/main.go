package main

import (
	stdlog "log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"marketplace/internal/config"
	"marketplace/internal/http/handlers"
	applog "marketplace/internal/log"
	"marketplace/internal/repos"
)

func main() {
	cfg := config.Load()
	applog.Init(cfg.LogLevel)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		stdlog.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(code).JSON(fiber.Map{"message": "Oops, an error occured"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cfg)
	authed := handlers.RequireAccount(deps.Auth)

	// Accounts
	app.Post("/account", deps.AccountHandler.Register)
	app.Get("/account/:username", deps.AccountHandler.Profile)
	app.Put("/account/:username", authed, deps.AccountHandler.Update)
	app.Delete("/account/:username", authed, deps.AccountHandler.Delete)

	// Login, throttled independently of the global limiter
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"errors": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)

	// Items
	app.Post("/item", authed, deps.ItemHandler.Create)
	app.Get("/item", deps.ItemHandler.List)
	app.Get("/item/:itemId", deps.ItemHandler.Detail)
	app.Put("/item/:itemId", authed, deps.ItemHandler.Update)
	app.Delete("/item/:itemId", authed, deps.ItemHandler.Delete)

	// Cart
	app.Get("/cart", authed, deps.CartHandler.View)
	app.Put("/cart", authed, deps.CartHandler.Mutate)

	// Orders: guest checkout, the token only feeds the cart-clearing policy
	app.Post("/orders", handlers.OptionalAccount(deps.Auth), deps.OrderHandler.Submit)
	app.Get("/order/:orderId", deps.OrderHandler.Detail)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})

	stdlog.Fatal(app.Listen(":" + cfg.Port))
}
