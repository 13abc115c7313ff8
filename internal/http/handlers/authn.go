package handlers

import (
	"strings"

	"marketplace/internal/domain"
	"marketplace/internal/log"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// RequireAccount rejects requests without a valid bearer token and stores
// the resolved account in Locals for the handler.
func RequireAccount(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		acct, err := auth.Verify(tok)
		if err != nil {
			log.Security(c, "auth.token.reject", nil)
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("account", acct)
		return c.Next()
	}
}

// OptionalAccount attaches the account when a valid token is present and
// lets the request through either way; guest checkout relies on it.
func OptionalAccount(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := bearerToken(c); tok != "" {
			if acct, err := auth.Verify(tok); err == nil {
				c.Locals("account", acct)
			}
		}
		return c.Next()
	}
}

func currentAccount(c *fiber.Ctx) *domain.Account {
	acct, _ := c.Locals("account").(*domain.Account)
	return acct
}
