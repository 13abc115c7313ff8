package handlers

import (
	"marketplace/internal/log"
	"marketplace/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login accepts username or email. Every failure path returns the same
// message so the endpoint leaks nothing about which half was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	token, err := h.Auth.Login(req.Username, req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": req.Username})
		return fail(c, "auth.login", err)
	}
	log.Audit(c, "auth.login.success", map[string]any{"username": req.Username})
	return c.JSON(fiber.Map{"token": token})
}
