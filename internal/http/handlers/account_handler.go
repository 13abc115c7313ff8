package handlers

import (
	"marketplace/internal/log"
	"marketplace/internal/services"
	"marketplace/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	Auth     *services.AuthService
	Accounts *services.AccountService
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=20"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validate.Struct(req); errs != nil {
		return fieldErrors(c, errs...)
	}
	if !validate.Password(req.Password) {
		return fieldErrors(c, validate.FieldError{
			Param:   "password",
			Message: "must be at least 8 characters with an uppercase letter, a lowercase letter and a digit",
		})
	}
	token, err := h.Auth.Register(req.Username, req.Password, req.Email)
	if err != nil {
		return fail(c, "account.register", err)
	}
	log.Audit(c, "account.register", map[string]any{"username": req.Username})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	acct, items, err := h.Accounts.Profile(c.Params("username"))
	if err != nil {
		return fail(c, "account.profile", err)
	}
	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"username":   acct.Username,
			"first_name": acct.FirstName,
			"last_name":  acct.LastName,
			"created_on": acct.CreatedOn,
		},
		"items": items,
	})
}

type updateAccountRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,max=50"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	NewPassword string `json:"new_password"`
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validate.Struct(req); errs != nil {
		return fieldErrors(c, errs...)
	}
	if req.FirstName == "" && req.LastName == "" && req.Email == "" && req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": "No info has been given to update"})
	}
	if req.NewPassword != "" && !validate.Password(req.NewPassword) {
		return fieldErrors(c, validate.FieldError{
			Param:   "new_password",
			Message: "must be at least 8 characters with an uppercase letter, a lowercase letter and a digit",
		})
	}
	err := h.Accounts.Update(currentAccount(c), c.Params("username"), services.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return fail(c, "account.update", err)
	}
	log.Audit(c, "account.update", map[string]any{"username": c.Params("username")})
	return c.SendStatus(fiber.StatusOK)
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.Accounts.Delete(currentAccount(c), c.Params("username")); err != nil {
		return fail(c, "account.delete", err)
	}
	log.Audit(c, "account.delete", map[string]any{"username": c.Params("username")})
	return c.SendStatus(fiber.StatusOK)
}
