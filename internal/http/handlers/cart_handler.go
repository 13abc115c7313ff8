package handlers

import (
	"marketplace/internal/log"
	"marketplace/internal/services"
	"marketplace/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	entries, err := h.Cart.Get(currentAccount(c).ID)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(fiber.Map{"cart": entries})
}

type cartRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// Mutate handles PUT /cart?m=add|remove.
func (h *CartHandler) Mutate(c *fiber.Ctx) error {
	m := c.Query("m")
	if m != "add" && m != "remove" {
		return fieldErrors(c, validate.FieldError{Param: "m", Message: "must be 'add' or 'remove'"})
	}
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validate.Struct(req); errs != nil {
		return fieldErrors(c, errs...)
	}

	acct := currentAccount(c)
	var err error
	if m == "add" {
		err = h.Cart.Add(acct.ID, req.ItemID, req.Quantity)
	} else {
		err = h.Cart.Remove(acct.ID, req.ItemID, req.Quantity)
	}
	if err != nil {
		return fail(c, "cart."+m, err)
	}
	log.Info(c, "cart."+m, map[string]any{"item_id": req.ItemID, "quantity": req.Quantity})
	return c.SendStatus(fiber.StatusOK)
}
