package handlers

import (
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/log"
	"marketplace/internal/services"
	"marketplace/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order   *services.OrderService
	Catalog *services.CatalogService
}

type orderLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type submitOrderRequest struct {
	Email string             `json:"email" validate:"required,email"`
	Cart  []orderLineRequest `json:"cart" validate:"required,min=1,dive"`
}

// Submit is guest checkout: no auth required, the order is keyed by email.
// Item existence is checked here as request validation; the engine verifies
// again inside the transaction since time has passed.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	var req submitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validate.Struct(req); errs != nil {
		return fieldErrors(c, errs...)
	}
	for _, ln := range req.Cart {
		if _, err := h.Catalog.Get(ln.ItemID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fieldErrors(c, validate.FieldError{Param: "cart", Message: "item " + ln.ItemID + " was not found"})
			}
			return fail(c, "order.validate", err)
		}
	}

	lines := make([]services.LineRequest, 0, len(req.Cart))
	for _, ln := range req.Cart {
		lines = append(lines, services.LineRequest{ItemID: ln.ItemID, Quantity: ln.Quantity})
	}
	orderID, err := h.Order.Submit(req.Email, lines)
	if err != nil {
		return fail(c, "order.submit", err)
	}
	log.Audit(c, "order.submit", map[string]any{"order_id": orderID, "lines": len(lines)})

	// Checkout does not need a cart, but a signed-in buyer gets theirs
	// cleaned up when the policy is on.
	if acct := currentAccount(c); acct != nil {
		if err := h.Order.ClearPurchased(acct.ID, lines); err != nil {
			log.Error(c, "order.clear_cart", err, map[string]any{"order_id": orderID})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order_id": orderID})
}

func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("orderId"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	order, orderLines, err := h.Order.Get(id)
	if err != nil {
		return fail(c, "order.detail", err)
	}
	return c.JSON(fiber.Map{"order": order, "items": orderLines})
}
