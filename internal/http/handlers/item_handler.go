package handlers

import (
	"marketplace/internal/log"
	"marketplace/internal/services"
	"marketplace/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	Catalog *services.CatalogService
}

type createItemRequest struct {
	Category    string          `json:"category" validate:"required,max=255"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"required,max=1024"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req createItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validate.Struct(req); errs != nil {
		return fieldErrors(c, errs...)
	}
	if req.Price.IsNegative() {
		return fieldErrors(c, validate.FieldError{Param: "price", Message: "must not be negative"})
	}
	id, err := h.Catalog.Create(currentAccount(c).ID, req.Name, req.Description, req.Price, req.Quantity, req.Category)
	if err != nil {
		return fail(c, "item.create", err)
	}
	log.Audit(c, "item.create", map[string]any{"item_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item_id": id})
}

// List serves the public catalog. Query params are sanitized rather than
// rejected: unknown sort or category values fall back to defaults.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.Catalog.List(
		validate.Sort(c.Query("p")),
		c.Query("c"),
		validate.Offset(c.Query("o")),
		validate.Limit(c.Query("l")),
	)
	if err != nil {
		return fail(c, "item.list", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *ItemHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("itemId"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	item, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, "item.detail", err)
	}
	return c.JSON(fiber.Map{"item": item})
}

type updateItemRequest struct {
	Category    string           `json:"category" validate:"omitempty,max=255"`
	Name        string           `json:"name" validate:"omitempty,max=255"`
	Description string           `json:"description" validate:"omitempty,max=1024"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

// Update lets the seller edit a listing. An invalid or unknown item id reads
// as 403, the same as not owning it.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("itemId"))
	if !ok {
		return c.SendStatus(fiber.StatusForbidden)
	}
	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validate.Struct(req); errs != nil {
		return fieldErrors(c, errs...)
	}
	err := h.Catalog.Update(currentAccount(c).ID, id, services.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		return fail(c, "item.update", err)
	}
	log.Audit(c, "item.update", map[string]any{"item_id": id})
	return c.SendStatus(fiber.StatusOK)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("itemId"))
	if !ok {
		return c.SendStatus(fiber.StatusForbidden)
	}
	if err := h.Catalog.Delete(currentAccount(c).ID, id); err != nil {
		return fail(c, "item.delete", err)
	}
	log.Audit(c, "item.delete", map[string]any{"item_id": id})
	return c.SendStatus(fiber.StatusOK)
}
