package services

import (
	"database/sql"
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Items *repos.ItemRepo
}

func NewCartService(carts *repos.CartRepo, items *repos.ItemRepo) *CartService {
	return &CartService{Carts: carts, Items: items}
}

// Add sets the cart quantity for an item to min(live stock, requested).
// Re-adding replaces the stored quantity, so the call is an idempotent
// "set my cart to this" rather than an accumulate. Stock is not reserved;
// carts only hint at intent and are re-capped against inventory at checkout.
func (s *CartService) Add(accountID int64, itemID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrValidation
	}
	stock, err := s.Items.Stock(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	cartID, err := s.Carts.IDByOwner(accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	effective := min(stock, quantity)
	if effective < 1 {
		// Nothing in stock: the capped quantity is zero, which reads as
		// "not in the cart". Drop any stale entry instead of storing a zero.
		return s.Carts.Remove(cartID, itemID)
	}
	return s.Carts.Upsert(cartID, itemID, effective)
}

// Remove takes quantity off an entry; removing at least the stored quantity
// deletes the entry outright, never leaving a zero or negative row.
func (s *CartService) Remove(accountID int64, itemID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrValidation
	}
	cartID, err := s.Carts.IDByOwner(accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	current, err := s.Carts.EntryQuantity(cartID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if current > quantity {
		return s.Carts.SetQuantity(cartID, itemID, current-quantity)
	}
	return s.Carts.Remove(cartID, itemID)
}

// Get returns the cart entries oldest-first; an empty cart is an empty
// slice, not an error.
func (s *CartService) Get(accountID int64) ([]domain.CartEntry, error) {
	return s.Carts.Entries(accountID)
}
