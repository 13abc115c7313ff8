package services

import (
	"database/sql"
	"errors"
	"fmt"

	"marketplace/internal/domain"
	"marketplace/internal/repos"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	Items *repos.ItemRepo
	Cats  *repos.CategoryRepo
}

func NewCatalogService(items *repos.ItemRepo, cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Items: items, Cats: cats}
}

func (s *CatalogService) categoryID(name string) (int64, error) {
	cat, err := s.Cats.ByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("category was not found: %w", domain.ErrValidation)
		}
		return 0, err
	}
	return cat.ID, nil
}

func (s *CatalogService) Create(sellerID int64, name, description string, price decimal.Decimal, quantity int, category string) (string, error) {
	catID, err := s.categoryID(category)
	if err != nil {
		return "", err
	}
	return s.Items.Create(sellerID, name, description, price, quantity, catID)
}

func (s *CatalogService) Get(id string) (domain.Item, error) {
	it, err := s.Items.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}
	return it, nil
}

// List pages the catalog; an unknown category silently falls back to all,
// matching the query-param sanitizing of the public endpoint.
func (s *CatalogService) List(sort, category string, offset, limit int) ([]domain.Item, error) {
	if category != "" {
		if _, err := s.Cats.ByName(category); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
			category = ""
		}
	}
	return s.Items.List(sort, category, offset, limit)
}

// ItemUpdate fields left at their zero value are not touched.
type ItemUpdate struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Quantity    *int
	Category    string
}

// Update mutates a listing. Only the seller may touch it; a missing item
// reads as forbidden rather than not-found so probing ids reveals nothing.
func (s *CatalogService) Update(sellerID int64, itemID string, upd ItemUpdate) error {
	it, err := s.Items.Get(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrForbidden
		}
		return err
	}
	if it.SellerID != sellerID {
		return domain.ErrForbidden
	}
	if upd.Name != "" {
		if err := s.Items.UpdateName(itemID, upd.Name); err != nil {
			return err
		}
	}
	if upd.Description != "" {
		if err := s.Items.UpdateDescription(itemID, upd.Description); err != nil {
			return err
		}
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return fmt.Errorf("price must not be negative: %w", domain.ErrValidation)
		}
		if err := s.Items.UpdatePrice(itemID, *upd.Price); err != nil {
			return err
		}
	}
	if upd.Quantity != nil {
		if *upd.Quantity < 0 {
			return fmt.Errorf("quantity must not be negative: %w", domain.ErrValidation)
		}
		if err := s.Items.UpdateQuantity(itemID, *upd.Quantity); err != nil {
			return err
		}
	}
	if upd.Category != "" {
		catID, err := s.categoryID(upd.Category)
		if err != nil {
			return err
		}
		if err := s.Items.UpdateCategory(itemID, catID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogService) Delete(sellerID int64, itemID string) error {
	it, err := s.Items.Get(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrForbidden
		}
		return err
	}
	if it.SellerID != sellerID {
		return domain.ErrForbidden
	}
	return s.Items.Delete(itemID)
}
