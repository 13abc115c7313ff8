package services

import (
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineRequest is one requested (item, quantity) pair of an order.
type LineRequest struct {
	ItemID   string
	Quantity int
}

type OrderService struct {
	Orders *repos.OrderRepo
	Items  *repos.ItemRepo
	Carts  *repos.CartRepo

	// ClearCartOnOrder removes ordered items from the buyer's cart after a
	// successful checkout, when the buyer is known.
	ClearCartOnOrder bool
}

func NewOrderService(orders *repos.OrderRepo, items *repos.ItemRepo, carts *repos.CartRepo) *OrderService {
	return &OrderService{Orders: orders, Items: items, Carts: carts}
}

// Submit turns the requested lines into a persisted order. The whole
// operation runs in one transaction: header, every line, every stock
// decrement and the final total commit together or not at all.
//
// Lines are processed strictly in submission order. Each line re-reads the
// item's stock inside the transaction, so two lines naming the same item
// compete for the remaining stock. A line fulfills min(stock, requested);
// zero stock yields a zero-quantity, zero-total line rather than aborting
// the order. An item id that no longer exists aborts everything.
func (s *OrderService) Submit(email string, lines []LineRequest) (string, error) {
	if email == "" || len(lines) == 0 {
		return "", domain.ErrValidation
	}
	for _, ln := range lines {
		if ln.Quantity < 1 || ln.ItemID == "" {
			return "", domain.ErrValidation
		}
	}

	tx, err := s.Orders.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	orderID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.Orders.CreateIn(tx, orderID, email, now); err != nil {
		return "", err
	}

	// Duplicate request lines merge into one stored row per item. Each still
	// competes for stock on its own, and every sum stays in decimal: sqlite
	// would add the totals as floats.
	type mergedLine struct {
		quantity int
		total    decimal.Decimal
	}
	merged := map[string]*mergedLine{}
	itemOrder := []string{}
	for _, ln := range lines {
		price, stock, err := s.Items.PriceAndStockIn(tx, ln.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", domain.ErrNotFound
			}
			return "", err
		}
		fulfilled := min(stock, ln.Quantity)
		if fulfilled > 0 {
			if err := s.Items.DecrementStockIn(tx, ln.ItemID, fulfilled); err != nil {
				return "", err
			}
		}
		m, ok := merged[ln.ItemID]
		if !ok {
			m = &mergedLine{}
			merged[ln.ItemID] = m
			itemOrder = append(itemOrder, ln.ItemID)
		}
		m.quantity += fulfilled
		m.total = m.total.Add(price.Mul(decimal.NewFromInt(int64(fulfilled))))
	}

	amountTotal := decimal.Zero
	for _, itemID := range itemOrder {
		m := merged[itemID]
		if err := s.Orders.InsertLineIn(tx, orderID, itemID, m.quantity, m.total); err != nil {
			return "", err
		}
		amountTotal = amountTotal.Add(m.total)
	}

	if err := s.Orders.SetTotalIn(tx, orderID, amountTotal); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return orderID, nil
}

// ClearPurchased applies the checkout cart-clearing policy for a known
// buyer. Runs after commit, so a failure here cannot undo the order.
func (s *OrderService) ClearPurchased(accountID int64, lines []LineRequest) error {
	if !s.ClearCartOnOrder || accountID == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ItemID)
	}
	return s.Carts.RemoveItems(accountID, ids)
}

func (s *OrderService) Get(orderID string) (domain.Order, []domain.OrderLine, error) {
	o, ls, err := s.Orders.Get(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, nil, domain.ErrNotFound
		}
		return domain.Order{}, nil, err
	}
	return o, ls, nil
}
