package repos

import (
	"marketplace/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Begin opens the transaction an order submission runs inside.
func (r *OrderRepo) Begin() (*sqlx.Tx, error) { return r.db.Beginx() }

func (r *OrderRepo) CreateIn(e sqlx.Execer, orderID, email, timeOfPurchase string) error {
	_, err := e.Exec(`
		INSERT INTO orders(order_id, purchased_by, time_of_purchase, amount_total)
		VALUES(?, ?, ?, 0)
	`, orderID, email, timeOfPurchase)
	return err
}

// InsertLineIn writes one order line. The service merges duplicate request
// lines before calling this, so (order_id, item_id) is unique per order.
func (r *OrderRepo) InsertLineIn(e sqlx.Execer, orderID, itemID string, quantity int, total decimal.Decimal) error {
	_, err := e.Exec(`
		INSERT INTO order_items(order_id, item_id, quantity, total)
		VALUES(?, ?, ?, ?)
	`, orderID, itemID, quantity, total)
	return err
}

// SetTotalIn writes the header total. The caller sums the line totals with
// exact decimal arithmetic; an in-SQL SUM() would go through float64.
func (r *OrderRepo) SetTotalIn(e sqlx.Execer, orderID string, amount decimal.Decimal) error {
	_, err := e.Exec(`
		UPDATE orders SET amount_total = ? WHERE order_id = ?
	`, amount, orderID)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderLine, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT order_id, purchased_by, time_of_purchase, amount_total
		FROM orders WHERE order_id=? LIMIT 1
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	lines := []domain.OrderLine{}
	if err := r.db.Select(&lines, `
		SELECT order_id, item_id, quantity, total
		FROM order_items WHERE order_id=?
		ORDER BY item_id
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	return o, lines, nil
}
