package repos

import (
	"time"

	"marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `
  i.item_id,
  i.seller                       AS seller_id,
  COALESCE(a.username,'')        AS seller,
  i.item_name                    AS name,
  i.item_description             AS description,
  i.price,
  i.quantity,
  COALESCE(c.category_name,'')   AS category,
  i.date_added`

const itemJoins = `
  FROM items i
  LEFT JOIN accounts a   ON i.seller = a.account_id
  LEFT JOIN categories c ON i.category = c.category_id`

func (r *ItemRepo) Create(sellerID int64, name, description string, price decimal.Decimal, quantity int, categoryID int64) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO items(item_id, seller, item_name, item_description, price, quantity, category, date_added)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, id, sellerID, name, description, price, quantity, categoryID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `SELECT`+itemCols+itemJoins+`
		WHERE i.item_id = ? LIMIT 1`, id)
	return it, err
}

// List pages through the catalog. sort is "low", "high" or "relevent"
// (insertion order); category filters by name, "" means all.
func (r *ItemRepo) List(sort, category string, offset, limit int) ([]domain.Item, error) {
	where := `1=1`
	args := []any{}
	if category != "" {
		where = `c.category_name = ?`
		args = append(args, category)
	}
	order := ``
	switch sort {
	case "low":
		order = ` ORDER BY CAST(i.price AS REAL)`
	case "high":
		order = ` ORDER BY CAST(i.price AS REAL) DESC`
	}
	args = append(args, limit, offset)

	out := []domain.Item{}
	err := r.db.Select(&out, `SELECT`+itemCols+itemJoins+`
		WHERE `+where+order+`
		LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *ItemRepo) BySeller(sellerID int64) ([]domain.Item, error) {
	out := []domain.Item{}
	err := r.db.Select(&out, `SELECT`+itemCols+itemJoins+`
		WHERE i.seller = ?
		ORDER BY i.date_added DESC`, sellerID)
	return out, err
}

func (r *ItemRepo) UpdateName(id, name string) error {
	_, err := r.db.Exec(`UPDATE items SET item_name=? WHERE item_id=?`, name, id)
	return err
}

func (r *ItemRepo) UpdateDescription(id, description string) error {
	_, err := r.db.Exec(`UPDATE items SET item_description=? WHERE item_id=?`, description, id)
	return err
}

func (r *ItemRepo) UpdatePrice(id string, price decimal.Decimal) error {
	_, err := r.db.Exec(`UPDATE items SET price=? WHERE item_id=?`, price, id)
	return err
}

func (r *ItemRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.db.Exec(`UPDATE items SET quantity=? WHERE item_id=?`, quantity, id)
	return err
}

func (r *ItemRepo) UpdateCategory(id string, categoryID int64) error {
	_, err := r.db.Exec(`UPDATE items SET category=? WHERE item_id=?`, categoryID, id)
	return err
}

func (r *ItemRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM items WHERE item_id=?`, id)
	return err
}

// Stock reads the live quantity. sql.ErrNoRows means the item is gone.
func (r *ItemRepo) Stock(id string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT quantity FROM items WHERE item_id=?`, id)
	return qty, err
}

// PriceAndStockIn reads price and quantity inside a caller-supplied
// transaction, so earlier decrements in the same transaction are visible.
func (r *ItemRepo) PriceAndStockIn(q sqlx.Queryer, id string) (decimal.Decimal, int, error) {
	var row struct {
		Price    decimal.Decimal `db:"price"`
		Quantity int             `db:"quantity"`
	}
	err := sqlx.Get(q, &row, `SELECT price, quantity FROM items WHERE item_id=?`, id)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Price, row.Quantity, nil
}

// DecrementStockIn is the conditional decrement: it only fires when enough
// stock remains, so a stale read can never drive quantity below zero.
func (r *ItemRepo) DecrementStockIn(e sqlx.Execer, id string, by int) error {
	res, err := e.Exec(`
		UPDATE items SET quantity = quantity - ?
		WHERE item_id = ? AND quantity >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
