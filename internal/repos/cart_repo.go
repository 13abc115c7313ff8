package repos

import (
	"marketplace/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// IDByOwner resolves an account's cart. Carts are created with the account,
// so sql.ErrNoRows here means the account itself is gone.
func (r *CartRepo) IDByOwner(accountID int64) (int64, error) {
	var cartID int64
	err := r.db.Get(&cartID, `SELECT cart_id FROM carts WHERE cart_owner=? LIMIT 1`, accountID)
	return cartID, err
}

func (r *CartRepo) Entries(accountID int64) ([]domain.CartEntry, error) {
	out := []domain.CartEntry{}
	err := r.db.Select(&out, `
	  SELECT
	    i.item_id,
	    i.item_name                  AS name,
	    i.price,
	    ci.quantity,
	    COALESCE(a.username,'')      AS seller,
	    COALESCE(c.category_name,'') AS category,
	    ci.date_placed
	  FROM carts ct
	  JOIN cart_items ci     ON ci.cart = ct.cart_id
	  JOIN items i           ON i.item_id = ci.item
	  LEFT JOIN accounts a   ON i.seller = a.account_id
	  LEFT JOIN categories c ON i.category = c.category_id
	  WHERE ct.cart_owner = ?
	  ORDER BY ci.date_placed ASC, ci.rowid ASC
	`, accountID)
	return out, err
}

// Upsert sets the entry's quantity. Re-adding an item replaces the stored
// quantity rather than accumulating; date_placed keeps its original value so
// the cart ordering is stable.
func (r *CartRepo) Upsert(cartID int64, itemID string, quantity int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart, item, quantity, date_placed)
		VALUES(?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(cart, item) DO UPDATE SET quantity = excluded.quantity
	`, cartID, itemID, quantity)
	return err
}

func (r *CartRepo) EntryQuantity(cartID int64, itemID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		SELECT quantity FROM cart_items WHERE cart=? AND item=? LIMIT 1
	`, cartID, itemID)
	return qty, err
}

func (r *CartRepo) SetQuantity(cartID int64, itemID string, quantity int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET quantity=? WHERE cart=? AND item=?
	`, quantity, cartID, itemID)
	return err
}

func (r *CartRepo) Remove(cartID int64, itemID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart=? AND item=?`, cartID, itemID)
	return err
}

// RemoveItems drops the given items from an account's cart; used by the
// clear-cart-on-checkout policy.
func (r *CartRepo) RemoveItems(accountID int64, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`
		DELETE FROM cart_items
		WHERE cart IN (SELECT cart_id FROM carts WHERE cart_owner=?)
		AND item IN (?)
	`, accountID, itemIDs)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(query, args...)
	return err
}

func (r *CartRepo) Clear(cartID int64) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart=?`, cartID)
	return err
}
