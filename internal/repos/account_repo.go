package repos

import (
	"marketplace/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ db *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts the account and its cart in one transaction; an account
// never exists without a cart.
func (r *AccountRepo) Create(username, hash, email string) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO accounts(username, email, hashed_password)
		VALUES(?, ?, ?)
	`, username, email, hash)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`INSERT INTO carts(cart_owner) VALUES(?)`, id); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

const accountCols = `
  account_id, username, email, hashed_password,
  COALESCE(first_name,'') AS first_name,
  COALESCE(last_name,'')  AS last_name,
  created_on`

func (r *AccountRepo) ByUsername(username string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT`+accountCols+`
		FROM accounts WHERE LOWER(username)=LOWER(?) LIMIT 1`, username)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT`+accountCols+`
		FROM accounts WHERE LOWER(email)=LOWER(?) LIMIT 1`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id int64) (*domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `SELECT`+accountCols+`
		FROM accounts WHERE account_id=? LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) UpdateFirstName(id int64, firstName string) error {
	_, err := r.db.Exec(`UPDATE accounts SET first_name=? WHERE account_id=?`, firstName, id)
	return err
}

func (r *AccountRepo) UpdateLastName(id int64, lastName string) error {
	_, err := r.db.Exec(`UPDATE accounts SET last_name=? WHERE account_id=?`, lastName, id)
	return err
}

func (r *AccountRepo) UpdateEmail(id int64, email string) error {
	_, err := r.db.Exec(`UPDATE accounts SET email=? WHERE account_id=?`, email, id)
	return err
}

func (r *AccountRepo) UpdatePassword(id int64, hash string) error {
	_, err := r.db.Exec(`UPDATE accounts SET hashed_password=? WHERE account_id=?`, hash, id)
	return err
}

// DeleteCascade removes an account and everything it owns, in referential
// order: cart entries, cart, listed items, account row. Items go through a
// plain DELETE so cart entries in other accounts' carts cascade with them;
// historical order lines are untouched.
func (r *AccountRepo) DeleteCascade(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		DELETE FROM cart_items
		WHERE cart IN (SELECT cart_id FROM carts WHERE cart_owner=?)
	`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM carts WHERE cart_owner=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM items WHERE seller=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM accounts WHERE account_id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
