package repos

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// OpenDB opens the sqlite database, bootstraps the schema and seeds the
// fixed category set. The pool is capped at one connection: sqlite has a
// single writer, and queueing at the pool beats SQLITE_BUSY at the driver.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedCategories(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS accounts(
  account_id      INTEGER PRIMARY KEY AUTOINCREMENT,
  username        TEXT NOT NULL UNIQUE,
  email           TEXT NOT NULL UNIQUE,
  hashed_password TEXT NOT NULL,
  first_name      TEXT,
  last_name       TEXT,
  created_on      TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_username ON accounts(LOWER(username));
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email    ON accounts(LOWER(email));

CREATE TABLE IF NOT EXISTS categories(
  category_id   INTEGER PRIMARY KEY AUTOINCREMENT,
  category_name TEXT NOT NULL UNIQUE
);

-- Money columns are TEXT: NUMERIC affinity would coerce the decimal
-- strings to floats and lose exactness.
CREATE TABLE IF NOT EXISTS items(
  item_id          TEXT PRIMARY KEY,
  seller           INTEGER NOT NULL REFERENCES accounts(account_id),
  item_name        TEXT NOT NULL,
  item_description TEXT NOT NULL,
  price            TEXT NOT NULL CHECK (CAST(price AS REAL) >= 0),
  quantity         INTEGER NOT NULL CHECK (quantity >= 0),
  category         INTEGER NOT NULL REFERENCES categories(category_id),
  date_added       TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_items_seller   ON items(seller);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_items_price    ON items(CAST(price AS REAL));

CREATE TABLE IF NOT EXISTS carts(
  cart_id    INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_owner INTEGER NOT NULL UNIQUE REFERENCES accounts(account_id)
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart        INTEGER NOT NULL REFERENCES carts(cart_id) ON DELETE CASCADE,
  item        TEXT NOT NULL REFERENCES items(item_id) ON DELETE CASCADE,
  quantity    INTEGER NOT NULL CHECK (quantity >= 1),
  date_placed TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (cart, item)
);

CREATE TABLE IF NOT EXISTS orders(
  order_id         TEXT PRIMARY KEY,
  purchased_by     TEXT NOT NULL,
  time_of_purchase TEXT NOT NULL,
  amount_total     TEXT NOT NULL DEFAULT '0'
);

-- order_items.item_id deliberately carries no foreign key: historical order
-- lines outlive the items they reference.
CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
  item_id  TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  total    TEXT NOT NULL CHECK (CAST(total AS REAL) >= 0),
  PRIMARY KEY (order_id, item_id)
);
`
	_, err := db.Exec(schema)
	return err
}

// The category set is fixed; sellers pick from it by name.
var categoryNames = []string{
	"books", "clothing", "toys", "games", "accessories", "decorations", "office",
}

// UniqueViolation returns the column named by a unique-constraint failure,
// or "" when err is anything else. The duplicate pre-checks in the services
// race with concurrent inserts; the unique indexes are the real guard, and
// this lets that path surface as a field error instead of a 500.
func UniqueViolation(err error) string {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return ""
	}
	const marker = "UNIQUE constraint failed: "
	msg := se.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(strings.Split(msg[i+len(marker):], ",")[0])
	// Expression indexes report as "index 'idx_accounts_username'",
	// column constraints as "accounts.username (2067)".
	if name, ok := strings.CutPrefix(rest, "index '"); ok {
		name = strings.SplitN(name, "'", 2)[0]
		if j := strings.LastIndexByte(name, '_'); j >= 0 {
			return name[j+1:]
		}
		return name
	}
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.IndexByte(rest, '.'); j >= 0 {
		rest = rest[j+1:]
	}
	return rest
}

func seedCategories(db *sqlx.DB) error {
	for _, name := range categoryNames {
		if _, err := db.Exec(`
			INSERT INTO categories(category_name) VALUES(?)
			ON CONFLICT(category_name) DO NOTHING
		`, name); err != nil {
			return err
		}
	}
	return nil
}
