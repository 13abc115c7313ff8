package domain

import "github.com/shopspring/decimal"

type Account struct {
	ID        int64  `db:"account_id" json:"-"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"hashed_password" json:"-"`
	FirstName string `db:"first_name" json:"first_name,omitempty"`
	LastName  string `db:"last_name" json:"last_name,omitempty"`
	CreatedOn string `db:"created_on" json:"created_on"`
}

type Category struct {
	ID   int64  `db:"category_id" json:"-"`
	Name string `db:"category_name" json:"name"`
}

// Item rows carry the seller username and category name joined in, matching
// what the item endpoints return.
type Item struct {
	ID          string          `db:"item_id" json:"item_id"`
	SellerID    int64           `db:"seller_id" json:"-"`
	Seller      string          `db:"seller" json:"seller"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Category    string          `db:"category" json:"category"`
	DateAdded   string          `db:"date_added" json:"date_added"`
}

// CartEntry is a cart row joined with item display data.
type CartEntry struct {
	ItemID     string          `db:"item_id" json:"item_id"`
	Name       string          `db:"name" json:"name"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Seller     string          `db:"seller" json:"seller"`
	Category   string          `db:"category" json:"category"`
	DatePlaced string          `db:"date_placed" json:"date_placed"`
}

type Order struct {
	ID             string          `db:"order_id" json:"order_id"`
	PurchasedBy    string          `db:"purchased_by" json:"purchased_by"`
	TimeOfPurchase string          `db:"time_of_purchase" json:"time_of_purchase"`
	AmountTotal    decimal.Decimal `db:"amount_total" json:"amount_total"`
}

// OrderLine keeps a non-owning item_id reference: the item may be deleted
// later without invalidating the historical order.
type OrderLine struct {
	OrderID  string          `db:"order_id" json:"-"`
	ItemID   string          `db:"item_id" json:"item_id"`
	Quantity int             `db:"quantity" json:"quantity"`
	Total    decimal.Decimal `db:"total" json:"total"`
}
