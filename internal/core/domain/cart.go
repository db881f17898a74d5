package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         int64     `json:"cart_id"`
	ConsumerID int64     `json:"consumer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// CartItem is the bare line returned by add/update operations.
type CartItem struct {
	ID        int64 `json:"cart_item_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartLine is a cart item joined with its product's current name, price and
// stock. ProductStock is advisory outside the checkout transaction.
type CartLine struct {
	CartItemID   int64           `json:"cart_item_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	ProductName  string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ProductStock int             `json:"product_stock"`
	ProducerID   int64           `json:"producer_id"`
	TalukName    string          `json:"taluk_name"`
}
