package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64           `json:"order_id"`
	ConsumerID  int64           `json:"consumer_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// OrderItem is an immutable snapshot of one purchased line. UnitPrice is the
// product price at checkout time, not the current one.
type OrderItem struct {
	ID          int64           `json:"order_item_id"`
	OrderID     int64           `json:"order_id,omitempty"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ProductName string          `json:"product_name,omitempty"`
	ProducerID  int64           `json:"producer_id,omitempty"`
}

// Receipt is what a successful checkout returns.
type Receipt struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ProducerOrder is an order as seen from the producer side: order-level info
// plus the buying consumer's contact details.
type ProducerOrder struct {
	Order
	ConsumerName  string `json:"consumer_name"`
	ConsumerEmail string `json:"consumer_email"`
}

type DashboardStats struct {
	ProductCount  int `json:"product_count"`
	OrdersCount   int `json:"orders_count"`
	FavoriteCount int `json:"fav_count"`
}
