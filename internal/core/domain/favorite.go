package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FavoriteProduct is a consumer's favorite joined with product info.
type FavoriteProduct struct {
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	TalukID    int64           `json:"taluk_id"`
	TalukName  string          `json:"taluk_name"`
	ProducerID int64           `json:"producer_id"`
	AddedAt    time.Time       `json:"added_at"`
}

// ProducerFavorite tells a producer which consumer favorited which of their
// products.
type ProducerFavorite struct {
	ConsumerID    int64     `json:"consumer_id"`
	ConsumerName  string    `json:"consumer_name"`
	ConsumerEmail string    `json:"consumer_email"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name"`
	AddedAt       time.Time `json:"added_at"`
}
