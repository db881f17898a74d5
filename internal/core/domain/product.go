package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64           `json:"product_id"`
	ProducerID   int64           `json:"producer_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   int64           `json:"category_id"`
	ExpiryTypeID int64           `json:"expiry_type_id"`
	TalukID      int64           `json:"taluk_id"`
	CreatedAt    time.Time       `json:"created_at,omitzero"`
}

// ProductView is a product row joined with its lookup names, plus the
// requesting consumer's favorite flag and in-cart quantity.
type ProductView struct {
	Product
	CategoryName   string `json:"category_name"`
	ExpiryName     string `json:"expiry_name"`
	TalukName      string `json:"taluk_name"`
	ProducerName   string `json:"producer_name,omitempty"`
	ProducerEmail  string `json:"producer_email,omitempty"`
	IsFavorite     bool   `json:"is_favorite"`
	InCartQuantity int    `json:"in_cart_quantity"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int             `json:"quantity"`
	CategoryID   *int64           `json:"category_id"`
	ExpiryTypeID *int64           `json:"expiry_type_id"`
	TalukID      *int64           `json:"taluk_id"`
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Quantity == nil && u.CategoryID == nil && u.ExpiryTypeID == nil && u.TalukID == nil
}

type ProducerContact struct {
	ProducerID    int64  `json:"producer_id"`
	ProducerName  string `json:"producer_name"`
	ProducerEmail string `json:"producer_email"`
	TalukID       int64  `json:"taluk_id"`
	TalukName     string `json:"taluk_name"`
}

// Lookup is a generic (id, name) reference row: category, expiry type, taluk.
type Lookup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter is the resolved feed query. TalukID 0 means no regional
// scoping; zero-valued fields are not applied.
type ProductFilter struct {
	Query        string
	CategoryID   int64
	ExpiryTypeID int64
	TalukID      int64
	Sort         string
	Limit        int
	Offset       int
}
