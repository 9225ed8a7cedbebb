package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency 商品默认币种
const DefaultCurrency = "CNY"

// Goods 商品信息
type Goods struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
