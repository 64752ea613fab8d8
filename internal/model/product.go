package model

import "github.com/shopspring/decimal"

// ProductColumns is the projection used whenever products are loaded
// alongside a category or tag.
var ProductColumns = []string{"id", "product_name", "price", "stock", "category_id"}

// Product is owned by another service. The catalog only reads it.
type Product struct {
	ID          int             `json:"id" gorm:"primaryKey"`
	ProductName string          `json:"product_name" gorm:"column:product_name;size:255;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:10"`
	CategoryID  *int            `json:"category_id"`
}

func (Product) TableName() string { return "products" }
