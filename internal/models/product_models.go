package models

import "time"

// Product is an inventory line for one store. Category is a free-text label
// (the UI lets users type anything), not a foreign key into categories.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Category     string    `json:"category" db:"category"`
	Barcode      *string   `json:"barcode,omitempty" db:"barcode"`
	CostPrice    float64   `json:"costPrice" db:"cost_price"`
	SellingPrice float64   `json:"sellingPrice" db:"selling_price"`
	Stock        int       `json:"stock" db:"stock"`
	MinStock     int       `json:"minStock" db:"min_stock"`
	StoreID      string    `json:"storeId" db:"store_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"lastUpdated" db:"updated_at"`
}

// IsLowStock reports whether the product has reached its restock threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// ProductUpdate carries a sparse set of mutable product fields.
// Nil means "leave untouched".
type ProductUpdate struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Barcode      *string  `json:"barcode"`
	CostPrice    *float64 `json:"costPrice"`
	SellingPrice *float64 `json:"sellingPrice"`
	Stock        *int     `json:"stock"`
	MinStock     *int     `json:"minStock"`
}
