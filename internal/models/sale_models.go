package models

import "time"

// Sale is a single point-of-sale transaction line. ProductID is the stable
// reference (nullable, survives product deletion); ProductName and Category
// are the display snapshot frozen at sale time so history stays readable.
type Sale struct {
	ID          int64     `json:"id" db:"id"`
	Date        string    `json:"date" db:"sale_date"` // calendar day, YYYY-MM-DD
	ProductID   *int64    `json:"productId,omitempty" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	Category    string    `json:"category" db:"category"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unitPrice" db:"unit_price"`
	TotalPrice  float64   `json:"totalPrice" db:"total_price"`
	StoreID     string    `json:"storeId" db:"store_id"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"timestamp" db:"created_at"`
}
