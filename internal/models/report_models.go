package models

// DailySalesSummary groups sale rows under one record per calendar day per
// store, the granularity all reporting uses.
type DailySalesSummary struct {
	Date        string  `json:"date"`
	StoreID     string  `json:"storeId"`
	StoreName   *string `json:"storeName,omitempty"`
	ItemCount   int     `json:"itemCount"`
	TotalAmount float64 `json:"totalAmount"`
}

// CategorySales aggregates sales per category label.
type CategorySales struct {
	Category      string  `json:"category"`
	SalesCount    int     `json:"salesCount"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalAmount   float64 `json:"totalAmount"`
}

// TopProduct ranks a product by total quantity sold.
type TopProduct struct {
	ProductName   string  `json:"productName"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	SaleCount     int     `json:"saleCount"`
}

// SalesStats holds aggregate totals across the whole sales history.
type SalesStats struct {
	TotalDays         int     `json:"totalDays"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalItemsSold    int     `json:"totalItemsSold"`
	TotalTransactions int     `json:"totalTransactions"`
}

// MonthlySalesPoint is one day of a monthly breakdown.
type MonthlySalesPoint struct {
	Date       string  `json:"date"`
	DailyTotal float64 `json:"dailyTotal"`
	DailyCount int     `json:"dailyCount"`
}

// StoreComparison pairs a store with its aggregated sales metrics. Stores
// with no sales still appear, with zeroed metrics.
type StoreComparison struct {
	Store
	Revenue        float64 `json:"revenue"`
	Transactions   int     `json:"transactions"`
	TotalItemsSold int     `json:"totalItemsSold"`
	AvgTransaction float64 `json:"avgTransaction"`
}
