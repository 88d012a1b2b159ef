package models

// CSV row shapes for the export endpoints. Column names match what the
// dashboard's spreadsheet imports expect.

type SaleExportRow struct {
	ID          int64   `csv:"id"`
	Date        string  `csv:"date"`
	ProductName string  `csv:"produit"`
	Category    string  `csv:"categorie"`
	Quantity    int     `csv:"quantite"`
	UnitPrice   float64 `csv:"prix_unitaire"`
	TotalPrice  float64 `csv:"prix_total"`
	StoreID     string  `csv:"magasin"`
	Notes       string  `csv:"notes"`
}

type ProductExportRow struct {
	ID           int64   `csv:"id"`
	Name         string  `csv:"nom"`
	Category     string  `csv:"categorie"`
	Barcode      string  `csv:"code_barres"`
	CostPrice    float64 `csv:"prix_achat"`
	SellingPrice float64 `csv:"prix_vente"`
	Stock        int     `csv:"stock"`
	MinStock     int     `csv:"stock_min"`
	StoreID      string  `csv:"magasin"`
}
