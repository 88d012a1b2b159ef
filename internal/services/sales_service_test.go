package services

import (
	"errors"
	"testing"

	"quincaillerie_backend/internal/models"
)

func newTestSalesService() (SalesService, *fakeSaleRepo, *fakeProductRepo, *fakeDatabase) {
	saleRepo := newFakeSaleRepo()
	productRepo := newFakeProductRepo()
	db := &fakeDatabase{}
	return NewSalesService(saleRepo, productRepo, db, "main"), saleRepo, productRepo, db
}

func TestRecordSaleDecrementsStockAndComputesTotal(t *testing.T) {
	svc, saleRepo, productRepo, db := newTestSalesService()
	seedProduct(t, productRepo, models.Product{Name: "Marteau", Category: "Outils", Stock: 50, MinStock: 5, StoreID: "main"})

	sale, err := svc.RecordSale(RecordSaleRequest{
		Date:        "2026-08-28",
		ProductName: "Marteau",
		Quantity:    2,
		UnitPrice:   40,
		StoreID:     "main",
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if sale.TotalPrice != 80 {
		t.Fatalf("totalPrice = %v, want 80", sale.TotalPrice)
	}
	if sale.Category != "Outils" {
		t.Fatalf("category snapshot = %q, want Outils", sale.Category)
	}
	if sale.ProductID == nil {
		t.Fatalf("sale should reference the existing product")
	}
	if got := productRepo.get("Marteau", "main").Stock; got != 48 {
		t.Fatalf("stock after sale = %d, want 48", got)
	}
	stored := saleRepo.get(sale.ID)
	if stored == nil || stored.ProductID == nil || *stored.ProductID != *sale.ProductID {
		t.Fatalf("stored sale does not carry the product reference: %+v", stored)
	}
	if tx := db.lastTx(); tx == nil || !tx.committed {
		t.Fatalf("sale was not committed in a transaction")
	}
}

func TestRecordSaleExplicitTotalWins(t *testing.T) {
	svc, _, productRepo, _ := newTestSalesService()
	seedProduct(t, productRepo, models.Product{Name: "Pinceau", Category: "Peinture", Stock: 10, MinStock: 2, StoreID: "main"})

	total := 25.0
	sale, err := svc.RecordSale(RecordSaleRequest{
		Date:        "2026-08-28",
		ProductName: "Pinceau",
		Quantity:    3,
		UnitPrice:   10,
		TotalPrice:  &total,
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if sale.TotalPrice != 25 {
		t.Fatalf("totalPrice = %v, want explicit override 25", sale.TotalPrice)
	}
}

func TestRecordSaleAutoCreatesUnknownProduct(t *testing.T) {
	svc, saleRepo, productRepo, _ := newTestSalesService()

	sale, err := svc.RecordSale(RecordSaleRequest{
		Date:        "2026-08-28",
		ProductName: "Corde 10m",
		Quantity:    1,
		UnitPrice:   30,
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if sale.Category != UncategorizedLabel {
		t.Fatalf("category = %q, want %q", sale.Category, UncategorizedLabel)
	}
	if sale.ProductID == nil {
		t.Fatalf("sale should link to the auto-created placeholder")
	}

	p := productRepo.get("Corde 10m", "main")
	if p == nil {
		t.Fatalf("placeholder product was not created")
	}
	if p.Stock != 0 {
		t.Fatalf("placeholder stock = %d, want 0 (clamped)", p.Stock)
	}

	// The persisted row carries the reference too, not just the response.
	stored := saleRepo.get(sale.ID)
	if stored == nil {
		t.Fatalf("sale row was not persisted")
	}
	if stored.ProductID == nil || *stored.ProductID != p.ID {
		t.Fatalf("stored productId = %v, want %d", stored.ProductID, p.ID)
	}
}

func TestRecordSaleValidation(t *testing.T) {
	svc, _, _, _ := newTestSalesService()

	bad := []RecordSaleRequest{
		{Date: "2026-08-28", ProductName: "", Quantity: 1, UnitPrice: 5},
		{Date: "2026-08-28", ProductName: "X", Quantity: 0, UnitPrice: 5},
		{Date: "2026-08-28", ProductName: "X", Quantity: 1, UnitPrice: -5},
		{Date: "28/08/2026", ProductName: "X", Quantity: 1, UnitPrice: 5},
	}
	for i, req := range bad {
		if _, err := svc.RecordSale(req); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	svc, _, productRepo, db := newTestSalesService()
	seedProduct(t, productRepo, models.Product{Name: "Marteau", Category: "Outils", Stock: 50, MinStock: 5, StoreID: "main"})

	sale, err := svc.RecordSale(RecordSaleRequest{
		Date:        "2026-08-28",
		ProductName: "Marteau",
		Quantity:    5,
		UnitPrice:   40,
	})
	if err != nil {
		t.Fatalf("record sale failed: %v", err)
	}
	if got := productRepo.get("Marteau", "main").Stock; got != 45 {
		t.Fatalf("stock after sale = %d, want 45", got)
	}

	if err := svc.DeleteSale(sale.ID); err != nil {
		t.Fatalf("delete sale failed: %v", err)
	}
	if got := productRepo.get("Marteau", "main").Stock; got != 50 {
		t.Fatalf("stock after delete = %d, want restored 50", got)
	}
	if tx := db.lastTx(); tx == nil || !tx.committed {
		t.Fatalf("deletion was not committed in a transaction")
	}
}

func TestDeleteSaleNotFound(t *testing.T) {
	svc, _, _, _ := newTestSalesService()

	if err := svc.DeleteSale(404); !errors.Is(err, ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound, got %v", err)
	}
}

func TestListSalesFiltersByStore(t *testing.T) {
	svc, _, productRepo, _ := newTestSalesService()
	seedProduct(t, productRepo, models.Product{Name: "A", Stock: 10, MinStock: 1, StoreID: "main"})
	seedProduct(t, productRepo, models.Product{Name: "B", Stock: 10, MinStock: 1, StoreID: "depot"})

	mustRecord := func(name, storeID string) {
		t.Helper()
		if _, err := svc.RecordSale(RecordSaleRequest{Date: "2026-08-28", ProductName: name, Quantity: 1, UnitPrice: 10, StoreID: storeID}); err != nil {
			t.Fatalf("record sale for %s failed: %v", name, err)
		}
	}
	mustRecord("A", "main")
	mustRecord("B", "depot")

	all, err := svc.ListSales(nil)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all sales = %d, want 2", len(all))
	}

	depot := "depot"
	filtered, err := svc.ListSales(&depot)
	if err != nil {
		t.Fatalf("list filtered failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ProductName != "B" {
		t.Fatalf("filtered sales = %+v, want only B", filtered)
	}
}

func TestSalesByDayRejectsBadDate(t *testing.T) {
	svc, _, _, _ := newTestSalesService()

	if _, err := svc.SalesByDay("hier", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
