package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
)

// --- Custom Service Errors for Sales ---
var (
	ErrSaleNotFound = errors.New("sale not found")
)

const saleDateLayout = "2006-01-02"

// --- DTOs ---

type RecordSaleRequest struct {
	Date        string   `json:"date" binding:"required"`
	ProductName string   `json:"productName" binding:"required"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	// Optional explicit override; wins over unitPrice*quantity so the
	// cashier can pass a discounted total.
	TotalPrice *float64 `json:"totalPrice"`
	StoreID    string   `json:"storeId"`
	Notes      *string  `json:"notes"`
}

// --- SalesService Interface ---

// SalesService records point-of-sale transactions and keeps the inventory
// ledger synchronized. Sale row and stock delta are committed in a single
// transaction, so a failed stock write never leaves an orphan sale behind.
type SalesService interface {
	RecordSale(req RecordSaleRequest) (*models.Sale, error)
	DeleteSale(id int64) error
	ListSales(storeID *string) ([]models.Sale, error)
	SalesByDay(date string, storeID *string) ([]models.Sale, error)
}

type salesService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	db          repositories.Database
	mainStoreID string
}

// NewSalesService creates a new instance of SalesService.
func NewSalesService(
	sr repositories.SaleRepository,
	pr repositories.ProductRepository,
	db repositories.Database,
	mainStoreID string,
) SalesService {
	return &salesService{
		saleRepo:    sr,
		productRepo: pr,
		db:          db,
		mainStoreID: mainStoreID,
	}
}

func (s *salesService) RecordSale(req RecordSaleRequest) (*models.Sale, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, fmt.Errorf("%w: le nom du produit est requis", ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: la quantité doit être au moins 1", ErrValidation)
	}
	if req.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: le prix unitaire ne peut pas être négatif", ErrValidation)
	}
	if _, err := time.Parse(saleDateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date invalide '%s', format attendu AAAA-MM-JJ", ErrValidation, req.Date)
	}

	storeID := req.StoreID
	if storeID == "" {
		storeID = s.mainStoreID
	}
	totalPrice := req.UnitPrice * float64(req.Quantity)
	if req.TotalPrice != nil {
		totalPrice = *req.TotalPrice
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	sale := &models.Sale{
		Date:        req.Date,
		ProductName: req.ProductName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  totalPrice,
		StoreID:     storeID,
		Notes:       req.Notes,
	}

	// The stock delta runs first so a name the ledger has never seen gets
	// its placeholder row before the sale is inserted; the stored row then
	// carries the product reference instead of a NULL.
	if _, _, err := applyStockDelta(tx, s.productRepo, req.ProductName, storeID, -req.Quantity); err != nil {
		return nil, fmt.Errorf("failed to decrement stock for '%s': %w", req.ProductName, err)
	}

	// Freeze the product reference and category snapshot at sale time.
	product, err := s.productRepo.GetByNameAndStore(tx, req.ProductName, storeID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve product for sale: %w", err)
	}
	if product != nil {
		sale.ProductID = &product.ID
		if sale.Category == "" {
			sale.Category = product.Category
		}
	}
	if sale.Category == "" {
		sale.Category = UncategorizedLabel
	}

	if _, err := s.saleRepo.Create(tx, sale); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: %s", ErrStoreMissing, storeID)
		}
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	return sale, nil
}

func (s *salesService) DeleteSale(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	sale, err := s.saleRepo.GetByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to fetch sale for deletion: %w", err)
	}

	if err := s.saleRepo.Delete(tx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	// Restore the quantity the sale had removed, symmetric with creation.
	// The clamp rule still applies if intervening adjustments moved the stock.
	if _, _, err := applyStockDelta(tx, s.productRepo, sale.ProductName, sale.StoreID, sale.Quantity); err != nil {
		return fmt.Errorf("failed to restore stock for '%s': %w", sale.ProductName, err)
	}

	return tx.Commit()
}

func (s *salesService) ListSales(storeID *string) ([]models.Sale, error) {
	sales, err := s.saleRepo.List(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (s *salesService) SalesByDay(date string, storeID *string) ([]models.Sale, error) {
	if _, err := time.Parse(saleDateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date invalide '%s', format attendu AAAA-MM-JJ", ErrValidation, date)
	}
	sales, err := s.saleRepo.ItemsByDay(date, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales for day %s: %w", date, err)
	}
	return sales, nil
}
