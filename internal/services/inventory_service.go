package services

import (
	"errors"
	"fmt"
	"strings"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
)

// --- Custom Service Errors for Inventory ---
var (
	ErrValidation      = errors.New("validation error")
	ErrProductNotFound = errors.New("product not found")
	ErrBarcodeConflict = errors.New("barcode already in use")
	ErrStoreMissing    = errors.New("store does not exist")
)

// Default labels, in the shop's UI language.
const (
	DefaultCategory    = "Autres"
	UncategorizedLabel = "Non catégorisé"
	DefaultMinStock    = 5
)

// --- DTOs ---

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Barcode      *string `json:"barcode"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Stock        int     `json:"stock"`
	MinStock     *int    `json:"minStock"`
	StoreID      string  `json:"storeId"`
}

type AdjustStockRequest struct {
	ProductName    string `json:"productName" binding:"required"`
	QuantityChange int    `json:"quantityChange"`
	StoreID        string `json:"storeId"`
}

// StockAdjustment reports the outcome of a stock delta. Created is true when
// the ledger auto-created a placeholder product for a name it had never seen.
type StockAdjustment struct {
	ProductName string `json:"productName"`
	StoreID     string `json:"storeId"`
	Stock       int    `json:"stock"`
	Created     bool   `json:"created"`
}

// --- InventoryService Interface ---

// InventoryService is the authoritative stock ledger: one stock count per
// (productName, storeId) pair, clamped at zero, with low-stock classification.
type InventoryService interface {
	AddProduct(req CreateProductRequest) (*models.Product, error)
	AdjustStock(req AdjustStockRequest) (*StockAdjustment, error)
	GetInventory(storeID string) ([]models.Product, error)
	GetByCategory(category, storeID string) ([]models.Product, error)
	GetLowStock(storeID string) ([]models.Product, error)
	FindByBarcode(barcode string) (*models.Product, error)
	UpdateProduct(id int64, storeID string, updates models.ProductUpdate) (int64, error)
	DeleteProduct(id int64, storeID string) (int64, error)
}

type inventoryService struct {
	productRepo repositories.ProductRepository
	db          repositories.Database
	mainStoreID string
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(repo repositories.ProductRepository, db repositories.Database, mainStoreID string) InventoryService {
	return &inventoryService{
		productRepo: repo,
		db:          db,
		mainStoreID: mainStoreID,
	}
}

func (s *inventoryService) AddProduct(req CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: le nom du produit est requis", ErrValidation)
	}
	if req.CostPrice < 0 || req.SellingPrice < 0 {
		return nil, fmt.Errorf("%w: les prix ne peuvent pas être négatifs", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: le stock ne peut pas être négatif", ErrValidation)
	}
	if req.MinStock != nil && *req.MinStock < 0 {
		return nil, fmt.Errorf("%w: le stock minimum ne peut pas être négatif", ErrValidation)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}
	minStock := DefaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	storeID := req.StoreID
	if storeID == "" {
		storeID = s.mainStoreID
	}

	product := &models.Product{
		Name:         req.Name,
		Category:     category,
		Barcode:      req.Barcode,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
		MinStock:     minStock,
		StoreID:      storeID,
	}
	if _, err := s.productRepo.Create(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrBarcodeConflict, err.Error())
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, fmt.Errorf("%w: %s", ErrStoreMissing, storeID)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *inventoryService) AdjustStock(req AdjustStockRequest) (*StockAdjustment, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, fmt.Errorf("%w: le nom du produit est requis", ErrValidation)
	}
	storeID := req.StoreID
	if storeID == "" {
		storeID = s.mainStoreID
	}

	stock, created, err := applyStockDelta(s.db, s.productRepo, req.ProductName, storeID, req.QuantityChange)
	if err != nil {
		return nil, err
	}
	return &StockAdjustment{
		ProductName: req.ProductName,
		StoreID:     storeID,
		Stock:       stock,
		Created:     created,
	}, nil
}

func (s *inventoryService) GetInventory(storeID string) ([]models.Product, error) {
	if storeID == "" {
		storeID = s.mainStoreID
	}
	products, err := s.productRepo.GetByStore(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return products, nil
}

func (s *inventoryService) GetByCategory(category, storeID string) ([]models.Product, error) {
	if storeID == "" {
		storeID = s.mainStoreID
	}
	products, err := s.productRepo.GetByCategory(category, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory by category: %w", err)
	}
	return products, nil
}

func (s *inventoryService) GetLowStock(storeID string) ([]models.Product, error) {
	if storeID == "" {
		storeID = s.mainStoreID
	}
	products, err := s.productRepo.GetLowStock(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}
	return products, nil
}

func (s *inventoryService) FindByBarcode(barcode string) (*models.Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, fmt.Errorf("%w: le code-barres est requis", ErrValidation)
	}
	product, err := s.productRepo.FindByBarcode(barcode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Absence is not an error for barcode lookups; scanners probe freely.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by barcode: %w", err)
	}
	return product, nil
}

func (s *inventoryService) UpdateProduct(id int64, storeID string, updates models.ProductUpdate) (int64, error) {
	if updates.Name != nil && strings.TrimSpace(*updates.Name) == "" {
		return 0, fmt.Errorf("%w: le nom du produit ne peut pas être vide", ErrValidation)
	}
	for _, v := range []*float64{updates.CostPrice, updates.SellingPrice} {
		if v != nil && *v < 0 {
			return 0, fmt.Errorf("%w: les prix ne peuvent pas être négatifs", ErrValidation)
		}
	}
	for _, v := range []*int{updates.Stock, updates.MinStock} {
		if v != nil && *v < 0 {
			return 0, fmt.Errorf("%w: les quantités ne peuvent pas être négatives", ErrValidation)
		}
	}
	if storeID == "" {
		storeID = s.mainStoreID
	}

	affected, err := s.productRepo.Update(s.db, id, storeID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return 0, fmt.Errorf("%w: %s", ErrBarcodeConflict, err.Error())
		}
		return 0, fmt.Errorf("failed to update product: %w", err)
	}
	// Updating a missing id is a no-op success with affected == 0, preserved
	// legacy behavior; callers see the count and can decide for themselves.
	return affected, nil
}

func (s *inventoryService) DeleteProduct(id int64, storeID string) (int64, error) {
	if storeID == "" {
		storeID = s.mainStoreID
	}
	affected, err := s.productRepo.Delete(s.db, id, storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	return affected, nil
}

// applyStockDelta applies a clamped stock delta against (name, storeID) and
// auto-creates a placeholder product when none exists yet. The permissive
// auto-create keeps sales from failing just because inventory was never
// pre-populated. Shared by the ledger and the sales recorder, which runs it
// inside its own transaction.
func applyStockDelta(executor repositories.SQLExecutor, repo repositories.ProductRepository, name, storeID string, delta int) (int, bool, error) {
	stock, found, err := repo.AdjustStock(executor, name, storeID, delta)
	if err != nil {
		return 0, false, fmt.Errorf("failed to adjust stock: %w", err)
	}
	if found {
		return stock, false, nil
	}

	clamped := delta
	if clamped < 0 {
		clamped = 0
	}
	placeholder := &models.Product{
		Name:     name,
		Category: UncategorizedLabel,
		Stock:    clamped,
		MinStock: DefaultMinStock,
		StoreID:  storeID,
	}
	if _, err := repo.Create(executor, placeholder); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// A concurrent writer inserted the same (name, store) row
			// between the adjust and the create; adjust again against
			// the now-existing row.
			stock, found, err := repo.AdjustStock(executor, name, storeID, delta)
			if err != nil {
				return 0, false, fmt.Errorf("failed to adjust stock: %w", err)
			}
			if found {
				return stock, false, nil
			}
			return 0, false, fmt.Errorf("failed to auto-create product '%s': %w", name, repositories.ErrDuplicateKey)
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return 0, false, fmt.Errorf("%w: %s", ErrStoreMissing, storeID)
		}
		return 0, false, fmt.Errorf("failed to auto-create product '%s': %w", name, err)
	}
	return placeholder.Stock, true, nil
}
