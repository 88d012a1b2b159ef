package services

import (
	"fmt"
	"io"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"

	"github.com/gocarina/gocsv"
)

// --- ExportService Interface ---

// ExportService writes sales and inventory snapshots as CSV for the
// dashboard's download buttons and spreadsheet imports.
type ExportService interface {
	WriteSalesCSV(w io.Writer, storeID *string) error
	WriteInventoryCSV(w io.Writer, storeID string) error
}

type exportService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	mainStoreID string
}

// NewExportService creates a new instance of ExportService.
func NewExportService(sr repositories.SaleRepository, pr repositories.ProductRepository, mainStoreID string) ExportService {
	return &exportService{
		saleRepo:    sr,
		productRepo: pr,
		mainStoreID: mainStoreID,
	}
}

func (s *exportService) WriteSalesCSV(w io.Writer, storeID *string) error {
	sales, err := s.saleRepo.List(storeID)
	if err != nil {
		return fmt.Errorf("failed to load sales for export: %w", err)
	}

	rows := make([]models.SaleExportRow, 0, len(sales))
	for _, sale := range sales {
		row := models.SaleExportRow{
			ID:          sale.ID,
			Date:        sale.Date,
			ProductName: sale.ProductName,
			Category:    sale.Category,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
			TotalPrice:  sale.TotalPrice,
			StoreID:     sale.StoreID,
		}
		if sale.Notes != nil {
			row.Notes = *sale.Notes
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write sales CSV: %w", err)
	}
	return nil
}

func (s *exportService) WriteInventoryCSV(w io.Writer, storeID string) error {
	if storeID == "" {
		storeID = s.mainStoreID
	}
	products, err := s.productRepo.GetByStore(storeID)
	if err != nil {
		return fmt.Errorf("failed to load inventory for export: %w", err)
	}

	rows := make([]models.ProductExportRow, 0, len(products))
	for _, p := range products {
		row := models.ProductExportRow{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			CostPrice:    p.CostPrice,
			SellingPrice: p.SellingPrice,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			StoreID:      p.StoreID,
		}
		if p.Barcode != nil {
			row.Barcode = *p.Barcode
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write inventory CSV: %w", err)
	}
	return nil
}
