package services

import (
	"fmt"
	"time"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
)

const defaultTopProductsLimit = 10

// --- ReportService Interface ---

// ReportService is the read-only aggregation layer: day-grouped summaries,
// category totals, rankings. It never mutates state.
type ReportService interface {
	DailySummaries(storeID *string) ([]models.DailySalesSummary, error)
	DailySummariesByRange(startDate, endDate string, storeID *string) ([]models.DailySalesSummary, error)
	SalesByCategory(storeID *string) ([]models.CategorySales, error)
	TopProducts(limit int, storeID *string) ([]models.TopProduct, error)
	Stats(storeID *string) (*models.SalesStats, error)
	MonthlySales(year, month int, storeID *string) ([]models.MonthlySalesPoint, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: repo}
}

func (s *reportService) DailySummaries(storeID *string) ([]models.DailySalesSummary, error) {
	summaries, err := s.reportRepo.DailySummaries(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily summaries: %w", err)
	}
	return summaries, nil
}

func (s *reportService) DailySummariesByRange(startDate, endDate string, storeID *string) ([]models.DailySalesSummary, error) {
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(saleDateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: date invalide '%s', format attendu AAAA-MM-JJ", ErrValidation, d)
		}
	}
	summaries, err := s.reportRepo.DailySummariesByRange(startDate, endDate, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily summaries by range: %w", err)
	}
	return summaries, nil
}

func (s *reportService) SalesByCategory(storeID *string) ([]models.CategorySales, error) {
	results, err := s.reportRepo.SalesByCategory(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by category: %w", err)
	}
	return results, nil
}

func (s *reportService) TopProducts(limit int, storeID *string) ([]models.TopProduct, error) {
	if limit <= 0 {
		limit = defaultTopProductsLimit
	}
	results, err := s.reportRepo.TopProducts(limit, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	return results, nil
}

func (s *reportService) Stats(storeID *string) (*models.SalesStats, error) {
	stats, err := s.reportRepo.Stats(storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales stats: %w", err)
	}
	return stats, nil
}

func (s *reportService) MonthlySales(year, month int, storeID *string) ([]models.MonthlySalesPoint, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: année ou mois invalide", ErrValidation)
	}
	results, err := s.reportRepo.MonthlySales(year, month, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly sales: %w", err)
	}
	return results, nil
}
