package repositories

import (
	"database/sql"
	"fmt"

	"quincaillerie_backend/internal/models"
)

// ReportRepository holds the read-only aggregation queries. Everything here
// re-queries the database on each call; nothing is cached in-process.
type ReportRepository interface {
	DailySummaries(storeID *string) ([]models.DailySalesSummary, error)
	DailySummariesByRange(startDate, endDate string, storeID *string) ([]models.DailySalesSummary, error)
	SalesByCategory(storeID *string) ([]models.CategorySales, error)
	TopProducts(limit int, storeID *string) ([]models.TopProduct, error)
	Stats(storeID *string) (*models.SalesStats, error)
	MonthlySales(year, month int, storeID *string) ([]models.MonthlySalesPoint, error)
	StoreComparison() ([]models.StoreComparison, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) queryDailySummaries(query string, args ...interface{}) ([]models.DailySalesSummary, error) {
	summaries := []models.DailySalesSummary{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying daily summaries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DailySalesSummary
		if err := rows.Scan(&d.Date, &d.StoreID, &d.StoreName, &d.ItemCount, &d.TotalAmount); err != nil {
			return nil, fmt.Errorf("%w: scanning daily summary: %v", ErrDatabaseError, err)
		}
		summaries = append(summaries, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating daily summaries: %v", ErrDatabaseError, err)
	}
	return summaries, nil
}

func (r *reportRepository) DailySummaries(storeID *string) ([]models.DailySalesSummary, error) {
	query := `SELECT to_char(sa.sale_date, 'YYYY-MM-DD'), sa.store_id, st.name,
	                 COUNT(*), COALESCE(SUM(sa.total_price), 0)
	          FROM sales sa
	          LEFT JOIN stores st ON st.id = sa.store_id`
	args := []interface{}{}
	if storeID != nil {
		query += ` WHERE sa.store_id = $1`
		args = append(args, *storeID)
	}
	query += ` GROUP BY sa.sale_date, sa.store_id, st.name ORDER BY sa.sale_date DESC`
	return r.queryDailySummaries(query, args...)
}

func (r *reportRepository) DailySummariesByRange(startDate, endDate string, storeID *string) ([]models.DailySalesSummary, error) {
	query := `SELECT to_char(sa.sale_date, 'YYYY-MM-DD'), sa.store_id, st.name,
	                 COUNT(*), COALESCE(SUM(sa.total_price), 0)
	          FROM sales sa
	          LEFT JOIN stores st ON st.id = sa.store_id
	          WHERE sa.sale_date BETWEEN $1 AND $2`
	args := []interface{}{startDate, endDate}
	if storeID != nil {
		query += ` AND sa.store_id = $3`
		args = append(args, *storeID)
	}
	query += ` GROUP BY sa.sale_date, sa.store_id, st.name ORDER BY sa.sale_date DESC`
	return r.queryDailySummaries(query, args...)
}

func (r *reportRepository) SalesByCategory(storeID *string) ([]models.CategorySales, error) {
	query := `SELECT category, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total_price), 0) FROM sales`
	args := []interface{}{}
	if storeID != nil {
		query += ` WHERE store_id = $1`
		args = append(args, *storeID)
	}
	query += ` GROUP BY category ORDER BY SUM(total_price) DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales by category: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	results := []models.CategorySales{}
	for rows.Next() {
		var c models.CategorySales
		if err := rows.Scan(&c.Category, &c.SalesCount, &c.TotalQuantity, &c.TotalAmount); err != nil {
			return nil, fmt.Errorf("%w: scanning category sales: %v", ErrDatabaseError, err)
		}
		results = append(results, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category sales: %v", ErrDatabaseError, err)
	}
	return results, nil
}

func (r *reportRepository) TopProducts(limit int, storeID *string) ([]models.TopProduct, error) {
	query := `SELECT product_name, COALESCE(SUM(quantity), 0), COALESCE(SUM(total_price), 0), COUNT(*) FROM sales`
	args := []interface{}{}
	argCount := 1
	if storeID != nil {
		query += fmt.Sprintf(` WHERE store_id = $%d`, argCount)
		args = append(args, *storeID)
		argCount++
	}
	query += fmt.Sprintf(` GROUP BY product_name ORDER BY SUM(quantity) DESC LIMIT $%d`, argCount)
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying top products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	results := []models.TopProduct{}
	for rows.Next() {
		var p models.TopProduct
		if err := rows.Scan(&p.ProductName, &p.TotalQuantity, &p.TotalRevenue, &p.SaleCount); err != nil {
			return nil, fmt.Errorf("%w: scanning top product: %v", ErrDatabaseError, err)
		}
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top products: %v", ErrDatabaseError, err)
	}
	return results, nil
}

func (r *reportRepository) Stats(storeID *string) (*models.SalesStats, error) {
	query := `SELECT COUNT(DISTINCT sale_date), COALESCE(SUM(total_price), 0),
	                 COALESCE(SUM(quantity), 0), COUNT(*)
	          FROM sales`
	args := []interface{}{}
	if storeID != nil {
		query += ` WHERE store_id = $1`
		args = append(args, *storeID)
	}

	stats := &models.SalesStats{}
	err := r.db.QueryRow(query, args...).Scan(&stats.TotalDays, &stats.TotalRevenue,
		&stats.TotalItemsSold, &stats.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales stats: %v", ErrDatabaseError, err)
	}
	return stats, nil
}

func (r *reportRepository) MonthlySales(year, month int, storeID *string) ([]models.MonthlySalesPoint, error) {
	query := `SELECT to_char(sale_date, 'YYYY-MM-DD'), COALESCE(SUM(total_price), 0), COUNT(*)
	          FROM sales
	          WHERE EXTRACT(YEAR FROM sale_date) = $1 AND EXTRACT(MONTH FROM sale_date) = $2`
	args := []interface{}{year, month}
	if storeID != nil {
		query += ` AND store_id = $3`
		args = append(args, *storeID)
	}
	query += ` GROUP BY sale_date ORDER BY sale_date`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying monthly sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	results := []models.MonthlySalesPoint{}
	for rows.Next() {
		var p models.MonthlySalesPoint
		if err := rows.Scan(&p.Date, &p.DailyTotal, &p.DailyCount); err != nil {
			return nil, fmt.Errorf("%w: scanning monthly sales point: %v", ErrDatabaseError, err)
		}
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating monthly sales: %v", ErrDatabaseError, err)
	}
	return results, nil
}

func (r *reportRepository) StoreComparison() ([]models.StoreComparison, error) {
	// LEFT JOIN so stores with no sales still appear with zeroed metrics.
	// The average is computed in the service, guarded against zero transactions.
	query := `SELECT st.id, st.name, st.address, st.phone, st.is_main, st.created_at, st.updated_at,
	                 COALESCE(SUM(sa.total_price), 0), COUNT(sa.id), COALESCE(SUM(sa.quantity), 0)
	          FROM stores st
	          LEFT JOIN sales sa ON sa.store_id = st.id
	          GROUP BY st.id, st.name, st.address, st.phone, st.is_main, st.created_at, st.updated_at
	          ORDER BY st.is_main DESC, COALESCE(SUM(sa.total_price), 0) DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying store comparison: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	results := []models.StoreComparison{}
	for rows.Next() {
		var c models.StoreComparison
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.IsMain, &c.CreatedAt, &c.UpdatedAt,
			&c.Revenue, &c.Transactions, &c.TotalItemsSold); err != nil {
			return nil, fmt.Errorf("%w: scanning store comparison: %v", ErrDatabaseError, err)
		}
		results = append(results, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating store comparison: %v", ErrDatabaseError, err)
	}
	return results, nil
}
