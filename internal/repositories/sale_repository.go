package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quincaillerie_backend/internal/models"

	"github.com/lib/pq"
)

// SaleRepository defines the database operations for sale records.
type SaleRepository interface {
	Create(executor SQLExecutor, sale *models.Sale) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.Sale, error)
	List(storeID *string) ([]models.Sale, error)
	ItemsByDay(date string, storeID *string) ([]models.Sale, error)
	Delete(executor SQLExecutor, id int64) error
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, to_char(sale_date, 'YYYY-MM-DD'), product_id, product_name, category, quantity, unit_price, total_price, store_id, notes, created_at`

func scanSale(row interface{ Scan(...interface{}) error }, s *models.Sale) error {
	return row.Scan(&s.ID, &s.Date, &s.ProductID, &s.ProductName, &s.Category,
		&s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.StoreID, &s.Notes, &s.CreatedAt)
}

func (r *saleRepository) Create(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (sale_date, product_id, product_name, category, quantity, unit_price, total_price, store_id, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		sale.Date, sale.ProductID, sale.ProductName, sale.Category, sale.Quantity,
		sale.UnitPrice, sale.TotalPrice, sale.StoreID, sale.Notes, time.Now(),
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, fmt.Errorf("%w: store '%s' does not exist", ErrForeignKey, sale.StoreID)
		}
		return 0, fmt.Errorf("%w: creating sale: %v", ErrDatabaseError, err)
	}
	return sale.ID, nil
}

func (r *saleRepository) GetByID(executor SQLExecutor, id int64) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	err := scanSale(executor.QueryRow(query, id), sale)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, id, err)
	}
	return sale, nil
}

func (r *saleRepository) querySales(query string, args ...interface{}) ([]models.Sale, error) {
	sales := []models.Sale{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) List(storeID *string) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := []interface{}{}
	if storeID != nil {
		query += ` WHERE store_id = $1`
		args = append(args, *storeID)
	}
	query += ` ORDER BY sale_date DESC, id DESC`
	return r.querySales(query, args...)
}

func (r *saleRepository) ItemsByDay(date string, storeID *string) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_date = $1`
	args := []interface{}{date}
	if storeID != nil {
		query += ` AND store_id = $2`
		args = append(args, *storeID)
	}
	query += ` ORDER BY id DESC`
	return r.querySales(query, args...)
}

func (r *saleRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting sale ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
