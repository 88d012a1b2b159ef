package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quincaillerie_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the database operations of the inventory ledger.
type ProductRepository interface {
	Create(executor SQLExecutor, product *models.Product) (int64, error)
	GetByID(id int64) (*models.Product, error)
	GetByNameAndStore(executor SQLExecutor, name, storeID string) (*models.Product, error)
	GetByStore(storeID string) ([]models.Product, error)
	GetByCategory(category, storeID string) ([]models.Product, error)
	GetLowStock(storeID string) ([]models.Product, error)
	FindByBarcode(barcode string) (*models.Product, error)
	// AdjustStock applies a signed delta clamped at zero and returns the new
	// stock level. found is false when no product matches (name, storeID).
	AdjustStock(executor SQLExecutor, name, storeID string, delta int) (newStock int, found bool, err error)
	Update(executor SQLExecutor, id int64, storeID string, updates models.ProductUpdate) (int64, error)
	Delete(executor SQLExecutor, id int64, storeID string) (int64, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, category, barcode, cost_price, selling_price, stock, min_stock, store_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Category, &p.Barcode, &p.CostPrice, &p.SellingPrice,
		&p.Stock, &p.MinStock, &p.StoreID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) Create(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, category, barcode, cost_price, selling_price, stock, min_stock, store_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`
	now := time.Now()
	err := executor.QueryRow(query,
		product.Name, product.Category, product.Barcode, product.CostPrice, product.SellingPrice,
		product.Stock, product.MinStock, product.StoreID, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: product '%s' (constraint: %s)", ErrDuplicateKey, product.Name, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return 0, fmt.Errorf("%w: store '%s' does not exist", ErrForeignKey, product.StoreID)
			}
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRow(query, id), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

func (r *productRepository) GetByNameAndStore(executor SQLExecutor, name, storeID string) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1 AND store_id = $2`
	err := scanProduct(executor.QueryRow(query, name, storeID), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product '%s' in store '%s': %v", ErrDatabaseError, name, storeID, err)
	}
	return product, nil
}

func (r *productRepository) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	products := []models.Product{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating products: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) GetByStore(storeID string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY name`
	return r.queryProducts(query, storeID)
}

func (r *productRepository) GetByCategory(category, storeID string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 AND store_id = $2 ORDER BY name`
	return r.queryProducts(query, category, storeID)
}

func (r *productRepository) GetLowStock(storeID string) ([]models.Product, error) {
	// Most deficient first: (stock - min_stock) ascending.
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE store_id = $1 AND stock <= min_stock
	          ORDER BY (stock - min_stock), name`
	return r.queryProducts(query, storeID)
}

func (r *productRepository) FindByBarcode(barcode string) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	err := scanProduct(r.db.QueryRow(query, barcode), product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding product by barcode '%s': %v", ErrDatabaseError, barcode, err)
	}
	return product, nil
}

func (r *productRepository) AdjustStock(executor SQLExecutor, name, storeID string, delta int) (int, bool, error) {
	// Single atomic update; GREATEST keeps the stored stock non-negative no
	// matter what sequence of deltas arrives.
	var newStock int
	query := `UPDATE products
	          SET stock = GREATEST(0, stock + $1), updated_at = $2
	          WHERE name = $3 AND store_id = $4
	          RETURNING stock`
	err := executor.QueryRow(query, delta, time.Now(), name, storeID).Scan(&newStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: adjusting stock for '%s' in store '%s': %v", ErrDatabaseError, name, storeID, err)
	}
	return newStock, true, nil
}

func (r *productRepository) Update(executor SQLExecutor, id int64, storeID string, updates models.ProductUpdate) (int64, error) {
	setClauses := []string{}
	args := []interface{}{}
	argCount := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if updates.Name != nil {
		addClause("name", *updates.Name)
	}
	if updates.Category != nil {
		addClause("category", *updates.Category)
	}
	if updates.Barcode != nil {
		addClause("barcode", *updates.Barcode)
	}
	if updates.CostPrice != nil {
		addClause("cost_price", *updates.CostPrice)
	}
	if updates.SellingPrice != nil {
		addClause("selling_price", *updates.SellingPrice)
	}
	if updates.Stock != nil {
		addClause("stock", *updates.Stock)
	}
	if updates.MinStock != nil {
		addClause("min_stock", *updates.MinStock)
	}
	if len(setClauses) == 0 {
		return 0, nil
	}
	addClause("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d AND store_id = $%d`,
		strings.Join(setClauses, ", "), argCount, argCount+1)
	args = append(args, id, storeID)

	result, err := executor.Exec(query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: updating product ID %d (constraint: %s)", ErrDuplicateKey, id, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *productRepository) Delete(executor SQLExecutor, id int64, storeID string) (int64, error) {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}
