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

// StoreRepository defines the database operations for stores.
type StoreRepository interface {
	Create(executor SQLExecutor, store *models.Store) error
	GetByID(id string) (*models.Store, error)
	GetAll() ([]models.Store, error)
	Update(executor SQLExecutor, id string, updates StoreUpdate) error
	Delete(executor SQLExecutor, id string) error
	// CountMain counts stores flagged is_main, excluding the given id
	// (empty string excludes nothing). Used by the single-main policy.
	CountMain(excludeID string) (int, error)
}

// StoreUpdate carries a sparse set of mutable store fields.
type StoreUpdate struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	IsMain  *bool   `json:"isMain"`
}

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new instance of StoreRepository.
func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(executor SQLExecutor, store *models.Store) error {
	query := `INSERT INTO stores (id, name, address, phone, is_main, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	now := time.Now()
	err := executor.QueryRow(query, store.ID, store.Name, store.Address, store.Phone, store.IsMain, now, now).
		Scan(&store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: store id '%s' already exists", ErrDuplicateKey, store.ID)
		}
		return fmt.Errorf("%w: creating store: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *storeRepository) GetByID(id string) (*models.Store, error) {
	store := &models.Store{}
	query := `SELECT id, name, address, phone, is_main, created_at, updated_at FROM stores WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&store.ID, &store.Name, &store.Address, &store.Phone,
		&store.IsMain, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting store '%s': %v", ErrDatabaseError, id, err)
	}
	return store, nil
}

func (r *storeRepository) GetAll() ([]models.Store, error) {
	stores := []models.Store{}
	query := `SELECT id, name, address, phone, is_main, created_at, updated_at FROM stores ORDER BY is_main DESC, name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting stores: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.IsMain, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning store: %v", ErrDatabaseError, err)
		}
		stores = append(stores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stores: %v", ErrDatabaseError, err)
	}
	return stores, nil
}

func (r *storeRepository) Update(executor SQLExecutor, id string, updates StoreUpdate) error {
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
	if updates.Address != nil {
		addClause("address", *updates.Address)
	}
	if updates.Phone != nil {
		addClause("phone", *updates.Phone)
	}
	if updates.IsMain != nil {
		addClause("is_main", *updates.IsMain)
	}
	if len(setClauses) == 0 {
		return nil
	}
	addClause("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE stores SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argCount)
	args = append(args, id)

	result, err := executor.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w: updating store '%s': %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *storeRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: store '%s' is still referenced by products or sales", ErrForeignKey, id)
		}
		return fmt.Errorf("%w: deleting store '%s': %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *storeRepository) CountMain(excludeID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM stores WHERE is_main = TRUE AND id <> $1`, excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting main stores: %v", ErrDatabaseError, err)
	}
	return count, nil
}
