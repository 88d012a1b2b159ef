package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quincaillerie_backend/internal/models"
)

// SettingRepository defines the database operations for settings.
type SettingRepository interface {
	GetAll() ([]models.Setting, error)
	Get(key string) (*models.Setting, error)
	Upsert(executor SQLExecutor, key string, value *string) error
	Delete(executor SQLExecutor, key string) error
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() ([]models.Setting, error) {
	settings := []models.Setting{}
	rows, err := r.db.Query(`SELECT setting_key, setting_value, updated_at FROM settings ORDER BY setting_key`)
	if err != nil {
		return nil, fmt.Errorf("%w: getting settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingRepository) Get(key string) (*models.Setting, error) {
	setting := &models.Setting{}
	query := `SELECT setting_key, setting_value, updated_at FROM settings WHERE setting_key = $1`
	err := r.db.QueryRow(query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting setting '%s': %v", ErrDatabaseError, key, err)
	}
	return setting, nil
}

func (r *settingRepository) Upsert(executor SQLExecutor, key string, value *string) error {
	query := `INSERT INTO settings (setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (setting_key)
	          DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at`
	if _, err := executor.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("%w: upserting setting '%s': %v", ErrDatabaseError, key, err)
	}
	return nil
}

func (r *settingRepository) Delete(executor SQLExecutor, key string) error {
	result, err := executor.Exec(`DELETE FROM settings WHERE setting_key = $1`, key)
	if err != nil {
		return fmt.Errorf("%w: deleting setting '%s': %v", ErrDatabaseError, key, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
