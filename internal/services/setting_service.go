package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quincaillerie_backend/internal/repositories"
)

// --- Custom Service Errors for Settings ---
var (
	ErrSettingNotFound = errors.New("setting not found")
)

// Reserved setting keys the dashboard relies on.
const (
	SettingCurrentStore    = "currentStore"
	SettingDefaultStore    = "defaultStore"
	SettingBarcodeScanning = "enableBarcodeScanning"
	SettingProfitMargins   = "showProfitMargins"
)

// --- SettingService Interface ---

// SettingService stores preferences as text and decodes booleans and JSON
// structures on read, so the client gets typed values back.
type SettingService interface {
	GetAll() (map[string]interface{}, error)
	Get(key string) (interface{}, error)
	Set(key string, value interface{}) error
	SetMultiple(values map[string]interface{}) error
	Delete(key string) error
}

type settingService struct {
	settingRepo repositories.SettingRepository
	db          repositories.Database
	mainStoreID string
}

// NewSettingService creates a new instance of SettingService.
func NewSettingService(repo repositories.SettingRepository, db repositories.Database, mainStoreID string) SettingService {
	return &settingService{settingRepo: repo, db: db, mainStoreID: mainStoreID}
}

// defaults returns the reserved settings and their out-of-the-box values.
func (s *settingService) defaults() map[string]interface{} {
	return map[string]interface{}{
		SettingCurrentStore:    s.mainStoreID,
		SettingDefaultStore:    s.mainStoreID,
		SettingBarcodeScanning: true,
		SettingProfitMargins:   true,
	}
}

func (s *settingService) GetAll() (map[string]interface{}, error) {
	rows, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	values := s.defaults()
	for _, row := range rows {
		values[row.Key] = decodeSettingValue(row.Value)
	}
	return values, nil
}

func (s *settingService) Get(key string) (interface{}, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: la clé du paramètre est requise", ErrValidation)
	}
	row, err := s.settingRepo.Get(key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			if fallback, ok := s.defaults()[key]; ok {
				return fallback, nil
			}
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting '%s': %w", key, err)
	}
	return decodeSettingValue(row.Value), nil
}

func (s *settingService) Set(key string, value interface{}) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: la clé du paramètre est requise", ErrValidation)
	}
	encoded, err := encodeSettingValue(value)
	if err != nil {
		return fmt.Errorf("%w: valeur de paramètre non sérialisable", ErrValidation)
	}
	if err := s.settingRepo.Upsert(s.db, key, encoded); err != nil {
		return fmt.Errorf("failed to set setting '%s': %w", key, err)
	}
	return nil
}

// SetMultiple upserts a batch of settings atomically; either every key
// lands or none does.
func (s *settingService) SetMultiple(values map[string]interface{}) error {
	encoded := make(map[string]*string, len(values))
	for key, value := range values {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: la clé du paramètre est requise", ErrValidation)
		}
		enc, err := encodeSettingValue(value)
		if err != nil {
			return fmt.Errorf("%w: valeur de paramètre non sérialisable", ErrValidation)
		}
		encoded[key] = enc
	}
	if len(encoded) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	for key, enc := range encoded {
		if err := s.settingRepo.Upsert(tx, key, enc); err != nil {
			return fmt.Errorf("failed to set setting '%s': %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *settingService) Delete(key string) error {
	if err := s.settingRepo.Delete(s.db, key); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSettingNotFound
		}
		return fmt.Errorf("failed to delete setting '%s': %w", key, err)
	}
	return nil
}

// decodeSettingValue turns the stored text back into a typed value:
// booleans, numbers and JSON structures round-trip; everything else stays a
// plain string. A NULL value decodes to nil.
func decodeSettingValue(raw *string) interface{} {
	if raw == nil {
		return nil
	}
	switch *raw {
	case "true":
		return true
	case "false":
		return false
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(*raw), &decoded); err == nil {
		return decoded
	}
	return *raw
}

// encodeSettingValue flattens a typed value into the stored text form.
func encodeSettingValue(value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	var encoded string
	switch v := value.(type) {
	case string:
		encoded = v
	case bool:
		encoded = strconv.FormatBool(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		encoded = string(raw)
	}
	return &encoded, nil
}
