package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
	"quincaillerie_backend/pkg/utils"
)

// --- Custom Service Errors for Stores ---
var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrStoreIDExists     = errors.New("store id already exists")
	ErrStoreInUse        = errors.New("store is still referenced by products or sales")
	ErrMainStoreConflict = errors.New("a main store already exists")
)

// MainStorePolicy decides whether is_main must stay unique. The original
// system never enforced uniqueness, so the strict mode is opt-in.
type MainStorePolicy string

const (
	MainPolicyAllowMultiple MainStorePolicy = "allow-multiple"
	MainPolicyEnforceSingle MainStorePolicy = "enforce-single"
)

// --- DTOs ---

type CreateStoreRequest struct {
	ID      *string `json:"id"`
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	IsMain  bool    `json:"isMain"`
}

// --- StoreService Interface ---

type StoreService interface {
	CreateStore(req CreateStoreRequest) (*models.Store, error)
	GetStoreByID(id string) (*models.Store, error)
	GetStores() ([]models.Store, error)
	UpdateStore(id string, updates repositories.StoreUpdate) (*models.Store, error)
	DeleteStore(id string) error
	StoreComparison() ([]models.StoreComparison, error)
}

type storeService struct {
	storeRepo  repositories.StoreRepository
	reportRepo repositories.ReportRepository
	db         repositories.Database
	mainPolicy MainStorePolicy
}

// NewStoreService creates a new instance of StoreService.
func NewStoreService(sr repositories.StoreRepository, rr repositories.ReportRepository, db repositories.Database, policy MainStorePolicy) StoreService {
	if policy != MainPolicyEnforceSingle {
		policy = MainPolicyAllowMultiple
	}
	return &storeService{
		storeRepo:  sr,
		reportRepo: rr,
		db:         db,
		mainPolicy: policy,
	}
}

func (s *storeService) CreateStore(req CreateStoreRequest) (*models.Store, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: le nom du magasin est requis", ErrValidation)
	}
	if req.IsMain && s.mainPolicy == MainPolicyEnforceSingle {
		count, err := s.storeRepo.CountMain("")
		if err != nil {
			return nil, fmt.Errorf("failed to check main store uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrMainStoreConflict
		}
	}

	store := &models.Store{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		IsMain:  req.IsMain,
	}
	if req.ID != nil && strings.TrimSpace(*req.ID) != "" {
		store.ID = *req.ID
	} else {
		// Millisecond timestamp ids, same scheme the dashboard used.
		store.ID = utils.Int64ToStr(time.Now().UnixMilli())
	}

	if err := s.storeRepo.Create(s.db, store); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrStoreIDExists, store.ID)
		}
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}

func (s *storeService) GetStoreByID(id string) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return store, nil
}

func (s *storeService) GetStores() ([]models.Store, error) {
	stores, err := s.storeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get stores: %w", err)
	}
	return stores, nil
}

func (s *storeService) UpdateStore(id string, updates repositories.StoreUpdate) (*models.Store, error) {
	if updates.Name != nil && strings.TrimSpace(*updates.Name) == "" {
		return nil, fmt.Errorf("%w: le nom du magasin ne peut pas être vide", ErrValidation)
	}
	if updates.IsMain != nil && *updates.IsMain && s.mainPolicy == MainPolicyEnforceSingle {
		count, err := s.storeRepo.CountMain(id)
		if err != nil {
			return nil, fmt.Errorf("failed to check main store uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrMainStoreConflict
		}
	}

	if err := s.storeRepo.Update(s.db, id, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return s.storeRepo.GetByID(id)
}

func (s *storeService) DeleteStore(id string) error {
	if err := s.storeRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStoreNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return fmt.Errorf("%w: '%s'", ErrStoreInUse, id)
		}
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}

func (s *storeService) StoreComparison() ([]models.StoreComparison, error) {
	comparisons, err := s.reportRepo.StoreComparison()
	if err != nil {
		return nil, fmt.Errorf("failed to get store comparison: %w", err)
	}
	for i := range comparisons {
		if comparisons[i].Transactions > 0 {
			comparisons[i].AvgTransaction = comparisons[i].Revenue / float64(comparisons[i].Transactions)
		}
	}
	return comparisons, nil
}
