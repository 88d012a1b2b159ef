package services

import (
	"errors"
	"fmt"
	"strings"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
)

// --- Custom Service Errors for Categories ---
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category name already exists")
)

// --- DTOs ---

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryOutcome is the typed result of a create: either a fresh row or the
// pre-existing one. Seed paths tolerate AlreadyExists; user-facing writes
// surface it as a conflict instead of swallowing it.
type CategoryOutcome struct {
	Category *models.Category `json:"category"`
	Created  bool             `json:"created"`
}

// --- CategoryService Interface ---

type CategoryService interface {
	// CreateCategory reports AlreadyExists through the outcome rather than
	// by insert-or-ignore, so callers decide whether a duplicate is an error.
	CreateCategory(req CreateCategoryRequest) (*CategoryOutcome, error)
	GetCategories() ([]models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	UpdateCategory(id int64, req UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(id int64) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	db           repositories.Database
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, db repositories.Database) CategoryService {
	return &categoryService{categoryRepo: repo, db: db}
}

func (s *categoryService) CreateCategory(req CreateCategoryRequest) (*CategoryOutcome, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: le nom de la catégorie est requis", ErrValidation)
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	_, err := s.categoryRepo.Create(s.db, category)
	if err == nil {
		return &CategoryOutcome{Category: category, Created: true}, nil
	}
	if errors.Is(err, repositories.ErrDuplicateKey) {
		existing, getErr := s.categoryRepo.GetByName(req.Name)
		if getErr != nil {
			return nil, fmt.Errorf("failed to fetch existing category '%s': %w", req.Name, getErr)
		}
		return &CategoryOutcome{Category: existing, Created: false}, nil
	}
	return nil, fmt.Errorf("failed to create category: %w", err)
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByName(name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id int64, req UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: le nom de la catégorie ne peut pas être vide", ErrValidation)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := s.categoryRepo.Update(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrCategoryExists, category.Name)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return s.categoryRepo.GetByID(id)
}

func (s *categoryService) DeleteCategory(id int64) error {
	if err := s.categoryRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
