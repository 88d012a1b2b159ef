package handlers

import (
	"errors"
	"net/http"

	"quincaillerie_backend/internal/services"
	"quincaillerie_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler holds the category service.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

// GetCategories returns every category, alphabetically.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		utils.LogError(err, "GetCategories: Error from categoryService.GetCategories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les catégories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByName returns one category by its (unique) name.
func (h *CategoryHandler) GetCategoryByName(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Catégorie introuvable.", err.Error()))
			return
		}
		utils.LogError(err, "GetCategoryByName: Error from categoryService.GetCategoryByName")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger la catégorie.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category; hitting an existing name is reported as
// a conflict, not silently merged.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCategory: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide: le nom de la catégorie est requis.", err.Error())
		return
	}

	outcome, err := h.categoryService.CreateCategory(req)
	if err != nil {
		utils.LogError(err, "CreateCategory: Error from categoryService.CreateCategory")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de catégorie invalides.", err.Error())
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de créer la catégorie.", "Internal error"))
		}
		return
	}
	if !outcome.Created {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cette catégorie existe déjà.", "category name already exists"))
		return
	}
	c.JSON(http.StatusOK, outcome.Category)
}

// UpdateCategory renames a category or changes its description.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "Identifiant de catégorie invalide.", err.Error())
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCategory: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide.", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(id, req)
	if err != nil {
		utils.LogError(err, "UpdateCategory: Error from categoryService.UpdateCategory")
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Catégorie introuvable.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de catégorie invalides.", err.Error())
		} else if errors.Is(err, services.ErrCategoryExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cette catégorie existe déjà.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de modifier la catégorie.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Products keep their category label; it
// is a plain text column, not a foreign key.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "Identifiant de catégorie invalide.", err.Error())
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		utils.LogError(err, "DeleteCategory: Error from categoryService.DeleteCategory")
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Catégorie introuvable.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de supprimer la catégorie.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
