package handlers

import (
	"errors"
	"net/http"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/services"
	"quincaillerie_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// GetInventory returns all products for a store.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	products, err := h.inventoryService.GetInventory(c.Query("storeId"))
	if err != nil {
		utils.LogError(err, "GetInventory: Error from inventoryService.GetInventory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger l'inventaire.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetLowStock returns every product at or below its restock threshold,
// most deficient first.
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	products, err := h.inventoryService.GetLowStock(c.Query("storeId"))
	if err != nil {
		utils.LogError(err, "GetLowStock: Error from inventoryService.GetLowStock")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les articles en stock faible.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetByCategory returns the products of one category in a store.
func (h *InventoryHandler) GetByCategory(c *gin.Context) {
	products, err := h.inventoryService.GetByCategory(c.Param("category"), c.Query("storeId"))
	if err != nil {
		utils.LogError(err, "GetByCategory: Error from inventoryService.GetByCategory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger l'inventaire par catégorie.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// FindByBarcode looks up a product by exact barcode. Absence responds with
// a JSON null body, not a 404, since scanners probe speculatively.
func (h *InventoryHandler) FindByBarcode(c *gin.Context) {
	product, err := h.inventoryService.FindByBarcode(c.Param("barcode"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Le code-barres est requis.", err.Error())
			return
		}
		utils.LogError(err, "FindByBarcode: Error from inventoryService.FindByBarcode")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de rechercher le code-barres.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, product)
}

// AddProduct creates a new product row.
func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AddProduct: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide: champs obligatoires manquants.", err.Error())
		return
	}

	product, err := h.inventoryService.AddProduct(req)
	if err != nil {
		utils.LogError(err, "AddProduct: Error from inventoryService.AddProduct")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de produit invalides.", err.Error())
		} else if errors.Is(err, services.ErrBarcodeConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Ce code-barres est déjà utilisé.", err.Error()))
		} else if errors.Is(err, services.ErrStoreMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Le magasin indiqué n'existe pas.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible d'ajouter le produit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateStock applies a signed stock delta to a named product.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req services.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateStock: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide: le nom du produit est requis.", err.Error())
		return
	}

	adjustment, err := h.inventoryService.AdjustStock(req)
	if err != nil {
		utils.LogError(err, "UpdateStock: Error from inventoryService.AdjustStock")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données d'ajustement invalides.", err.Error())
		} else if errors.Is(err, services.ErrStoreMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Le magasin indiqué n'existe pas.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de mettre à jour le stock.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stock": adjustment.Stock, "created": adjustment.Created})
}

// UpdateProduct applies a sparse field update to one product.
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "Identifiant de produit invalide.", err.Error())
		return
	}

	var updates models.ProductUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.LogError(err, "UpdateProduct: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide.", err.Error())
		return
	}

	affected, err := h.inventoryService.UpdateProduct(id, c.Query("storeId"), updates)
	if err != nil {
		utils.LogError(err, "UpdateProduct: Error from inventoryService.UpdateProduct")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de produit invalides.", err.Error())
		} else if errors.Is(err, services.ErrBarcodeConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Ce code-barres est déjà utilisé.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de modifier le produit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "affectedRows": affected})
}

// DeleteProduct removes one product. Historical sales keep their snapshot of
// the product's name and category.
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "Identifiant de produit invalide.", err.Error())
		return
	}

	affected, err := h.inventoryService.DeleteProduct(id, c.Query("storeId"))
	if err != nil {
		utils.LogError(err, "DeleteProduct: Error from inventoryService.DeleteProduct")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de supprimer le produit.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "affectedRows": affected})
}
