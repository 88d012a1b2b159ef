package handlers

import (
	"errors"
	"net/http"

	"quincaillerie_backend/internal/repositories"
	"quincaillerie_backend/internal/services"
	"quincaillerie_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StoreHandler holds the store service.
type StoreHandler struct {
	storeService services.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(ss services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: ss}
}

// GetStores returns all stores, main store first.
func (h *StoreHandler) GetStores(c *gin.Context) {
	stores, err := h.storeService.GetStores()
	if err != nil {
		utils.LogError(err, "GetStores: Error from storeService.GetStores")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les magasins.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GetStoreByID returns a single store.
func (h *StoreHandler) GetStoreByID(c *gin.Context) {
	store, err := h.storeService.GetStoreByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Magasin introuvable.", err.Error()))
			return
		}
		utils.LogError(err, "GetStoreByID: Error from storeService.GetStoreByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger le magasin.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, store)
}

// GetStoreComparison returns revenue/transaction metrics per store; stores
// with no sales appear with zeroed metrics.
func (h *StoreHandler) GetStoreComparison(c *gin.Context) {
	comparisons, err := h.storeService.StoreComparison()
	if err != nil {
		utils.LogError(err, "GetStoreComparison: Error from storeService.StoreComparison")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de comparer les magasins.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, comparisons)
}

// CreateStore creates a new store.
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStore: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide: le nom du magasin est requis.", err.Error())
		return
	}

	store, err := h.storeService.CreateStore(req)
	if err != nil {
		utils.LogError(err, "CreateStore: Error from storeService.CreateStore")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de magasin invalides.", err.Error())
		} else if errors.Is(err, services.ErrStoreIDExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Un magasin avec cet identifiant existe déjà.", err.Error()))
		} else if errors.Is(err, services.ErrMainStoreConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Un magasin principal existe déjà.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de créer le magasin.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, store)
}

// UpdateStore applies a sparse field update to one store.
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	var updates repositories.StoreUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.LogError(err, "UpdateStore: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide.", err.Error())
		return
	}

	store, err := h.storeService.UpdateStore(c.Param("id"), updates)
	if err != nil {
		utils.LogError(err, "UpdateStore: Error from storeService.UpdateStore")
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Magasin introuvable.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de magasin invalides.", err.Error())
		} else if errors.Is(err, services.ErrMainStoreConflict) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Un magasin principal existe déjà.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de modifier le magasin.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, store)
}

// DeleteStore removes a store unless products or sales still reference it.
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	if err := h.storeService.DeleteStore(c.Param("id")); err != nil {
		utils.LogError(err, "DeleteStore: Error from storeService.DeleteStore")
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Magasin introuvable.", err.Error()))
		} else if errors.Is(err, services.ErrStoreInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Ce magasin contient encore des produits ou des ventes.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de supprimer le magasin.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
