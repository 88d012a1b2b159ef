package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quincaillerie_backend/internal/services"
	"quincaillerie_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sales and report services.
type SaleHandler struct {
	salesService  services.SalesService
	reportService services.ReportService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SalesService, rs services.ReportService) *SaleHandler {
	return &SaleHandler{salesService: ss, reportService: rs}
}

// optionalStoreID reads the storeId query parameter; nil means "all stores".
func optionalStoreID(c *gin.Context) *string {
	return utils.NewNullString(c.Query("storeId"))
}

// GetSales returns the flat list of individual sale rows.
func (h *SaleHandler) GetSales(c *gin.Context) {
	sales, err := h.salesService.ListSales(optionalStoreID(c))
	if err != nil {
		utils.LogError(err, "GetSales: Error from salesService.ListSales")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les ventes.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetDailySales returns day-grouped summaries, newest first.
func (h *SaleHandler) GetDailySales(c *gin.Context) {
	summaries, err := h.reportService.DailySummaries(optionalStoreID(c))
	if err != nil {
		utils.LogError(err, "GetDailySales: Error from reportService.DailySummaries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les ventes journalières.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetSalesByRange returns day-grouped summaries between two dates.
func (h *SaleHandler) GetSalesByRange(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		utils.RespondValidationFailed(c, "Les dates de début et de fin sont requises.", "startDate and endDate query parameters are required")
		return
	}

	summaries, err := h.reportService.DailySummariesByRange(startDate, endDate, optionalStoreID(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Format de date invalide. Utilisez AAAA-MM-JJ.", err.Error())
			return
		}
		utils.LogError(err, "GetSalesByRange: Error from reportService.DailySummariesByRange")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les ventes par période.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetSalesByDay returns the individual sale rows of one calendar day.
func (h *SaleHandler) GetSalesByDay(c *gin.Context) {
	sales, err := h.salesService.SalesByDay(c.Param("date"), optionalStoreID(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Format de date invalide. Utilisez AAAA-MM-JJ.", err.Error())
			return
		}
		utils.LogError(err, "GetSalesByDay: Error from salesService.SalesByDay")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les ventes du jour.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, sales)
}

// CreateSale records a sale and decrements stock in the same transaction.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateSale: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide: champs obligatoires manquants.", err.Error())
		return
	}

	sale, err := h.salesService.RecordSale(req)
	if err != nil {
		utils.LogError(err, "CreateSale: Error from salesService.RecordSale")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Données de vente invalides.", err.Error())
		} else if errors.Is(err, services.ErrStoreMissing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Le magasin indiqué n'existe pas.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible d'enregistrer la vente.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": sale.ID, "totalPrice": sale.TotalPrice})
}

// DeleteSale removes a sale and restores the stock it had decremented.
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "Identifiant de vente invalide.", err.Error())
		return
	}

	if err := h.salesService.DeleteSale(id); err != nil {
		utils.LogError(err, "DeleteSale: Error from salesService.DeleteSale")
		if errors.Is(err, services.ErrSaleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Vente introuvable.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de supprimer la vente.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSalesStats returns aggregate totals across the sales history.
func (h *SaleHandler) GetSalesStats(c *gin.Context) {
	stats, err := h.reportService.Stats(optionalStoreID(c))
	if err != nil {
		utils.LogError(err, "GetSalesStats: Error from reportService.Stats")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les statistiques.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetSalesByCategory returns per-category totals, biggest first.
func (h *SaleHandler) GetSalesByCategory(c *gin.Context) {
	results, err := h.reportService.SalesByCategory(optionalStoreID(c))
	if err != nil {
		utils.LogError(err, "GetSalesByCategory: Error from reportService.SalesByCategory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les ventes par catégorie.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetTopProducts ranks products by total quantity sold.
func (h *SaleHandler) GetTopProducts(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			utils.RespondValidationFailed(c, "La limite doit être un entier positif.", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := h.reportService.TopProducts(limit, optionalStoreID(c))
	if err != nil {
		utils.LogError(err, "GetTopProducts: Error from reportService.TopProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les meilleurs produits.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetMonthlySales returns the per-day breakdown of one month.
func (h *SaleHandler) GetMonthlySales(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil {
		utils.RespondValidationFailed(c, "L'année et le mois sont requis.", "year and month query parameters must be integers")
		return
	}

	results, err := h.reportService.MonthlySales(year, month, optionalStoreID(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Année ou mois invalide.", err.Error())
			return
		}
		utils.LogError(err, "GetMonthlySales: Error from reportService.MonthlySales")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les ventes mensuelles.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, results)
}
