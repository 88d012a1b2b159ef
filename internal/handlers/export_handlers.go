package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"quincaillerie_backend/internal/services"
	"quincaillerie_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ExportHandler holds the export service.
type ExportHandler struct {
	exportService services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

// writeCSVAttachment sends a finished CSV document with a dated filename.
// The document is built in memory first, so a failed export still answers
// with the JSON error envelope instead of half-set attachment headers.
func writeCSVAttachment(c *gin.Context, basename string, body []byte) {
	filename := fmt.Sprintf("%s_%s.csv", basename, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// ExportSales returns the full sales history as a CSV attachment.
func (h *ExportHandler) ExportSales(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.WriteSalesCSV(&buf, optionalStoreID(c)); err != nil {
		utils.LogError(err, "ExportSales: Error from exportService.WriteSalesCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible d'exporter les ventes.", "Internal error"))
		return
	}
	writeCSVAttachment(c, "ventes", buf.Bytes())
}

// ExportInventory returns a store's inventory snapshot as a CSV attachment.
func (h *ExportHandler) ExportInventory(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.WriteInventoryCSV(&buf, c.Query("storeId")); err != nil {
		utils.LogError(err, "ExportInventory: Error from exportService.WriteInventoryCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible d'exporter l'inventaire.", "Internal error"))
		return
	}
	writeCSVAttachment(c, "inventaire", buf.Bytes())
}
