package handlers

import (
	"errors"
	"net/http"

	"quincaillerie_backend/internal/services"
	"quincaillerie_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler holds the setting service.
type SettingHandler struct {
	settingService services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: ss}
}

// GetSettings returns every stored setting merged over the defaults.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	values, err := h.settingService.GetAll()
	if err != nil {
		utils.LogError(err, "GetSettings: Error from settingService.GetAll")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger les paramètres.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, values)
}

// GetSetting returns one setting by key, falling back to the reserved
// defaults when the key has never been written.
func (h *SettingHandler) GetSetting(c *gin.Context) {
	value, err := h.settingService.Get(c.Param("key"))
	if err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Paramètre introuvable.", err.Error()))
			return
		}
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "La clé du paramètre est requise.", err.Error())
			return
		}
		utils.LogError(err, "GetSetting: Error from settingService.Get")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de charger le paramètre.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "value": value})
}

// SetSetting upserts one setting by key. The body is {"value": ...} where the
// value can be a string, boolean or any JSON structure.
func (h *SettingHandler) SetSetting(c *gin.Context) {
	var body struct {
		Value interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.LogError(err, "SetSetting: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide.", err.Error())
		return
	}

	if err := h.settingService.Set(c.Param("key"), body.Value); err != nil {
		utils.LogError(err, "SetSetting: Error from settingService.Set")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Paramètre invalide.", err.Error())
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible d'enregistrer le paramètre.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetSettings upserts several settings in one request. The body is a flat
// object of key/value pairs.
func (h *SettingHandler) SetSettings(c *gin.Context) {
	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		utils.LogError(err, "SetSettings: Failed to bind JSON")
		utils.RespondValidationFailed(c, "Requête invalide.", err.Error())
		return
	}

	if err := h.settingService.SetMultiple(values); err != nil {
		utils.LogError(err, "SetSettings: Error from settingService.SetMultiple")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "Paramètres invalides.", err.Error())
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible d'enregistrer les paramètres.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSetting removes one stored setting. Reserved keys revert to their
// defaults on the next read.
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	if err := h.settingService.Delete(c.Param("key")); err != nil {
		utils.LogError(err, "DeleteSetting: Error from settingService.Delete")
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Paramètre introuvable.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Impossible de supprimer le paramètre.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
