// controllers/settings_controller.go
package controllers

import (
	"log"
	"net/http"

	"cleaning-crm/models"
	"cleaning-crm/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	setting, err := ctrl.SettingsSvc.Get()
	if err != nil {
		log.Printf("GetSettings error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	var input models.Setting
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	setting, err := ctrl.SettingsSvc.Update(&input)
	if err != nil {
		log.Printf("UpdateSettings error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, setting)
}
