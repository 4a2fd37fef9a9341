// controllers/availability_controller.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"cleaning-crm/services"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Calendar services.Calendar
	Loc      *time.Location
}

func NewAvailabilityController(cal services.Calendar, loc *time.Location) *AvailabilityController {
	return &AvailabilityController{Calendar: cal, Loc: loc}
}

// GetAvailability returns the 8 business-hour slots for a day, each flagged
// available or not against the provider calendar.
func (ctrl *AvailabilityController) GetAvailability(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Param("date"), ctrl.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	slots, err := services.AvailableSlots(c.Request.Context(), ctrl.Calendar, date)
	if err != nil {
		log.Printf("GetAvailability error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// GetCalendarURL exposes the public embed link for the provider calendar.
func (ctrl *AvailabilityController) GetCalendarURL(c *gin.Context) {
	url := ctrl.Calendar.EmbedURL()
	if url == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Calendar ID not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
