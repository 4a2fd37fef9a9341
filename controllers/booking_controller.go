// controllers/booking_controller.go
package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"cleaning-crm/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateBooking runs after ValidateBookingRequest; the payload is read from
// the binding cache.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := ctrl.BookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		log.Printf("CreateBooking error: %v", err)
		if strings.Contains(err.Error(), "validation") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create booking.", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create booking.",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully!",
		"booking": result.Booking,
		"calendarEvent": gin.H{
			"id":       result.CalendarEvent.ID,
			"htmlLink": result.CalendarEvent.HTMLLink,
		},
	})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingsByRange lists bookings scheduled within [start, end], both
// YYYY-MM-DD. The end date is inclusive.
func (ctrl *BookingController) GetBookingsByRange(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}

	bookings, err := ctrl.BookingSvc.GetByDateRange(start, end.AddDate(0, 0, 1).Add(-time.Second))
	if err != nil {
		log.Printf("GetBookingsByRange error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetDashboardStats(c *gin.Context) {
	stats, err := ctrl.BookingSvc.GetDashboardStats()
	if err != nil {
		log.Printf("GetDashboardStats error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ctrl *BookingController) GetRecentTransactions(c *gin.Context) {
	transactions, err := ctrl.BookingSvc.GetRecentTransactions()
	if err != nil {
		log.Printf("GetRecentTransactions error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}
