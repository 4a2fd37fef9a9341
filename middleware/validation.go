// middleware/validation.go
package middleware

import (
	"net/http"
	"regexp"
	"time"

	"cleaning-crm/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[\d\s-]{8,}$`)
)

// ValidateBookingRequest rejects malformed booking payloads before the
// workflow runs. The body is bound with ShouldBindBodyWith so the handler
// can re-read it from the cache.
func ValidateBookingRequest(loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.CreateBookingRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": err.Error(),
			})
			return
		}

		if msg := CheckBookingRequest(req, time.Now(), loc); msg != "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		c.Next()
	}
}

// CheckBookingRequest returns the first failing field's message, or "" when
// the request is valid. Business-hours checks are evaluated in loc.
func CheckBookingRequest(req services.CreateBookingRequest, now time.Time, loc *time.Location) string {
	if req.Area == 0 {
		return "Area is required"
	}
	if req.DateTime == "" {
		return "Date and time is required"
	}
	if req.Price == 0 {
		return "Price is required"
	}
	if req.CleaningType == "" {
		return "Cleaning type is required"
	}
	if req.Duration == 0 {
		return "Duration is required"
	}

	if req.CustomerDetails == (services.CustomerDetails{}) {
		return "Customer details are required"
	}
	if req.CustomerDetails.Name == "" {
		return "Customer name is required"
	}
	if req.CustomerDetails.Email == "" {
		return "Email is required"
	}
	if req.CustomerDetails.Phone == "" {
		return "Phone number is required"
	}
	if req.CustomerDetails.Address == "" {
		return "Address is required"
	}

	if !emailRegex.MatchString(req.CustomerDetails.Email) {
		return "Invalid email format"
	}

	bookingDate, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return "Invalid date and time format"
	}

	if req.Area < 0 {
		return "Area must be greater than 0"
	}
	if req.Price < 0 {
		return "Price must be greater than 0"
	}
	if req.Duration < 0 {
		return "Duration must be greater than 0"
	}

	switch req.CleaningType {
	case "Home", "Office", "Move-out":
	default:
		return "Invalid cleaning type"
	}

	for _, item := range req.ServiceItems {
		if item.Name == "" {
			return "Service item name is required"
		}
	}

	if !phoneRegex.MatchString(req.CustomerDetails.Phone) {
		return "Invalid phone number format"
	}

	if !bookingDate.After(now) {
		return "Booking date must be in the future"
	}

	local := bookingDate.In(loc)
	weekday := local.Weekday()
	hour := local.Hour()
	if weekday == time.Sunday || weekday == time.Saturday || hour < 9 || hour >= 17 {
		return "Booking must be during business hours (Monday-Friday, 9 AM - 5 PM)"
	}

	return ""
}
