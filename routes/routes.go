package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cleaning-crm/controllers"
	"cleaning-crm/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires every controller onto the API surface. Booking creation
// and availability stay open for the public booking page; everything else
// under /api requires a bearer token.
func SetupRouter(
	bc *controllers.BookingController,
	avc *controllers.AvailabilityController,
	cc *controllers.CustomerController,
	fc *controllers.FinanceController,
	cmc *controllers.CommunicationController,
	ac *controllers.AuthController,
	sc *controllers.SettingsController,
	loc *time.Location,
	jwtSecret []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "OK"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		// Public: the booking page creates bookings and checks availability
		// without a session.
		api.GET("/availability/:date", avc.GetAvailability)
		api.POST("/bookings", middleware.ValidateBookingRequest(loc), bc.CreateBooking)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(jwtSecret))
		{
			protected.GET("/calendar-url", avc.GetCalendarURL)

			bookings := protected.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.GET("/range", bc.GetBookingsByRange)
				bookings.GET("/dashboard-stats", bc.GetDashboardStats)
				bookings.GET("/recent-transactions", bc.GetRecentTransactions)
			}

			customers := protected.Group("/customers")
			{
				customers.GET("", cc.GetCustomers)
				customers.GET("/search", cc.SearchCustomers)
				customers.POST("", cc.CreateCustomer)
				customers.PUT("/:id", cc.UpdateCustomer)
				customers.DELETE("/:id", cc.DeleteCustomer)
			}

			finances := protected.Group("/finances")
			{
				finances.GET("/overview", fc.GetOverview)
				finances.GET("/transactions", fc.GetTransactions)
				finances.GET("/revenue-graph", fc.GetRevenueGraph)
				finances.GET("/revenue-data", fc.GetRevenueData)
				finances.GET("/service-metrics", fc.GetServiceMetrics)
			}

			communications := protected.Group("/communications")
			{
				communications.GET("", cmc.GetCommunications)
				communications.GET("/stats", cmc.GetStats)
				communications.GET("/failed", cmc.GetFailed)
				communications.GET("/customer/:customerId", cmc.GetCustomerCommunications)
				communications.POST("", cmc.SendCommunication)
				communications.POST("/retry/:id", cmc.RetryCommunication)
			}

			settings := protected.Group("/settings")
			{
				settings.GET("", sc.GetSettings)
				settings.PUT("", sc.UpdateSettings)
			}
		}
	}

	return r
}
