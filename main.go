package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cleaning-crm/config"
	"cleaning-crm/controllers"
	"cleaning-crm/routes"
	"cleaning-crm/services"
	"cleaning-crm/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set.")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	log.Println("Database connection established and migrations applied.")

	loc := utils.BusinessLocation()

	calendar, err := services.NewGoogleCalendarFromEnv(context.Background(), loc)
	if err != nil {
		log.Fatalf("Google Calendar setup failed: %v", err)
	}

	mailer := services.NewSMTPMailerFromEnv()

	// Services
	bookingService := services.NewBookingService(db, calendar, mailer, loc)
	customerService := services.NewCustomerService(db)
	financeService := services.NewFinanceService(db)
	communicationService := services.NewCommunicationService(db, mailer)
	authService := services.NewAuthService(db, []byte(jwtSecret))
	settingsService := services.NewSettingsService(db)
	reminderService := services.NewReminderService(db, mailer)

	// Controllers
	bookingController := controllers.NewBookingController(bookingService)
	availabilityController := controllers.NewAvailabilityController(calendar, loc)
	customerController := controllers.NewCustomerController(customerService)
	financeController := controllers.NewFinanceController(financeService)
	communicationController := controllers.NewCommunicationController(communicationService)
	authController := controllers.NewAuthController(authService)
	settingsController := controllers.NewSettingsController(settingsService)

	router := routes.SetupRouter(
		bookingController,
		availabilityController,
		customerController,
		financeController,
		communicationController,
		authController,
		settingsController,
		loc,
		[]byte(jwtSecret),
	)

	// Reminder sweep runs until shutdown.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	reminderService.Start(sweepCtx, reminderInterval())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func reminderInterval() time.Duration {
	raw := utils.EnvOrDefault("REMINDER_INTERVAL", "5m")
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
