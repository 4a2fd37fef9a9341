// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cleaning-crm/models"
	"cleaning-crm/utils"

	"gorm.io/gorm"
)

// CustomerDetails is the customer part of a booking request.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ServiceItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
}

// CreateBookingRequest is the wire shape accepted by POST /api/bookings.
// It is validated by middleware before the workflow runs.
type CreateBookingRequest struct {
	Area               float64            `json:"area"`
	DateTime           string             `json:"dateTime"`
	CustomerDetails    CustomerDetails    `json:"customerDetails"`
	Price              float64            `json:"price"`
	CleaningType       string             `json:"cleaningType"`
	IsBusinessCustomer bool               `json:"isBusinessCustomer"`
	ServiceItems       []ServiceItemInput `json:"serviceItems"`
	Duration           int                `json:"duration"`
}

// CreateBookingResult is what the create endpoint returns: the persisted
// booking with relations plus the provider event reference.
type CreateBookingResult struct {
	Booking       models.Booking
	CalendarEvent *CalendarEvent
}

// BookingService runs the booking workflow. Calendar and Mailer are injected
// so the workflow never touches provider credentials directly.
type BookingService struct {
	DB       *gorm.DB
	Calendar Calendar
	Mailer   Mailer
	Loc      *time.Location
}

func NewBookingService(db *gorm.DB, cal Calendar, mailer Mailer, loc *time.Location) *BookingService {
	return &BookingService{DB: db, Calendar: cal, Mailer: mailer, Loc: loc}
}

// Create runs the full workflow: upsert customer, persist booking + items in
// one transaction, create the calendar event, send the confirmation email.
//
// Once the transaction commits there is no compensation: a calendar or mail
// failure surfaces as a workflow error while the booking row stays persisted.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	startTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, fmt.Errorf("validation: invalid dateTime: %w", err)
	}
	startTime = startTime.In(s.Loc)

	items := make([]models.ServiceItem, 0, len(req.ServiceItems))
	for _, item := range req.ServiceItems {
		items = append(items, models.ServiceItem{
			Name:        item.Name,
			Description: item.Description,
			Frequency:   item.Frequency,
		})
	}

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := upsertCustomerByEmail(tx, req.CustomerDetails)
		if err != nil {
			return err
		}

		booking := models.Booking{
			ReferenceCode:      utils.NewBookingReference(startTime),
			Area:               req.Area,
			DateTime:           startTime,
			Price:              req.Price,
			CleaningType:       req.CleaningType,
			Duration:           req.Duration,
			IsBusinessCustomer: req.IsBusinessCustomer,
			ReminderSent:       false,
			CustomerID:         customer.ID,
			ServiceItems:       items,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		bookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var booking models.Booking
	if err := s.DB.Preload("Customer").Preload("ServiceItems").First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	event, err := s.Calendar.CreateEvent(ctx, EventInput{
		StartTime:          booking.DateTime,
		EndTime:            booking.EndTime(),
		Area:               booking.Area,
		CleaningType:       booking.CleaningType,
		Price:              booking.Price,
		Duration:           booking.Duration,
		ServiceItems:       booking.ServiceItems,
		IsBusinessCustomer: booking.IsBusinessCustomer,
	}, booking.Customer)
	if err != nil {
		return nil, err
	}

	html, mailErr := s.Mailer.SendBookingConfirmation(booking, event.HTMLLink)
	s.recordConfirmation(booking, html, mailErr)
	if mailErr != nil {
		return nil, mailErr
	}

	return &CreateBookingResult{Booking: booking, CalendarEvent: event}, nil
}

// upsertCustomerByEmail updates name/phone/address when the email exists,
// creates the row otherwise. Re-submitting the same email never duplicates a
// customer.
func upsertCustomerByEmail(tx *gorm.DB, details CustomerDetails) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("email = ?", details.Email).First(&customer).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":    details.Name,
			"phone":   details.Phone,
			"address": details.Address,
		}
		if err := tx.Model(&customer).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
		customer.Name = details.Name
		customer.Phone = details.Phone
		customer.Address = details.Address
		return &customer, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = models.Customer{
			Name:    details.Name,
			Email:   details.Email,
			Phone:   details.Phone,
			Address: details.Address,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
		return &customer, nil

	default:
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
}

// recordConfirmation logs the outgoing confirmation as a communication row.
// Failure to log never fails the workflow.
func (s *BookingService) recordConfirmation(booking models.Booking, html string, mailErr error) {
	status := models.CommunicationStatusSent
	if mailErr != nil {
		status = models.CommunicationStatusFailed
	}
	bookingID := booking.ID
	comm := models.Communication{
		Type:       models.CommunicationTypeEmail,
		Subject:    "Booking Confirmation",
		Content:    html,
		Status:     status,
		SentAt:     sentAtNow(),
		CustomerID: booking.CustomerID,
		BookingID:  &bookingID,
	}
	if err := s.DB.Create(&comm).Error; err != nil {
		log.Printf("warning: failed to record confirmation communication: %v", err)
	}
}

// GetAllWithRelations lists every booking with customer and service items,
// ordered by scheduled start ascending.
func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("ServiceItems").
		Order("date_time ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}

	for i := range list {
		if list[i].ServiceItems == nil {
			list[i].ServiceItems = []models.ServiceItem{}
		}
	}
	return list, nil
}

// GetByDateRange returns bookings scheduled within [start, end].
func (s *BookingService) GetByDateRange(start, end time.Time) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("ServiceItems").
		Where("date_time >= ? AND date_time <= ?", start, end).
		Order("date_time ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings in range: %w", err)
	}
	return list, nil
}

// DashboardStats summarizes the whole booking history for the CRM landing
// page.
type DashboardStats struct {
	TotalBookings       int64   `json:"totalBookings"`
	TotalRevenue        float64 `json:"totalRevenue"`
	UpcomingBookings    int64   `json:"upcomingBookings"`
	AverageBookingValue float64 `json:"averageBookingValue"`
}

func (s *BookingService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	var revenue *float64
	if err := s.DB.Model(&models.Booking{}).Select("SUM(price)").Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("date_time > ?", time.Now()).
		Count(&stats.UpcomingBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count upcoming bookings: %w", err)
	}

	if stats.TotalBookings > 0 {
		stats.AverageBookingValue = stats.TotalRevenue / float64(stats.TotalBookings)
	}
	return &stats, nil
}

// GetRecentTransactions returns the five most recent bookings with their
// customers.
func (s *BookingService) GetRecentTransactions() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Order("date_time DESC").
		Limit(5).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recent transactions: %w", err)
	}
	return list, nil
}
