// services/booking_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cleaning-crm/models"
)

func newTestBookingService(t *testing.T) (*BookingService, *fakeCalendar, *fakeMailer) {
	t.Helper()
	db := openTestDB(t)
	cal := &fakeCalendar{}
	mailer := &fakeMailer{}
	return NewBookingService(db, cal, mailer, time.UTC), cal, mailer
}

func validRequest(start time.Time) CreateBookingRequest {
	return CreateBookingRequest{
		Area:     85,
		DateTime: start.Format(time.RFC3339),
		CustomerDetails: CustomerDetails{
			Name:    "Grace Hopper",
			Email:   "grace@example.com",
			Phone:   "+44 20 7946 0958",
			Address: "1 Navy Way, London",
		},
		Price:        120,
		CleaningType: models.CleaningTypeHome,
		Duration:     3,
		ServiceItems: []ServiceItemInput{
			{Name: "Window cleaning", Frequency: "once"},
		},
	}
}

func TestCreateBookingPersistsEverything(t *testing.T) {
	svc, cal, mailer := newTestBookingService(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	result, err := svc.Create(context.Background(), validRequest(start))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result.Booking.ID == 0 {
		t.Error("booking was not persisted")
	}
	if result.Booking.ReferenceCode == "" {
		t.Error("booking has no reference code")
	}
	if result.Booking.Customer.Email != "grace@example.com" {
		t.Errorf("customer email %q", result.Booking.Customer.Email)
	}
	if len(result.Booking.ServiceItems) != 1 || result.Booking.ServiceItems[0].Name != "Window cleaning" {
		t.Errorf("service items %+v", result.Booking.ServiceItems)
	}
	if result.CalendarEvent.ID != "evt-1" {
		t.Errorf("calendar event %+v", result.CalendarEvent)
	}
	if len(cal.events) != 1 {
		t.Fatalf("expected 1 calendar event, got %d", len(cal.events))
	}
	if got := cal.events[0].EndTime.Sub(cal.events[0].StartTime); got != 3*time.Hour {
		t.Errorf("event span %s, want 3h", got)
	}
	if mailer.confirmations != 1 {
		t.Errorf("confirmations sent %d, want 1", mailer.confirmations)
	}

	// The confirmation is logged as a sent communication.
	var comms []models.Communication
	if err := svc.DB.Find(&comms).Error; err != nil {
		t.Fatalf("load communications: %v", err)
	}
	if len(comms) != 1 || comms[0].Status != models.CommunicationStatusSent {
		t.Errorf("communications %+v, want one sent record", comms)
	}
}

func TestCreateBookingUpsertsCustomerByEmail(t *testing.T) {
	svc, _, _ := newTestBookingService(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	if _, err := svc.Create(context.Background(), validRequest(start)); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Same email, new phone: the existing row is updated, not duplicated.
	second := validRequest(start.Add(24 * time.Hour))
	second.CustomerDetails.Phone = "+44 20 0000 0000"
	if _, err := svc.Create(context.Background(), second); err != nil {
		t.Fatalf("second Create: %v", err)
	}

	var customerCount, bookingCount int64
	svc.DB.Model(&models.Customer{}).Count(&customerCount)
	svc.DB.Model(&models.Booking{}).Count(&bookingCount)

	if customerCount != 1 {
		t.Errorf("customer count %d, want 1", customerCount)
	}
	if bookingCount != 2 {
		t.Errorf("booking count %d, want 2", bookingCount)
	}

	var customer models.Customer
	if err := svc.DB.Where("email = ?", "grace@example.com").First(&customer).Error; err != nil {
		t.Fatalf("load customer: %v", err)
	}
	if customer.Phone != "+44 20 0000 0000" {
		t.Errorf("customer phone %q, not updated", customer.Phone)
	}
}

func TestCreateBookingDurationFallback(t *testing.T) {
	svc, cal, _ := newTestBookingService(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	req := validRequest(start)
	req.Duration = 0
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got := cal.events[0].EndTime.Sub(cal.events[0].StartTime); got != 2*time.Hour {
		t.Errorf("event span %s, want the 2h fallback", got)
	}
}

func TestCreateBookingCalendarFailureKeepsBooking(t *testing.T) {
	svc, cal, mailer := newTestBookingService(t)
	cal.failure = errors.New("calendar unreachable")
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	_, err := svc.Create(context.Background(), validRequest(start))
	if err == nil {
		t.Fatal("expected an error when the calendar fails")
	}

	// No compensation after commit: the booking row stays.
	var bookingCount int64
	svc.DB.Model(&models.Booking{}).Count(&bookingCount)
	if bookingCount != 1 {
		t.Errorf("booking count %d, want 1", bookingCount)
	}
	if mailer.confirmations != 0 {
		t.Errorf("no confirmation should go out after a calendar failure, got %d", mailer.confirmations)
	}
}

func TestCreateBookingMailFailureRecordsFailedCommunication(t *testing.T) {
	svc, _, mailer := newTestBookingService(t)
	mailer.failSend = true
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	_, err := svc.Create(context.Background(), validRequest(start))
	if err == nil {
		t.Fatal("expected an error when the confirmation mail fails")
	}

	var comms []models.Communication
	if err := svc.DB.Find(&comms).Error; err != nil {
		t.Fatalf("load communications: %v", err)
	}
	if len(comms) != 1 || comms[0].Status != models.CommunicationStatusFailed {
		t.Errorf("communications %+v, want one failed record", comms)
	}
}

func TestCreateBookingInvalidDateTime(t *testing.T) {
	svc, _, _ := newTestBookingService(t)

	req := validRequest(time.Now())
	req.DateTime = "tomorrow at noon"
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("expected an error for an unparseable dateTime")
	}
}

func TestGetDashboardStats(t *testing.T) {
	svc, _, _ := newTestBookingService(t)

	customer := models.Customer{Name: "Ada", Email: "ada@example.com"}
	if err := svc.DB.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	now := time.Now()
	bookings := []models.Booking{
		{ReferenceCode: "BK-A", Price: 100, DateTime: now.Add(-24 * time.Hour), CustomerID: customer.ID},
		{ReferenceCode: "BK-B", Price: 200, DateTime: now.Add(24 * time.Hour), CustomerID: customer.ID},
	}
	if err := svc.DB.Create(&bookings).Error; err != nil {
		t.Fatalf("create bookings: %v", err)
	}

	stats, err := svc.GetDashboardStats()
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.TotalBookings != 2 || stats.TotalRevenue != 300 {
		t.Errorf("stats %+v, want 2 bookings / 300 revenue", stats)
	}
	if stats.UpcomingBookings != 1 {
		t.Errorf("upcoming %d, want 1", stats.UpcomingBookings)
	}
	if stats.AverageBookingValue != 150 {
		t.Errorf("average %v, want 150", stats.AverageBookingValue)
	}
}
