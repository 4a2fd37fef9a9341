// services/testutil_test.go
package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cleaning-crm/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Setting{},
		&models.Customer{},
		&models.Booking{},
		&models.ServiceItem{},
		&models.Communication{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fakeCalendar struct {
	busy    []BusyInterval
	events  []EventInput
	failure error
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, input EventInput, customer models.Customer) (*CalendarEvent, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	f.events = append(f.events, input)
	return &CalendarEvent{ID: "evt-1", HTMLLink: "https://calendar.google.com/event?eid=evt-1"}, nil
}

func (f *fakeCalendar) BusyIntervals(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	return f.busy, nil
}

func (f *fakeCalendar) EmbedURL() string {
	return "https://calendar.google.com/calendar/embed?src=test"
}

type fakeMailer struct {
	confirmations int
	reminders     []uint
	sent          []string
	failSend      bool
}

func (f *fakeMailer) SendBookingConfirmation(booking models.Booking, calendarLink string) (string, error) {
	if f.failSend {
		return "", errors.New("smtp unavailable")
	}
	f.confirmations++
	return "<html>confirmation</html>", nil
}

func (f *fakeMailer) SendReminder(booking models.Booking) error {
	if f.failSend {
		return errors.New("smtp unavailable")
	}
	f.reminders = append(f.reminders, booking.ID)
	return nil
}

func (f *fakeMailer) Send(to, subject, html string) error {
	if f.failSend {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}
