// services/reminder_service.go
package services

import (
	"context"
	"log"
	"time"

	"cleaning-crm/models"

	"gorm.io/gorm"
)

// ReminderService periodically emails customers whose booking starts within
// the next hour. The reminder_sent flag is the only idempotency guard: a
// booking is swept at most once, and a single in-process ticker keeps runs
// from overlapping.
type ReminderService struct {
	DB     *gorm.DB
	Mailer Mailer
}

func NewReminderService(db *gorm.DB, mailer Mailer) *ReminderService {
	return &ReminderService{DB: db, Mailer: mailer}
}

// Start runs the sweep on a ticker until the context is cancelled.
func (s *ReminderService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("reminder sweep started (every %s)", interval)
		for {
			select {
			case <-ctx.Done():
				log.Println("reminder sweep stopped")
				return
			case <-ticker.C:
				if n, err := s.Sweep(); err != nil {
					log.Printf("reminder sweep error: %v", err)
				} else if n > 0 {
					log.Printf("reminder sweep sent %d reminder(s)", n)
				}
			}
		}
	}()
}

// Sweep sends a reminder for every unflagged booking starting in (now,
// now+1h] and flags it. A send failure skips the flag so the next run
// retries. Returns the number of reminders sent.
func (s *ReminderService) Sweep() (int, error) {
	now := time.Now()

	var bookings []models.Booking
	if err := s.DB.
		Preload("Customer").
		Where("reminder_sent = ? AND date_time > ? AND date_time < ?",
			false, now, now.Add(time.Hour)).
		Find(&bookings).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, booking := range bookings {
		if err := s.Mailer.SendReminder(booking); err != nil {
			log.Printf("failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}

		if err := s.DB.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("failed to flag reminder for booking %d: %v", booking.ID, err)
			continue
		}

		log.Printf("reminder sent for booking %d", booking.ID)
		sent++
	}
	return sent, nil
}
