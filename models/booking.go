// models/booking.go
package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Cleaning types accepted on booking creation.
const (
	CleaningTypeHome    = "Home"
	CleaningTypeOffice  = "Office"
	CleaningTypeMoveOut = "Move-out"
)

// DefaultDurationHours is the fallback when a request carries no duration.
const DefaultDurationHours = 2

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode      string    `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	Area               float64   `gorm:"column:area" json:"area"`
	DateTime           time.Time `gorm:"column:date_time;index" json:"dateTime"`
	Price              float64   `gorm:"column:price" json:"price"`
	CleaningType       string    `gorm:"column:cleaning_type;size:32" json:"cleaningType"`
	Duration           int       `gorm:"column:duration" json:"duration"`
	IsBusinessCustomer bool      `gorm:"column:is_business_customer;default:false" json:"isBusinessCustomer"`
	ReminderSent       bool      `gorm:"column:reminder_sent;default:false" json:"reminderSent"`

	CustomerID uint `gorm:"index;column:customer_id" json:"customerId"`

	Customer     Customer      `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	ServiceItems []ServiceItem `gorm:"foreignKey:BookingID" json:"serviceItems"`
}

// Status is derived from the scheduled start, never stored. A booking in the
// future is pending; once the start has passed it counts as completed.
func (b *Booking) Status() string {
	if b.DateTime.After(time.Now()) {
		return "pending"
	}
	return "completed"
}

// EndTime is the calendar interval end: start + duration hours, with the
// two-hour fallback when duration is missing or zero.
func (b *Booking) EndTime() time.Time {
	d := b.Duration
	if d <= 0 {
		d = DefaultDurationHours
	}
	return b.DateTime.Add(time.Duration(d) * time.Hour)
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		Status string `json:"status"`
	}{alias(b), b.Status()})
}
