// models/service_item.go
package models

import "time"

// ServiceItem is an add-on task owned by exactly one booking. Rows are created
// together with the parent booking and never outlive it.
type ServiceItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	BookingID   uint   `gorm:"index;column:booking_id" json:"bookingId"`
	Name        string `gorm:"column:name;size:255" json:"name"`
	Description string `gorm:"column:description;size:512" json:"description,omitempty"`
	Frequency   string `gorm:"column:frequency;size:64" json:"frequency,omitempty"`
}
