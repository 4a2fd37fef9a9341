// models/communication.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CommunicationTypeEmail = "email"
	CommunicationTypeSMS   = "sms"

	CommunicationStatusPending = "pending"
	CommunicationStatusSent    = "sent"
	CommunicationStatusFailed  = "failed"
)

type Communication struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Type    string    `gorm:"column:type;size:16" json:"type"`
	Subject string    `gorm:"column:subject;size:255" json:"subject"`
	Content string    `gorm:"column:content;type:text" json:"content"`
	Status  string    `gorm:"column:status;size:16;default:pending" json:"status"`
	SentAt  time.Time `gorm:"column:sent_at" json:"sentAt"`

	CustomerID uint  `gorm:"index;column:customer_id" json:"customerId"`
	BookingID  *uint `gorm:"index;column:booking_id" json:"bookingId,omitempty"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Booking  *Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}
