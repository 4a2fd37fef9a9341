// models/customer.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"column:name;size:255" json:"name"`
	Email   string `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Phone   string `gorm:"column:phone;size:64" json:"phone"`
	Address string `gorm:"column:address;size:512" json:"address"`

	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"bookings,omitempty"`
}

// CustomerWithStats is the list/search projection: the base record plus
// aggregates computed from the customer's bookings.
type CustomerWithStats struct {
	Customer
	TotalRevenue  float64    `json:"totalRevenue"`
	LastService   *time.Time `json:"lastService"`
	NextService   *time.Time `json:"nextService"`
	TotalBookings int        `json:"totalBookings"`
}
