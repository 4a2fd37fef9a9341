// models/setting.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting is the single-row company configuration edited from the CRM
// settings page. EmailSettings and WorkingHours are free-form JSON blobs
// owned by the frontend.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`

	CompanyName   string         `gorm:"column:company_name;size:255" json:"companyName"`
	PhoneNumber   string         `gorm:"column:phone_number;size:64" json:"phoneNumber"`
	Address       string         `gorm:"column:address;size:512" json:"address"`
	BaseRate      float64        `gorm:"column:base_rate" json:"baseRate"`
	EmailSettings datatypes.JSON `gorm:"column:email_settings" json:"emailSettings,omitempty"`
	WorkingHours  datatypes.JSON `gorm:"column:working_hours" json:"workingHours,omitempty"`
}
