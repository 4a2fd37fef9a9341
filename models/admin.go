// models/admin.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"column:full_name;size:255" json:"fullName"`
	Email    string `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Password string `gorm:"column:password;size:255" json:"-"`
}
