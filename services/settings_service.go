// services/settings_service.go
package services

import (
	"cleaning-crm/models"

	"gorm.io/gorm"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the single settings row, creating an empty one if the table
// has never been seeded.
func (s *SettingsService) Get() (*models.Setting, error) {
	var setting models.Setting
	if err := s.DB.First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			setting = models.Setting{}
			if err := s.DB.Create(&setting).Error; err != nil {
				return nil, err
			}
			return &setting, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (s *SettingsService) Update(input *models.Setting) (*models.Setting, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"company_name": input.CompanyName,
		"phone_number": input.PhoneNumber,
		"address":      input.Address,
		"base_rate":    input.BaseRate,
	}
	if len(input.EmailSettings) > 0 {
		updates["email_settings"] = input.EmailSettings
	}
	if len(input.WorkingHours) > 0 {
		updates["working_hours"] = input.WorkingHours
	}

	if err := s.DB.Model(current).Updates(updates).Error; err != nil {
		return nil, err
	}
	return current, nil
}
