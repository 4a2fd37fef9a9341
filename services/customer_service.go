// services/customer_service.go
package services

import (
	"fmt"
	"time"

	"cleaning-crm/models"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

// GetAll lists every customer with computed booking aggregates.
func (s *CustomerService) GetAll() ([]models.CustomerWithStats, error) {
	var customers []models.Customer
	if err := s.DB.
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_time DESC")
		}).
		Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return withStats(customers), nil
}

// Search matches the query as a substring over name, email, phone and
// address.
func (s *CustomerService) Search(query string) ([]models.CustomerWithStats, error) {
	pattern := "%" + query + "%"
	var customers []models.Customer
	if err := s.DB.
		Where("name LIKE ? OR email LIKE ? OR phone LIKE ? OR address LIKE ?",
			pattern, pattern, pattern, pattern).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("date_time DESC")
		}).
		Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return withStats(customers), nil
}

// withStats derives totalRevenue, lastService, nextService and totalBookings
// from each customer's bookings. Bookings arrive sorted by start descending.
func withStats(customers []models.Customer) []models.CustomerWithStats {
	now := time.Now()
	out := make([]models.CustomerWithStats, 0, len(customers))

	for _, c := range customers {
		stats := models.CustomerWithStats{Customer: c, TotalBookings: len(c.Bookings)}

		for _, b := range c.Bookings {
			stats.TotalRevenue += b.Price
		}
		if len(c.Bookings) > 0 {
			t := c.Bookings[0].DateTime
			stats.LastService = &t
		}
		// bookings are newest-first, so the last future one is the soonest
		for i := range c.Bookings {
			if c.Bookings[i].DateTime.After(now) {
				t := c.Bookings[i].DateTime
				stats.NextService = &t
			}
		}

		stats.Bookings = nil
		out = append(out, stats)
	}
	return out
}

func (s *CustomerService) Create(customer *models.Customer) error {
	if err := s.DB.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *CustomerService) Update(id uint, updates map[string]interface{}) (*models.Customer, error) {
	var customer models.Customer
	if err := s.DB.First(&customer, id).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&customer).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) Delete(id uint) error {
	result := s.DB.Delete(&models.Customer{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
