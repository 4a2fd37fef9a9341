// services/communication_service.go
package services

import (
	"errors"
	"fmt"

	"cleaning-crm/models"

	"gorm.io/gorm"
)

var (
	ErrCommunicationNotFound = errors.New("communication_not_found")
	ErrRetryNotSupported     = errors.New("retry_not_supported")
)

// CommunicationService tracks outgoing customer messaging and replays failed
// emails.
type CommunicationService struct {
	DB     *gorm.DB
	Mailer Mailer
}

func NewCommunicationService(db *gorm.DB, mailer Mailer) *CommunicationService {
	return &CommunicationService{DB: db, Mailer: mailer}
}

func (s *CommunicationService) GetAll() ([]models.Communication, error) {
	var list []models.Communication
	if err := s.DB.
		Preload("Customer").
		Preload("Booking").
		Order("sent_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve communications: %w", err)
	}
	return list, nil
}

func (s *CommunicationService) GetByCustomer(customerID uint) ([]models.Communication, error) {
	var list []models.Communication
	if err := s.DB.
		Where("customer_id = ?", customerID).
		Preload("Booking").
		Order("sent_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customer communications: %w", err)
	}
	return list, nil
}

// CreateInput is the POST /api/communications body.
type CreateInput struct {
	Type       string `json:"type"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	CustomerID uint   `json:"customerId"`
	BookingID  *uint  `json:"bookingId,omitempty"`
}

// Create persists the communication and, for emails, dispatches it right
// away. The row moves pending -> sent/failed with the send outcome.
func (s *CommunicationService) Create(input CreateInput) (*models.Communication, error) {
	comm := models.Communication{
		Type:       input.Type,
		Subject:    input.Subject,
		Content:    input.Content,
		Status:     models.CommunicationStatusPending,
		SentAt:     sentAtNow(),
		CustomerID: input.CustomerID,
		BookingID:  input.BookingID,
	}
	if err := s.DB.Create(&comm).Error; err != nil {
		return nil, fmt.Errorf("failed to create communication: %w", err)
	}

	if err := s.DB.Preload("Customer").Preload("Booking").First(&comm, comm.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload communication: %w", err)
	}

	if comm.Type == models.CommunicationTypeEmail {
		status := models.CommunicationStatusSent
		if err := s.Mailer.Send(comm.Customer.Email, comm.Subject, comm.Content); err != nil {
			status = models.CommunicationStatusFailed
		}
		if err := s.DB.Model(&comm).Update("status", status).Error; err != nil {
			return nil, fmt.Errorf("failed to update communication status: %w", err)
		}
		comm.Status = status
	}

	return &comm, nil
}

// Stats summarizes messaging volume and delivery for the communications page.
type CommunicationStats struct {
	TotalEmails          int64                  `json:"totalEmails"`
	TotalSMS             int64                  `json:"totalSMS"`
	RecentCommunications []models.Communication `json:"recentCommunications"`
	DeliveryRate         float64                `json:"deliveryRate"`
}

func (s *CommunicationService) GetStats() (*CommunicationStats, error) {
	var stats CommunicationStats

	if err := s.DB.Model(&models.Communication{}).
		Where("type = ?", models.CommunicationTypeEmail).
		Count(&stats.TotalEmails).Error; err != nil {
		return nil, fmt.Errorf("failed to count emails: %w", err)
	}
	if err := s.DB.Model(&models.Communication{}).
		Where("type = ?", models.CommunicationTypeSMS).
		Count(&stats.TotalSMS).Error; err != nil {
		return nil, fmt.Errorf("failed to count sms: %w", err)
	}

	if err := s.DB.
		Preload("Customer").
		Preload("Booking").
		Order("sent_at DESC").
		Limit(10).
		Find(&stats.RecentCommunications).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent communications: %w", err)
	}

	var total, sent int64
	if err := s.DB.Model(&models.Communication{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count communications: %w", err)
	}
	if err := s.DB.Model(&models.Communication{}).
		Where("status = ?", models.CommunicationStatusSent).
		Count(&sent).Error; err != nil {
		return nil, fmt.Errorf("failed to count sent communications: %w", err)
	}
	if total > 0 {
		stats.DeliveryRate = float64(sent) / float64(total) * 100
	}

	return &stats, nil
}

func (s *CommunicationService) GetFailed() ([]models.Communication, error) {
	var list []models.Communication
	if err := s.DB.
		Where("status = ?", models.CommunicationStatusFailed).
		Preload("Customer").
		Preload("Booking").
		Order("sent_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve failed communications: %w", err)
	}
	return list, nil
}

// Retry re-sends a failed email. Only email communications can be retried.
func (s *CommunicationService) Retry(id uint) (*models.Communication, error) {
	var comm models.Communication
	if err := s.DB.Preload("Customer").First(&comm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunicationNotFound
		}
		return nil, fmt.Errorf("failed to load communication: %w", err)
	}

	if comm.Type != models.CommunicationTypeEmail {
		return nil, ErrRetryNotSupported
	}

	if err := s.Mailer.Send(comm.Customer.Email, comm.Subject, comm.Content); err != nil {
		return nil, fmt.Errorf("failed to retry communication: %w", err)
	}

	if err := s.DB.Model(&comm).Update("status", models.CommunicationStatusSent).Error; err != nil {
		return nil, fmt.Errorf("failed to update communication status: %w", err)
	}
	comm.Status = models.CommunicationStatusSent

	if err := s.DB.Preload("Customer").Preload("Booking").First(&comm, comm.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload communication: %w", err)
	}
	return &comm, nil
}
