// controllers/communication_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"cleaning-crm/models"
	"cleaning-crm/services"

	"github.com/gin-gonic/gin"
)

type CommunicationController struct {
	CommunicationSvc *services.CommunicationService
}

func NewCommunicationController(svc *services.CommunicationService) *CommunicationController {
	return &CommunicationController{CommunicationSvc: svc}
}

func (ctrl *CommunicationController) GetCommunications(c *gin.Context) {
	communications, err := ctrl.CommunicationSvc.GetAll()
	if err != nil {
		log.Printf("GetCommunications error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communications"})
		return
	}
	c.JSON(http.StatusOK, communications)
}

func (ctrl *CommunicationController) GetCustomerCommunications(c *gin.Context) {
	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	communications, err := ctrl.CommunicationSvc.GetByCustomer(uint(customerID))
	if err != nil {
		log.Printf("GetCustomerCommunications error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communications"})
		return
	}
	c.JSON(http.StatusOK, communications)
}

// SendCommunication creates a communication record and dispatches it. Email
// sends go out immediately; the stored status reflects the outcome.
func (ctrl *CommunicationController) SendCommunication(c *gin.Context) {
	var input services.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if input.CustomerID == 0 || input.Type == "" || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId, type and content are required"})
		return
	}
	if input.Type != models.CommunicationTypeEmail && input.Type != models.CommunicationTypeSMS {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid communication type"})
		return
	}

	communication, err := ctrl.CommunicationSvc.Create(input)
	if err != nil {
		log.Printf("SendCommunication error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send communication"})
		return
	}

	c.JSON(http.StatusCreated, communication)
}

func (ctrl *CommunicationController) GetStats(c *gin.Context) {
	stats, err := ctrl.CommunicationSvc.GetStats()
	if err != nil {
		log.Printf("GetStats error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communication stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ctrl *CommunicationController) GetFailed(c *gin.Context) {
	failed, err := ctrl.CommunicationSvc.GetFailed()
	if err != nil {
		log.Printf("GetFailed error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch failed communications"})
		return
	}
	c.JSON(http.StatusOK, failed)
}

// RetryCommunication re-sends a failed email communication. Unknown ids give
// 404; SMS and non-failed records give 400.
func (ctrl *CommunicationController) RetryCommunication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid communication id"})
		return
	}

	communication, err := ctrl.CommunicationSvc.Retry(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCommunicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Communication not found"})
			return
		}
		if errors.Is(err, services.ErrRetryNotSupported) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only failed email communications can be retried"})
			return
		}
		log.Printf("RetryCommunication error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retry communication"})
		return
	}

	c.JSON(http.StatusOK, communication)
}
