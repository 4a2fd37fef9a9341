// controllers/finance_controller.go
package controllers

import (
	"log"
	"net/http"

	"cleaning-crm/services"

	"github.com/gin-gonic/gin"
)

type FinanceController struct {
	FinanceSvc *services.FinanceService
}

func NewFinanceController(svc *services.FinanceService) *FinanceController {
	return &FinanceController{FinanceSvc: svc}
}

func (ctrl *FinanceController) GetOverview(c *gin.Context) {
	overview, err := ctrl.FinanceSvc.GetOverview()
	if err != nil {
		log.Printf("GetOverview error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch finance overview"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (ctrl *FinanceController) GetTransactions(c *gin.Context) {
	transactions, err := ctrl.FinanceSvc.GetTransactions()
	if err != nil {
		log.Printf("GetTransactions error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetRevenueGraph buckets completed-booking revenue by the requested
// timeFrame (week, month, quarter or year; month when absent).
func (ctrl *FinanceController) GetRevenueGraph(c *gin.Context) {
	timeFrame := c.DefaultQuery("timeFrame", "month")

	points, err := ctrl.FinanceSvc.GetRevenueGraph(timeFrame)
	if err != nil {
		log.Printf("GetRevenueGraph error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue graph"})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (ctrl *FinanceController) GetRevenueData(c *gin.Context) {
	data, err := ctrl.FinanceSvc.GetRevenueData()
	if err != nil {
		log.Printf("GetRevenueData error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (ctrl *FinanceController) GetServiceMetrics(c *gin.Context) {
	metrics, err := ctrl.FinanceSvc.GetServiceMetrics()
	if err != nil {
		log.Printf("GetServiceMetrics error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
