// services/finance_service.go
package services

import (
	"fmt"
	"time"

	"cleaning-crm/models"

	"gorm.io/gorm"
)

type FinanceService struct {
	DB *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{DB: db}
}

// Overview summarizes the current calendar month plus global forward/backward
// booking counts.
type Overview struct {
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	TotalBookings     int64   `json:"totalBookings"`
	UpcomingBookings  int64   `json:"upcomingBookings"`
	CompletedBookings int64   `json:"completedBookings"`
}

func (s *FinanceService) GetOverview() (*Overview, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var overview Overview

	if err := s.DB.Model(&models.Booking{}).
		Where("date_time >= ? AND date_time <= ?", startOfMonth, endOfMonth).
		Count(&overview.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count monthly bookings: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("date_time > ?", now).
		Count(&overview.UpcomingBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count upcoming bookings: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("date_time < ?", now).
		Count(&overview.CompletedBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed bookings: %w", err)
	}

	var revenue *float64
	if err := s.DB.Model(&models.Booking{}).
		Where("date_time >= ? AND date_time <= ?", startOfMonth, endOfMonth).
		Select("SUM(price)").
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	if revenue != nil {
		overview.MonthlyRevenue = *revenue
	}

	return &overview, nil
}

// GetTransactions returns the ten most recent bookings with customers.
func (s *FinanceService) GetTransactions() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Order("date_time DESC").
		Limit(10).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return list, nil
}

// RevenuePoint is one bucket of the revenue time series. The Month field
// carries the period label for every granularity; the charts key off it.
type RevenuePoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// GetRevenueGraph buckets booking revenue by the requested granularity over
// a trailing window: 12 weeks for week, 12 months for month/quarter, 5 years
// for year.
func (s *FinanceService) GetRevenueGraph(timeFrame string) ([]RevenuePoint, error) {
	endDate := time.Now()
	var startDate time.Time

	switch timeFrame {
	case "week":
		startDate = endDate.AddDate(0, 0, -84)
	case "month", "quarter":
		startDate = endDate.AddDate(0, -11, 0)
	case "year":
		startDate = endDate.AddDate(-4, 0, 0)
	default:
		timeFrame = "month"
		startDate = endDate.AddDate(0, -11, 0)
	}

	var bookings []models.Booking
	if err := s.DB.
		Where("date_time >= ? AND date_time <= ?", startDate, endDate).
		Order("date_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings for revenue graph: %w", err)
	}

	return AggregateRevenue(bookings, timeFrame), nil
}

// AggregateRevenue sums booking prices per period key in first-seen order.
// The input must be sorted by date ascending, which makes first-seen order
// chronological.
func AggregateRevenue(bookings []models.Booking, timeFrame string) []RevenuePoint {
	index := make(map[string]int)
	points := make([]RevenuePoint, 0)

	for _, b := range bookings {
		key := PeriodKey(b.DateTime, timeFrame)
		if i, ok := index[key]; ok {
			points[i].Amount += b.Price
			continue
		}
		index[key] = len(points)
		points = append(points, RevenuePoint{Month: key, Amount: b.Price})
	}

	return points
}

// PeriodKey derives the bucket label for a timestamp.
//
// Week numbering is the week-of-year variant:
// ceil((dayOfYear + weekdayOfJan1 + 1) / 7) with Sunday as weekday 0.
func PeriodKey(t time.Time, timeFrame string) string {
	switch timeFrame {
	case "week":
		jan1 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
		week := (t.YearDay() + int(jan1.Weekday()) + 7) / 7
		return fmt.Sprintf("Week %d", week)
	case "quarter":
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, t.Year())
	case "year":
		return fmt.Sprintf("%d", t.Year())
	default: // month
		return t.Format("Jan 2006")
	}
}

// RevenueRow is the per-booking export consumed by the finances page.
type RevenueRow struct {
	Month        string  `json:"month"`
	Amount       float64 `json:"amount"`
	CleaningType string  `json:"cleaningType"`
	CustomerID   string  `json:"customerId"`
}

func (s *FinanceService) GetRevenueData() ([]RevenueRow, error) {
	var bookings []models.Booking
	if err := s.DB.
		Preload("Customer").
		Order("date_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve revenue data: %w", err)
	}

	rows := make([]RevenueRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, RevenueRow{
			Month:        b.DateTime.Format("Jan 2006"),
			Amount:       b.Price,
			CleaningType: b.CleaningType,
			CustomerID:   fmt.Sprintf("%d", b.CustomerID),
		})
	}
	return rows, nil
}

// ServiceMetric aggregates revenue and volume per cleaning type.
type ServiceMetric struct {
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
	Count        int64   `json:"count"`
	AverageValue float64 `json:"averageValue"`
}

func (s *FinanceService) GetServiceMetrics() ([]ServiceMetric, error) {
	var metrics []ServiceMetric
	if err := s.DB.Model(&models.Booking{}).
		Select("cleaning_type AS name, SUM(price) AS revenue, COUNT(*) AS count").
		Group("cleaning_type").
		Order("revenue DESC").
		Scan(&metrics).Error; err != nil {
		return nil, fmt.Errorf("failed to compute service metrics: %w", err)
	}

	for i := range metrics {
		if metrics[i].Count > 0 {
			metrics[i].AverageValue = metrics[i].Revenue / float64(metrics[i].Count)
		}
	}
	return metrics, nil
}
