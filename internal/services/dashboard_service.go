// internal/services/dashboard_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acemark/stockops-backend/internal/models"
)

// ErrAlreadyDelivered is returned when a row is marked delivered twice.
var ErrAlreadyDelivered = errors.New("submission already delivered")

// recentLimit caps the dashboard listing, newest first.
const recentLimit = 200

// DashboardService backs the office dashboard: stats over recent
// submissions, the top-parties chart, the delivery workflow and per-party
// detail pages.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats are the dashboard headline numbers.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Deleted   int `json:"deleted"`
	Delivered int `json:"delivered"`
	Today     int `json:"today"`
}

// PartyOrderTotal is one bar of the top-parties chart.
type PartyOrderTotal struct {
	Party    string          `json:"party"`
	OrderQty decimal.Decimal `json:"order_qty"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Stats       Stats                    `json:"stats"`
	Submissions []models.StockSubmission `json:"submissions"`
	TopParties  []PartyOrderTotal        `json:"top_parties"`
}

func (s *DashboardService) Overview() (*Overview, error) {
	var submissions []models.StockSubmission
	err := s.db.Order("created_at DESC").Limit(recentLimit).Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	return &Overview{
		Stats:       ComputeStats(submissions, time.Now()),
		Submissions: submissions,
		TopParties:  TopPartyOrderTotals(submissions, 8),
	}, nil
}

// ComputeStats counts submissions by approval state, delivery state and
// today's date.
func ComputeStats(submissions []models.StockSubmission, now time.Time) Stats {
	stats := Stats{Total: len(submissions)}
	today := now.Format("2006-01-02")

	for _, sub := range submissions {
		switch sub.ApprovalStatus {
		case models.ApprovalStatusPending:
			stats.Pending++
		case models.ApprovalStatusApproved:
			stats.Approved++
		case models.ApprovalStatusDeleted:
			stats.Deleted++
		}

		if sub.Status == models.DeliveryStatusDelivered {
			stats.Delivered++
		}

		if sub.CreatedAt.Format("2006-01-02") == today {
			stats.Today++
		}
	}

	return stats
}

// TopPartyOrderTotals sums order quantities per party and returns the top
// n, largest first.
func TopPartyOrderTotals(submissions []models.StockSubmission, n int) []PartyOrderTotal {
	totals := make(map[string]decimal.Decimal)
	for _, sub := range submissions {
		totals[sub.Party] = totals[sub.Party].Add(sub.OrderQty)
	}

	chart := make([]PartyOrderTotal, 0, len(totals))
	for party, qty := range totals {
		chart = append(chart, PartyOrderTotal{Party: party, OrderQty: qty})
	}

	sort.Slice(chart, func(i, j int) bool {
		if !chart[i].OrderQty.Equal(chart[j].OrderQty) {
			return chart[i].OrderQty.GreaterThan(chart[j].OrderQty)
		}
		return chart[i].Party < chart[j].Party
	})

	if len(chart) > n {
		chart = chart[:n]
	}

	return chart
}

// PendingForDelivery lists rows still awaiting delivery: delivery status
// pending, audit-deleted rows excluded.
func (s *DashboardService) PendingForDelivery() ([]models.StockSubmission, error) {
	var submissions []models.StockSubmission
	err := s.db.
		Where("status = ? AND approval_status <> ?", models.DeliveryStatusPending, models.ApprovalStatusDeleted).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending deliveries: %w", err)
	}
	return submissions, nil
}

// MarkDelivered moves one submission from pending to delivered and stamps
// the delivery time.
func (s *DashboardService) MarkDelivered(id uuid.UUID) (*models.StockSubmission, error) {
	var sub models.StockSubmission
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	if sub.Status == models.DeliveryStatusDelivered {
		return nil, ErrAlreadyDelivered
	}

	now := time.Now()
	sub.Status = models.DeliveryStatusDelivered
	sub.DeliveredAt = &now

	err := s.db.Model(&sub).Updates(map[string]interface{}{
		"status":       sub.Status,
		"delivered_at": sub.DeliveredAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to mark delivered: %w", err)
	}

	return &sub, nil
}

// GetSubmission loads one submission by id.
func (s *DashboardService) GetSubmission(id uuid.UUID) (*models.StockSubmission, error) {
	var sub models.StockSubmission
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return &sub, nil
}

// PartySummary is the per-party detail payload.
type PartySummary struct {
	Party       string                   `json:"party"`
	Total       int                      `json:"total"`
	Pending     int                      `json:"pending"`
	Delivered   int                      `json:"delivered"`
	Submissions []models.StockSubmission `json:"submissions"`
}

// PartyOverview lists every submission for one party, newest first, with
// delivery counts.
func (s *DashboardService) PartyOverview(party string) (*PartySummary, error) {
	var submissions []models.StockSubmission
	err := s.db.Where("party = ?", party).Order("created_at DESC").Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load party submissions: %w", err)
	}

	summary := &PartySummary{
		Party:       party,
		Total:       len(submissions),
		Submissions: submissions,
	}
	for _, sub := range submissions {
		switch sub.Status {
		case models.DeliveryStatusDelivered:
			summary.Delivered++
		default:
			summary.Pending++
		}
	}

	return summary, nil
}
