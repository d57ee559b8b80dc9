// internal/services/dashboard_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemark/stockops-backend/internal/models"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	submissions := []models.StockSubmission{
		{ApprovalStatus: models.ApprovalStatusPending, Status: models.DeliveryStatusPending, CreatedAt: now},
		{ApprovalStatus: models.ApprovalStatusApproved, Status: models.DeliveryStatusDelivered, CreatedAt: now},
		{ApprovalStatus: models.ApprovalStatusApproved, Status: models.DeliveryStatusPending, CreatedAt: yesterday},
		{ApprovalStatus: models.ApprovalStatusDeleted, Status: models.DeliveryStatusPending, CreatedAt: yesterday},
	}

	stats := ComputeStats(submissions, now)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Approved)
	assert.Equal(t, 1, stats.Deleted)
	assert.Equal(t, 1, stats.Delivered)
	assert.Equal(t, 2, stats.Today)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil, time.Now()))
}

func TestTopPartyOrderTotals(t *testing.T) {
	submissions := []models.StockSubmission{
		{Party: "Alpha", OrderQty: decimal.RequireFromString("10")},
		{Party: "Beta", OrderQty: decimal.RequireFromString("30")},
		{Party: "Alpha", OrderQty: decimal.RequireFromString("25")},
		{Party: "Gamma", OrderQty: decimal.RequireFromString("5")},
	}

	chart := TopPartyOrderTotals(submissions, 8)

	require.Len(t, chart, 3)
	assert.Equal(t, "Alpha", chart[0].Party)
	assert.True(t, chart[0].OrderQty.Equal(decimal.RequireFromString("35")))
	assert.Equal(t, "Beta", chart[1].Party)
	assert.Equal(t, "Gamma", chart[2].Party)
}

func TestTopPartyOrderTotalsCapsAtN(t *testing.T) {
	var submissions []models.StockSubmission
	for i := 0; i < 12; i++ {
		submissions = append(submissions, models.StockSubmission{
			Party:    fmt.Sprintf("Party%02d", i),
			OrderQty: decimal.NewFromInt(int64(i + 1)),
		})
	}

	chart := TopPartyOrderTotals(submissions, 8)

	require.Len(t, chart, 8)
	assert.Equal(t, "Party11", chart[0].Party)
	assert.Equal(t, "Party04", chart[7].Party)
}

func TestTopPartyOrderTotalsTieBreaksByName(t *testing.T) {
	submissions := []models.StockSubmission{
		{Party: "Zeta", OrderQty: decimal.RequireFromString("10")},
		{Party: "Alpha", OrderQty: decimal.RequireFromString("10")},
	}

	chart := TopPartyOrderTotals(submissions, 8)

	assert.Equal(t, "Alpha", chart[0].Party)
	assert.Equal(t, "Zeta", chart[1].Party)
}
