// internal/services/review_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemark/stockops-backend/internal/models"
)

func pendingSubmission(product, orderQty string) models.StockSubmission {
	return models.StockSubmission{
		ID:             uuid.New(),
		Party:          "Gupta Traders",
		ProductName:    product,
		OrderQty:       decimal.RequireFromString(orderQty),
		UniqueKey:      uuid.New(),
		ApprovalStatus: models.ApprovalStatusPending,
		Status:         models.DeliveryStatusPending,
	}
}

func TestApplyOrderEditsStampsApproval(t *testing.T) {
	pending := []models.StockSubmission{
		pendingSubmission("Pen", "10"),
		pendingSubmission("Glue", "4"),
	}
	now := time.Now()

	updates := ApplyOrderEdits(pending, nil, now)

	require.Len(t, updates, 2)
	for _, sub := range updates {
		assert.Equal(t, models.ApprovalStatusApproved, sub.ApprovalStatus)
		require.NotNil(t, sub.ApprovedAt)
		assert.Equal(t, now, *sub.ApprovedAt)
	}
	assert.True(t, updates[0].OrderQty.Equal(decimal.RequireFromString("10")))
}

func TestApplyOrderEditsSubstitutesStagedQuantity(t *testing.T) {
	pending := []models.StockSubmission{
		pendingSubmission("Pen", "10"),
		pendingSubmission("Glue", "4"),
	}
	edits := map[uuid.UUID]decimal.Decimal{
		pending[0].ID: decimal.RequireFromString("7.125"),
	}

	updates := ApplyOrderEdits(pending, edits, time.Now())

	assert.True(t, updates[0].OrderQty.Equal(decimal.RequireFromString("7.13")),
		"got %s", updates[0].OrderQty)
	assert.True(t, updates[1].OrderQty.Equal(decimal.RequireFromString("4")))
}

func TestApplyOrderEditsIgnoresUnknownAndNegative(t *testing.T) {
	pending := []models.StockSubmission{pendingSubmission("Pen", "10")}
	edits := map[uuid.UUID]decimal.Decimal{
		uuid.New():    decimal.RequireFromString("99"),
		pending[0].ID: decimal.RequireFromString("-5"),
	}

	updates := ApplyOrderEdits(pending, edits, time.Now())

	assert.True(t, updates[0].OrderQty.Equal(decimal.RequireFromString("10")))
}
