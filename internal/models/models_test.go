// internal/models/models_test.go
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionStatusIsSpecial(t *testing.T) {
	assert.False(t, ActionStatusNone.IsSpecial())
	assert.True(t, ActionStatusNotRequired.IsSpecial())
	assert.True(t, ActionStatusDuplicate.IsSpecial())
}

func TestActionStatusValid(t *testing.T) {
	assert.True(t, ActionStatusNone.Valid())
	assert.True(t, ActionStatusNotRequired.Valid())
	assert.True(t, ActionStatusDuplicate.Valid())
	assert.False(t, ActionStatus("Maybe").Valid())
}

func TestLabelForRating(t *testing.T) {
	assert.Equal(t, "Poor", LabelForRating(1))
	assert.Equal(t, "Average", LabelForRating(2))
	assert.Equal(t, "Good", LabelForRating(3))
	assert.Equal(t, "Best", LabelForRating(4))
	assert.Equal(t, "Excellence", LabelForRating(5))
	assert.Equal(t, "", LabelForRating(0))
	assert.Equal(t, "", LabelForRating(6))
}

func TestAuditCopy(t *testing.T) {
	approved := time.Now().Add(-time.Hour)
	original := StockSubmission{
		ID:             uuid.New(),
		Party:          "Gupta Traders",
		ProductName:    "Pen",
		CurrentQty:     decimal.RequireFromString("5"),
		OrderQty:       decimal.RequireFromString("10"),
		Unit:           "pcs",
		PhotoURL:       "https://cdn/photo.jpg",
		UniqueKey:      uuid.New(),
		ApprovalStatus: ApprovalStatusPending,
		Status:         DeliveryStatusPending,
		ApprovedAt:     &approved,
	}

	now := time.Now()
	audit := original.AuditCopy(now)

	assert.Equal(t, uuid.Nil, audit.ID)
	assert.Equal(t, ApprovalStatusDeleted, audit.ApprovalStatus)
	require.NotNil(t, audit.DeletedAt)
	assert.Equal(t, now, *audit.DeletedAt)

	assert.Equal(t, original.Party, audit.Party)
	assert.Equal(t, original.ProductName, audit.ProductName)
	assert.True(t, audit.OrderQty.Equal(original.OrderQty))
	assert.Equal(t, original.UniqueKey, audit.UniqueKey)
	assert.Equal(t, original.PhotoURL, audit.PhotoURL)
}

func TestUserPasswordHashing(t *testing.T) {
	var user User
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("s3cret-pass"))
	assert.Error(t, user.CheckPassword("wrong"))
}
