// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rowPayload struct {
	ActionStatus string `validate:"action_status"`
	Qty          string `validate:"quantity"`
}

func TestActionStatusValidation(t *testing.T) {
	for _, status := range []string{"", "Not Required", "Duplicate"} {
		assert.NoError(t, ValidateStruct(rowPayload{ActionStatus: status}), status)
	}

	assert.Error(t, ValidateStruct(rowPayload{ActionStatus: "Maybe"}))
}

func TestQuantityValidation(t *testing.T) {
	for _, qty := range []string{"", "0", "12.5", " 3 "} {
		assert.NoError(t, ValidateStruct(rowPayload{Qty: qty}), qty)
	}

	for _, qty := range []string{"-1", "abc", "1.2.3"} {
		assert.Error(t, ValidateStruct(rowPayload{Qty: qty}), qty)
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(rowPayload{ActionStatus: "Maybe", Qty: "-1"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "actionstatus", errs[0].Field)
	assert.Equal(t, "action_status", errs[0].Tag)
	assert.Equal(t, "qty", errs[1].Field)
	assert.Equal(t, "Qty must be a non-negative number", errs[1].Message)
}
