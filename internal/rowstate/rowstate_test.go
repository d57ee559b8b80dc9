// internal/rowstate/rowstate_test.go
package rowstate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/acemark/stockops-backend/internal/models"
)

func catalogFixture() []CatalogEntry {
	return []CatalogEntry{
		{Name: "A4 Paper", AggregateQty: decimal.RequireFromString("12.5"), LastUnit: "rim"},
		{Name: "Ball Pen", AggregateQty: decimal.RequireFromString("100"), LastUnit: "pcs"},
		{Name: "Stapler", AggregateQty: decimal.RequireFromString("3"), LastUnit: "pcs"},
	}
}

func TestBuildRowsDefaults(t *testing.T) {
	rows := BuildRows(catalogFixture(), nil)

	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.True(t, row.Included)
		assert.Equal(t, models.ActionStatusNone, row.ActionStatus)
		assert.False(t, row.FieldsDisabled)
	}
}

func TestBuildRowsPrefillsPriorMarkings(t *testing.T) {
	marks := map[string]models.ActionStatus{
		"Ball Pen": models.ActionStatusNotRequired,
		"Stapler":  models.ActionStatusDuplicate,
	}

	rows := BuildRows(catalogFixture(), marks)

	assert.True(t, rows[0].Included)

	assert.False(t, rows[1].Included)
	assert.Equal(t, models.ActionStatusNotRequired, rows[1].ActionStatus)
	assert.True(t, rows[1].FieldsDisabled)

	assert.False(t, rows[2].Included)
	assert.Equal(t, models.ActionStatusDuplicate, rows[2].ActionStatus)
	assert.True(t, rows[2].FieldsDisabled)
}

func TestBuildRowsIgnoresBlankMarking(t *testing.T) {
	marks := map[string]models.ActionStatus{
		"A4 Paper": models.ActionStatusNone,
	}

	rows := BuildRows(catalogFixture(), marks)

	assert.True(t, rows[0].Included)
	assert.False(t, rows[0].FieldsDisabled)
}

func TestSetIncludedTogglesFieldState(t *testing.T) {
	rows := BuildRows(catalogFixture(), nil)
	row := &rows[0]

	row.SetIncluded(false)
	assert.False(t, row.Included)
	assert.True(t, row.FieldsDisabled)

	row.SetIncluded(true)
	assert.True(t, row.Included)
	assert.False(t, row.FieldsDisabled)
}

func TestSetActionDisablesFieldsWhileIncluded(t *testing.T) {
	rows := BuildRows(catalogFixture(), nil)
	row := &rows[0]

	row.SetAction(models.ActionStatusNotRequired)
	assert.True(t, row.Included)
	assert.True(t, row.FieldsDisabled)
	assert.True(t, row.Special())

	row.SetAction(models.ActionStatusNone)
	assert.False(t, row.FieldsDisabled)
	assert.False(t, row.Special())
}

func TestSetActionRejectsUnknownStatus(t *testing.T) {
	rows := BuildRows(catalogFixture(), nil)
	row := &rows[0]

	row.SetAction(models.ActionStatus("Maybe Later"))
	assert.Equal(t, models.ActionStatusNone, row.ActionStatus)
	assert.False(t, row.FieldsDisabled)
}

func TestComplete(t *testing.T) {
	row := Row{Included: true}
	assert.False(t, row.Complete())

	row.CurrentQty = "5"
	row.OrderQty = "10"
	row.Unit = "pcs"
	assert.False(t, row.Complete())

	row.PhotoAttached = true
	assert.True(t, row.Complete())
}

func TestCompleteSpecialRowNeedsNothing(t *testing.T) {
	row := Row{Included: true, ActionStatus: models.ActionStatusDuplicate}
	assert.True(t, row.Complete())
}
