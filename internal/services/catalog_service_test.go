// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemark/stockops-backend/internal/models"
)

func stockItem(party, product, qty, unit string) models.StockItem {
	return models.StockItem{
		Party:       party,
		ProductName: product,
		InvAmount:   decimal.RequireFromString(qty),
		LastUnit:    unit,
	}
}

func TestAggregateCatalogSumsAndRounds(t *testing.T) {
	items := []models.StockItem{
		stockItem("Gupta Traders", "Pen", "5", "pcs"),
		stockItem("Gupta Traders", "Pen", "3.005", "pcs"),
	}

	entries := AggregateCatalog(items)

	assert.Len(t, entries, 1)
	assert.Equal(t, "Pen", entries[0].Name)
	assert.True(t, entries[0].AggregateQty.Equal(decimal.RequireFromString("8.0")),
		"got %s", entries[0].AggregateQty)
	assert.Equal(t, "pcs", entries[0].LastUnit)
}

func TestAggregateCatalogRoundsTiesToEven(t *testing.T) {
	items := []models.StockItem{
		stockItem("P", "Tape", "0.125", "roll"),
		stockItem("P", "Wire", "0.135", "mtr"),
	}

	entries := AggregateCatalog(items)

	require.Len(t, entries, 2)
	assert.True(t, entries[0].AggregateQty.Equal(decimal.RequireFromString("0.12")),
		"got %s", entries[0].AggregateQty)
	assert.True(t, entries[1].AggregateQty.Equal(decimal.RequireFromString("0.14")),
		"got %s", entries[1].AggregateQty)
}

func TestAggregateCatalogTrimsAndMergesNames(t *testing.T) {
	items := []models.StockItem{
		stockItem("P", "  Pen ", "1", "pcs"),
		stockItem("P", "Pen", "2", "pcs"),
		stockItem("P", "   ", "5", "pcs"),
	}

	entries := AggregateCatalog(items)

	assert.Len(t, entries, 1)
	assert.True(t, entries[0].AggregateQty.Equal(decimal.RequireFromString("3")))
}

func TestAggregateCatalogLastUnitWinsWithFallback(t *testing.T) {
	items := []models.StockItem{
		stockItem("P", "Pen", "1", "box"),
		stockItem("P", "Pen", "1", "pcs"),
		stockItem("P", "Pen", "1", ""),
		stockItem("P", "Glue", "1", ""),
	}

	entries := AggregateCatalog(items)

	assert.Len(t, entries, 2)
	assert.Equal(t, "Glue", entries[0].Name)
	assert.Equal(t, "—", entries[0].LastUnit)
	assert.Equal(t, "Pen", entries[1].Name)
	assert.Equal(t, "pcs", entries[1].LastUnit)
}

func TestAggregateCatalogSortsAlphabetically(t *testing.T) {
	items := []models.StockItem{
		stockItem("P", "Stapler", "1", "pcs"),
		stockItem("P", "A4 Paper", "1", "rim"),
		stockItem("P", "Marker", "1", "pcs"),
	}

	entries := AggregateCatalog(items)

	assert.Equal(t, "A4 Paper", entries[0].Name)
	assert.Equal(t, "Marker", entries[1].Name)
	assert.Equal(t, "Stapler", entries[2].Name)
}

func TestAggregateCatalogEmpty(t *testing.T) {
	assert.Empty(t, AggregateCatalog(nil))
}

func TestNormalizeMobile(t *testing.T) {
	// A local 10-digit number starting with 91 still needs the prefix.
	assert.Equal(t, "919131749390", NormalizeMobile("9131749390"))
	assert.Equal(t, "918123456789", NormalizeMobile("8123456789"))
	assert.Equal(t, "919131749390", NormalizeMobile(" 919131749390 "))
	assert.Equal(t, "", NormalizeMobile("   "))
}
