// internal/services/catalog_service.go
package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acemark/stockops-backend/internal/models"
	"github.com/acemark/stockops-backend/internal/rowstate"
)

// CatalogService turns the raw stock-movement rows of one party into the
// aggregated item list the entry form renders. Nothing it produces is
// persisted; every call reads fresh.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// LoadCatalog aggregates the party's raw rows per trimmed product name:
// quantities summed and rounded to 2 decimals, last-known unit kept,
// result sorted alphabetically.
func (s *CatalogService) LoadCatalog(party string) ([]rowstate.CatalogEntry, error) {
	var items []models.StockItem
	if err := s.db.Where("party = ?", party).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock items: %w", err)
	}

	return AggregateCatalog(items), nil
}

// AggregateCatalog is the pure grouping step over raw rows. Rows whose
// trimmed name is blank are skipped; later rows win the last-unit slot.
// Sums round half-to-even, so 5 + 3.005 aggregates to 8.00.
func AggregateCatalog(items []models.StockItem) []rowstate.CatalogEntry {
	type bucket struct {
		sum  decimal.Decimal
		unit string
	}

	byName := make(map[string]*bucket)
	for _, item := range items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			continue
		}

		b, ok := byName[name]
		if !ok {
			b = &bucket{sum: decimal.Zero}
			byName[name] = b
		}
		b.sum = b.sum.Add(item.InvAmount)
		if unit := strings.TrimSpace(item.LastUnit); unit != "" {
			b.unit = unit
		}
	}

	entries := make([]rowstate.CatalogEntry, 0, len(byName))
	for name, b := range byName {
		unit := b.unit
		if unit == "" {
			unit = "—"
		}
		entries = append(entries, rowstate.CatalogEntry{
			Name:         name,
			AggregateQty: b.sum.RoundBank(2),
			LastUnit:     unit,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// LoadActionLogs returns the party's prior Not Required / Duplicate
// markings keyed by trimmed item name.
func (s *CatalogService) LoadActionLogs(party string) (map[string]models.ActionStatus, error) {
	var logs []models.ActionLog
	if err := s.db.Where("party_name = ?", party).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load action logs: %w", err)
	}

	marks := make(map[string]models.ActionStatus, len(logs))
	for _, log := range logs {
		name := strings.TrimSpace(log.ItemsName)
		if name == "" {
			continue
		}
		marks[name] = log.ActionStatus
	}

	return marks, nil
}

// LoadRows builds the full entry-form row set for a party: aggregated
// catalog merged with prior action markings.
func (s *CatalogService) LoadRows(party string) ([]rowstate.Row, error) {
	catalog, err := s.LoadCatalog(party)
	if err != nil {
		return nil, err
	}

	actionLogs, err := s.LoadActionLogs(party)
	if err != nil {
		return nil, err
	}

	return rowstate.BuildRows(catalog, actionLogs), nil
}

// PartyMobile resolves the party's WhatsApp number from the stock sheet,
// normalized to a 91-prefixed number. Returns "" when none is on file.
func (s *CatalogService) PartyMobile(party string) (string, error) {
	var items []models.StockItem
	err := s.db.Where("party = ? AND party_mob_no <> ''", party).
		Limit(1).Find(&items).Error
	if err != nil {
		return "", fmt.Errorf("failed to look up party mobile: %w", err)
	}

	if len(items) == 0 {
		return "", nil
	}

	return NormalizeMobile(items[0].PartyMobNo), nil
}

// NormalizeMobile trims a number and ensures the 91 country prefix. A bare
// 10-digit local number gets the prefix; anything longer is assumed to
// carry it already. A prefix check alone would misread local numbers that
// start with 91.
func NormalizeMobile(mobile string) string {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return ""
	}
	if len(mobile) == 10 {
		mobile = "91" + mobile
	}
	return mobile
}
