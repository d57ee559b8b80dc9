// internal/rowstate/rowstate.go
package rowstate

import (
	"github.com/shopspring/decimal"

	"github.com/acemark/stockops-backend/internal/models"
)

// Row is the view state of one catalog line on the entry form. It replaces
// the markup-scraping the old form did: all enable/disable decisions live
// here and recompute on every transition, so the handler only serializes
// the result.
type Row struct {
	ProductName   string              `json:"product_name"`
	AggregateQty  decimal.Decimal     `json:"aggregate_qty"`
	LastUnit      string              `json:"last_unit"`
	Included      bool                `json:"included"`
	ActionStatus  models.ActionStatus `json:"action_status"`
	CurrentQty    string              `json:"current_qty"`
	OrderQty      string              `json:"order_qty"`
	Unit          string              `json:"unit"`
	PhotoAttached bool                `json:"photo_attached"`

	// FieldsDisabled mirrors the disabled state of the qty/unit/photo
	// inputs. Derived, never set directly.
	FieldsDisabled bool `json:"fields_disabled"`
}

// CatalogEntry is one aggregated product for a party, as produced by the
// catalog loader.
type CatalogEntry struct {
	Name         string          `json:"name"`
	AggregateQty decimal.Decimal `json:"aggregate_qty"`
	LastUnit     string          `json:"last_unit"`
}

// BuildRows merges the aggregated catalog with prior action-log markings
// into the initial row set. Items already marked Not Required or Duplicate
// start excluded with the mark prefilled; everything else starts included.
// Recompute runs once here so prefilled statuses take effect immediately.
func BuildRows(catalog []CatalogEntry, actionLogs map[string]models.ActionStatus) []Row {
	rows := make([]Row, 0, len(catalog))
	for _, item := range catalog {
		row := Row{
			ProductName:  item.Name,
			AggregateQty: item.AggregateQty,
			LastUnit:     item.LastUnit,
			Included:     true,
		}
		if status, ok := actionLogs[item.Name]; ok && status.IsSpecial() {
			row.ActionStatus = status
			row.Included = false
		}
		row.recompute()
		rows = append(rows, row)
	}
	return rows
}

// SetIncluded toggles the row in or out of the submission.
func (r *Row) SetIncluded(included bool) {
	r.Included = included
	r.recompute()
}

// SetAction changes the row's action mark. Unknown statuses are ignored.
func (r *Row) SetAction(status models.ActionStatus) {
	if !status.Valid() {
		return
	}
	r.ActionStatus = status
	r.recompute()
}

// Special reports whether the row routes to the action log instead of the
// stock submissions table. Inclusion does not change the routing.
func (r *Row) Special() bool {
	return r.ActionStatus.IsSpecial()
}

// recompute derives the disabled state: an excluded row has all inputs
// off, and a special mark disables the qty/unit/photo inputs even while
// the row stays included.
func (r *Row) recompute() {
	r.FieldsDisabled = !r.Included || r.ActionStatus.IsSpecial()
}

// Complete reports whether a normal row has everything the batch validator
// requires. Special rows are always complete.
func (r *Row) Complete() bool {
	if r.Special() {
		return true
	}
	return r.CurrentQty != "" && r.OrderQty != "" && r.Unit != "" && r.PhotoAttached
}
