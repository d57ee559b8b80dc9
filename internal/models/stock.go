// internal/models/stock.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Photo URL sentinels stored when no usable public URL exists. Consumers
// treat either value as "no photo to show".
const (
	PhotoNone         = "(No Photo)"
	PhotoUploadFailed = "(Upload failed)"
)

// StockItem is one raw stock-movement row imported from the books system.
// Multiple rows per (party, product) are expected; the catalog endpoint
// aggregates them per product.
type StockItem struct {
	BaseModel
	Party       string          `json:"party" gorm:"size:255;not null;index"`
	ProductName string          `json:"product_name" gorm:"size:255;not null"`
	InvAmount   decimal.Decimal `json:"inv_amount" gorm:"type:decimal(12,3);default:0"`
	LastUnit    string          `json:"last_unit" gorm:"size:20"`
	PartyMobNo  string          `json:"party_mob_no" gorm:"size:20"`
}

// ActionLog records a "Not Required" or "Duplicate" marking for one
// (party, item) pair. One row per pair, upserted; a later batch overwrites
// the earlier mark.
type ActionLog struct {
	BaseModel
	PartyName    string       `json:"party_name" gorm:"size:255;not null;uniqueIndex:idx_action_logs_party_item"`
	ItemsName    string       `json:"items_name" gorm:"size:255;not null;uniqueIndex:idx_action_logs_party_item"`
	ActionStatus ActionStatus `json:"action_status" gorm:"type:varchar(20);not null"`
	UniqueID     uuid.UUID    `json:"unique_id" gorm:"type:uuid;index"`
}

// StockSubmission is one submitted stock line. Rows are append-mostly: a
// reviewer deleting a pending row removes it and reinserts a copy with
// ApprovalStatus=Deleted and DeletedAt set, so deletion history survives
// without a soft-delete flag. DeletedAt is audit data, not a gorm.DeletedAt;
// deleted rows must keep showing up in queries.
type StockSubmission struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Party          string          `json:"party" gorm:"size:255;not null;index"`
	ProductName    string          `json:"product_name" gorm:"size:255;not null"`
	CurrentQty     decimal.Decimal `json:"current_qty" gorm:"type:decimal(12,2);default:0"`
	OrderQty       decimal.Decimal `json:"order_qty" gorm:"type:decimal(12,2);default:0"`
	Unit           string          `json:"uom" gorm:"column:uom;size:20"`
	PhotoURL       string          `json:"photo_url" gorm:"type:text"`
	ActionStatus   ActionStatus    `json:"action_status" gorm:"type:varchar(20);default:''"`
	UniqueKey      uuid.UUID       `json:"unique_key" gorm:"type:uuid;not null;index"`
	ApprovalStatus ApprovalStatus  `json:"approval_status" gorm:"type:varchar(20);default:'Pending';index"`
	Status         DeliveryStatus  `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
}

// AuditCopy returns a new record carrying the original field values plus the
// Deleted approval status and a deletion timestamp. The copy gets a fresh ID
// on insert.
func (s StockSubmission) AuditCopy(now time.Time) StockSubmission {
	c := s
	c.ID = uuid.Nil
	c.ApprovalStatus = ApprovalStatusDeleted
	c.DeletedAt = &now
	return c
}
