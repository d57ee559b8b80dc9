// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums

// ActionStatus marks a catalog row as needing no stock entry. The blank
// value is a regular row; the other two route the row to the action log
// instead of the submissions table.
type ActionStatus string

const (
	ActionStatusNone        ActionStatus = ""
	ActionStatusNotRequired ActionStatus = "Not Required"
	ActionStatusDuplicate   ActionStatus = "Duplicate"
)

// IsSpecial reports whether the status excludes the row from stock entry.
func (a ActionStatus) IsSpecial() bool {
	return a == ActionStatusNotRequired || a == ActionStatusDuplicate
}

// Valid reports whether the status is one of the three known values.
func (a ActionStatus) Valid() bool {
	return a == ActionStatusNone || a.IsSpecial()
}

// ApprovalStatus is the review lifecycle of a stock submission. It is
// distinct from DeliveryStatus.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusDeleted  ApprovalStatus = "Deleted"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)
