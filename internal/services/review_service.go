// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acemark/stockops-backend/internal/database"
	"github.com/acemark/stockops-backend/internal/models"
)

var (
	// ErrSubmissionNotFound is returned when a row id does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrNotPending is returned when a reviewer acts on a row that has
	// already left the Pending state.
	ErrNotPending = errors.New("submission is not pending")
)

// ReviewService is the party-facing review workflow: fetch a batch by its
// key, stage order-quantity edits, delete rows with an audit trail, and
// bulk-approve what remains. Concurrent reviewers are unguarded; last
// write wins.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ReviewSets is one batch split by approval state.
type ReviewSets struct {
	Pending  []models.StockSubmission `json:"pending"`
	Approved []models.StockSubmission `json:"approved"`
}

// LoadBatch fetches the pending and approved rows of one batch for one
// party.
func (s *ReviewService) LoadBatch(batchKey uuid.UUID, party string) (*ReviewSets, error) {
	sets := &ReviewSets{}

	err := s.db.
		Where("unique_key = ? AND party = ? AND approval_status = ?", batchKey, party, models.ApprovalStatusPending).
		Order("created_at").
		Find(&sets.Pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending submissions: %w", err)
	}

	err = s.db.
		Where("unique_key = ? AND party = ? AND approval_status = ?", batchKey, party, models.ApprovalStatusApproved).
		Order("created_at").
		Find(&sets.Approved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load approved submissions: %w", err)
	}

	return sets, nil
}

// ApproveAll moves every still-pending row of the batch to Approved,
// overwriting order quantities with any staged edits. Returns the number
// of rows approved.
func (s *ReviewService) ApproveAll(batchKey uuid.UUID, party string, edits map[uuid.UUID]decimal.Decimal) (int, error) {
	var pending []models.StockSubmission
	err := s.db.
		Where("unique_key = ? AND party = ? AND approval_status = ?", batchKey, party, models.ApprovalStatusPending).
		Find(&pending).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load pending submissions: %w", err)
	}

	if len(pending) == 0 {
		return 0, nil
	}

	updates := ApplyOrderEdits(pending, edits, time.Now())

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_qty", "approval_status", "approved_at", "updated_at",
		}),
	}).Create(&updates).Error
	if err != nil {
		return 0, fmt.Errorf("failed to approve submissions: %w", err)
	}

	return len(updates), nil
}

// ApplyOrderEdits stamps each pending row Approved, substituting the
// staged order quantity where the reviewer edited one. Edits for unknown
// row ids are ignored.
func ApplyOrderEdits(pending []models.StockSubmission, edits map[uuid.UUID]decimal.Decimal, now time.Time) []models.StockSubmission {
	updates := make([]models.StockSubmission, 0, len(pending))
	for _, sub := range pending {
		if qty, ok := edits[sub.ID]; ok && !qty.IsNegative() {
			sub.OrderQty = qty.Round(2)
		}
		sub.ApprovalStatus = models.ApprovalStatusApproved
		sub.ApprovedAt = &now
		updates = append(updates, sub)
	}
	return updates
}

// DeleteWithAudit removes one pending row and reinserts a copy carrying
// the original values plus ApprovalStatus=Deleted and a deletion
// timestamp. Both steps run in one transaction so history is never lost
// halfway. Returns the audit record.
func (s *ReviewService) DeleteWithAudit(id uuid.UUID) (*models.StockSubmission, error) {
	var audit models.StockSubmission

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var original models.StockSubmission
		if err := tx.First(&original, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return fmt.Errorf("failed to load submission: %w", err)
		}

		if original.ApprovalStatus != models.ApprovalStatusPending {
			return ErrNotPending
		}

		if err := tx.Delete(&models.StockSubmission{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete submission: %w", err)
		}

		audit = original.AuditCopy(time.Now())
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("failed to insert audit record: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &audit, nil
}
