// internal/services/submission_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acemark/stockops-backend/internal/models"
)

// ErrNothingSelected is returned when a batch contains no included rows
// for either destination.
var ErrNothingSelected = errors.New("no rows selected")

// PhotoStore is the slice of the storage service the coordinator needs.
type PhotoStore interface {
	UploadStockPhoto(party, originalName string, data []byte, contentType string) (string, error)
}

// SubmissionService is the batch submission coordinator: it validates the
// included rows, uploads photos, and partitions the batch into the stock
// submissions insert and the action log upsert under one shared batch key.
type SubmissionService struct {
	db     *gorm.DB
	photos PhotoStore
}

func NewSubmissionService(db *gorm.DB, photos PhotoStore) *SubmissionService {
	return &SubmissionService{db: db, photos: photos}
}

// RowPhoto is one attached photo file.
type RowPhoto struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmissionRow is one included form row as submitted by the client.
// Excluded rows never reach the coordinator.
type SubmissionRow struct {
	ProductName  string              `json:"product_name" validate:"required"`
	CurrentQty   string              `json:"current_qty" validate:"quantity"`
	OrderQty     string              `json:"order_qty" validate:"quantity"`
	Unit         string              `json:"uom"`
	ActionStatus models.ActionStatus `json:"action_status" validate:"action_status"`
	Photo        *RowPhoto           `json:"-"`
}

// Special reports whether the row routes to the action log.
func (r *SubmissionRow) Special() bool {
	return r.ActionStatus.IsSpecial()
}

// RowError is one failed row inside an aggregate validation error.
type RowError struct {
	ProductName string `json:"product_name"`
	Reason      string `json:"reason"`
}

// BatchValidationError aborts the whole batch: nothing is uploaded or
// written when any normal row is incomplete.
type BatchValidationError struct {
	Rows []RowError `json:"rows"`
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("batch validation failed for %d row(s): fill Current Qty, Order Qty, Unit and Photo on every normal row", len(e.Rows))
}

// BatchResult reports what one submission call did. The two destination
// writes are independent; a failure in one is reported here without
// rolling back the other.
type BatchResult struct {
	BatchKey       uuid.UUID `json:"batch_key"`
	Submitted      int       `json:"submitted"`
	ActionsUpdated int       `json:"actions_updated"`
	StockError     string    `json:"stock_error,omitempty"`
	ActionError    string    `json:"action_error,omitempty"`
}

// Submit runs one batch: validate everything first, then upload photos
// concurrently, then write both destinations. One fresh batch key is
// shared by every row.
func (s *SubmissionService) Submit(party string, rows []SubmissionRow) (*BatchResult, error) {
	batchKey := uuid.New()

	if err := ValidateBatch(rows); err != nil {
		return nil, err
	}

	photoURLs := s.uploadPhotos(party, rows)

	submissions, actionUpdates := PartitionBatch(party, rows, photoURLs, batchKey)

	if len(submissions) == 0 && len(actionUpdates) == 0 {
		return nil, ErrNothingSelected
	}

	result := &BatchResult{BatchKey: batchKey}

	if len(submissions) > 0 {
		if err := s.db.Create(&submissions).Error; err != nil {
			logrus.WithError(err).WithField("party", party).Error("Failed to insert stock submissions")
			result.StockError = writeErrorMessage(err)
		} else {
			result.Submitted = len(submissions)
		}
	}

	if len(actionUpdates) > 0 {
		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "party_name"}, {Name: "items_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"action_status", "unique_id", "updated_at",
			}),
		}).Create(&actionUpdates).Error
		if err != nil {
			logrus.WithError(err).WithField("party", party).Error("Failed to upsert action logs")
			result.ActionError = writeErrorMessage(err)
		} else {
			result.ActionsUpdated = len(actionUpdates)
		}
	}

	return result, nil
}

// ValidateBatch checks every row before any upload or write. Normal rows
// need current qty, order qty, unit and a photo; quantities must parse
// non-negative. Special rows have no field requirements. Any failure
// aborts the entire batch.
func ValidateBatch(rows []SubmissionRow) error {
	var failed []RowError

	for _, row := range rows {
		name := strings.TrimSpace(row.ProductName)
		if name == "" {
			failed = append(failed, RowError{Reason: "product name is missing"})
			continue
		}

		if !row.ActionStatus.Valid() {
			failed = append(failed, RowError{ProductName: name, Reason: "unknown action status"})
			continue
		}

		if row.Special() {
			continue
		}

		if reason := normalRowReason(row); reason != "" {
			failed = append(failed, RowError{ProductName: name, Reason: reason})
		}
	}

	if len(failed) > 0 {
		return &BatchValidationError{Rows: failed}
	}

	return nil
}

func normalRowReason(row SubmissionRow) string {
	switch {
	case strings.TrimSpace(row.CurrentQty) == "":
		return "current qty is missing"
	case strings.TrimSpace(row.OrderQty) == "":
		return "order qty is missing"
	case strings.TrimSpace(row.Unit) == "":
		return "unit is missing"
	case row.Photo == nil || len(row.Photo.Data) == 0:
		return "photo is missing"
	}

	if _, err := parseQty(row.CurrentQty); err != nil {
		return "current qty is not a valid quantity"
	}
	if _, err := parseQty(row.OrderQty); err != nil {
		return "order qty is not a valid quantity"
	}

	return ""
}

func parseQty(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negative quantity")
	}
	return d.Round(2), nil
}

// uploadPhotos runs every row's photo upload concurrently and waits for
// all of them. An upload failure degrades the row to the failure sentinel
// instead of failing the batch; rows without a photo get the no-photo
// sentinel.
func (s *SubmissionService) uploadPhotos(party string, rows []SubmissionRow) []string {
	urls := make([]string, len(rows))

	var wg sync.WaitGroup
	for i := range rows {
		if rows[i].Photo == nil || len(rows[i].Photo.Data) == 0 {
			urls[i] = models.PhotoNone
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			photo := rows[i].Photo
			url, err := s.photos.UploadStockPhoto(party, photo.Filename, photo.Data, photo.ContentType)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"party":    party,
					"filename": photo.Filename,
				}).Warn("Photo upload failed")
				urls[i] = models.PhotoUploadFailed
				return
			}
			urls[i] = url
		}(i)
	}
	wg.Wait()

	return urls
}

// PartitionBatch splits validated rows into the two destination batches.
// Special rows become action-log updates keyed on (party, item) so a later
// batch overwrites the prior mark; normal rows become pending stock
// submissions. Both carry the shared batch key.
func PartitionBatch(party string, rows []SubmissionRow, photoURLs []string, batchKey uuid.UUID) ([]models.StockSubmission, []models.ActionLog) {
	var submissions []models.StockSubmission
	var actionUpdates []models.ActionLog

	for i, row := range rows {
		name := strings.TrimSpace(row.ProductName)

		if row.Special() {
			actionUpdates = append(actionUpdates, models.ActionLog{
				PartyName:    party,
				ItemsName:    name,
				ActionStatus: row.ActionStatus,
				UniqueID:     batchKey,
			})
			continue
		}

		currentQty, _ := parseQty(row.CurrentQty)
		orderQty, _ := parseQty(row.OrderQty)

		submissions = append(submissions, models.StockSubmission{
			Party:          party,
			ProductName:    name,
			CurrentQty:     currentQty,
			OrderQty:       orderQty,
			Unit:           strings.TrimSpace(row.Unit),
			PhotoURL:       photoURLs[i],
			ActionStatus:   row.ActionStatus,
			UniqueKey:      batchKey,
			ApprovalStatus: models.ApprovalStatusPending,
			Status:         models.DeliveryStatusPending,
		})
	}

	return submissions, actionUpdates
}

func writeErrorMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "duplicate record rejected by the database"
	}
	return err.Error()
}
