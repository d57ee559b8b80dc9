// internal/services/feedback_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/acemark/stockops-backend/internal/models"
	"github.com/acemark/stockops-backend/internal/utils"
)

// MediaStore is the slice of the storage service the feedback flow needs.
type MediaStore interface {
	UploadFeedbackMedia(party, kind, originalName string, data []byte, contentType string) (string, error)
}

// FeedbackService records post-delivery feedback: one immutable record per
// session, optional audio/photo/video in object storage, and a best-effort
// owner alert on low ratings.
type FeedbackService struct {
	db            *gorm.DB
	media         MediaStore
	notifications *NotificationService
	lowThreshold  int
}

func NewFeedbackService(db *gorm.DB, media MediaStore, notifications *NotificationService, lowThreshold int) *FeedbackService {
	return &FeedbackService{
		db:            db,
		media:         media,
		notifications: notifications,
		lowThreshold:  lowThreshold,
	}
}

// MediaFile is one captured file from the feedback form.
type MediaFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FeedbackMedia carries the optional captures, keyed by kind.
type FeedbackMedia struct {
	Audio *MediaFile
	Photo *MediaFile
	Video *MediaFile
}

// SubmitFeedbackRequest is the form payload.
type SubmitFeedbackRequest struct {
	Party          string   `json:"party" validate:"required"`
	TransactionKey string   `json:"transaction_key"`
	Rating         int      `json:"rating" validate:"required,min=1,max=5"`
	Remark         string   `json:"remark"`
	LikedOptions   []string `json:"liked_options"`
}

// Submit uploads any captured media, inserts the feedback record and, on a
// low rating, queues the owner alert. Media upload failures are logged and
// leave the URL empty; they never block the insert.
func (s *FeedbackService) Submit(req *SubmitFeedbackRequest, media FeedbackMedia) (*models.FeedbackRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	record := &models.FeedbackRecord{
		Party:          req.Party,
		TransactionKey: req.TransactionKey,
		Rating:         req.Rating,
		RatingLabel:    models.LabelForRating(req.Rating),
		Remark:         req.Remark,
		LikedOptions:   strings.Join(req.LikedOptions, ", "),
		SubmittedAt:    time.Now(),
	}

	record.AudioURL = s.uploadMedia(req.Party, "audio", media.Audio)
	record.PhotoURL = s.uploadMedia(req.Party, "photo", media.Photo)
	record.VideoURL = s.uploadMedia(req.Party, "video", media.Video)

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	if req.Rating <= s.lowThreshold {
		s.notifications.SendLowRatingAlert(record)
	}

	return record, nil
}

func (s *FeedbackService) uploadMedia(party, kind string, file *MediaFile) *string {
	if file == nil || len(file.Data) == 0 {
		return nil
	}

	url, err := s.media.UploadFeedbackMedia(party, kind, file.Filename, file.Data, file.ContentType)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"party": party,
			"kind":  kind,
		}).Warn("Feedback media upload failed")
		return nil
	}

	return &url
}

// List returns feedback records for the office, newest first, optionally
// filtered by party.
func (s *FeedbackService) List(params utils.PaginationParams) ([]models.FeedbackRecord, int64, error) {
	query := s.db.Model(&models.FeedbackRecord{})
	if params.Party != "" {
		query = query.Where("party = ?", params.Party)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var records []models.FeedbackRecord
	err := utils.ApplyPagination(query.Order("submitted_at DESC"), params).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load feedback: %w", err)
	}

	return records, total, nil
}
