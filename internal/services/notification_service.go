// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/url"
	"time"

	"github.com/acemark/stockops-backend/internal/config"
	"github.com/acemark/stockops-backend/internal/models"
	"github.com/acemark/stockops-backend/internal/notify"
)

// NotificationService builds the outbound WhatsApp surface: wa.me deep
// links the dashboard opens for approval/feedback requests, and
// fire-and-forget low-rating alerts through the notifier queue.
type NotificationService struct {
	config   *config.Config
	catalog  *CatalogService
	notifier *notify.Notifier
}

func NewNotificationService(cfg *config.Config, catalog *CatalogService, notifier *notify.Notifier) *NotificationService {
	return &NotificationService{
		config:   cfg,
		catalog:  catalog,
		notifier: notifier,
	}
}

// SubmissionLinks are the ready-to-open WhatsApp links for one batch.
type SubmissionLinks struct {
	ReviewURL      string `json:"review_url"`
	FeedbackURL    string `json:"feedback_url"`
	ApprovalWALink string `json:"approval_wa_link"`
	FeedbackWALink string `json:"feedback_wa_link"`
}

// LinksFor builds the review/feedback page URLs for a submission's batch
// and wraps them in prefilled wa.me links addressed to the party's mobile
// (or the configured fallback).
func (s *NotificationService) LinksFor(sub *models.StockSubmission) (*SubmissionLinks, error) {
	mobile, err := s.catalog.PartyMobile(sub.Party)
	if err != nil {
		return nil, err
	}
	if mobile == "" {
		mobile = s.config.WhatsApp.OwnerNumber
	}

	reviewURL := s.ReviewPageURL(sub.Party, sub.UniqueKey.String())
	feedbackURL := s.FeedbackPageURL(sub.Party, sub.UniqueKey.String())

	return &SubmissionLinks{
		ReviewURL:      reviewURL,
		FeedbackURL:    feedbackURL,
		ApprovalWALink: WhatsAppLink(mobile, ApprovalMessage(sub.Party, reviewURL)),
		FeedbackWALink: WhatsAppLink(mobile, FeedbackMessage(sub.Party, feedbackURL)),
	}, nil
}

// ReviewPageURL is the party-facing review page for one batch.
func (s *NotificationService) ReviewPageURL(party, key string) string {
	return fmt.Sprintf("%s/review?party=%s&key=%s",
		s.config.Frontend.BaseURL, url.QueryEscape(party), url.QueryEscape(key))
}

// FeedbackPageURL is the post-delivery feedback page for one batch.
func (s *NotificationService) FeedbackPageURL(party, key string) string {
	return fmt.Sprintf("%s/feedbackpage?party=%s&key=%s",
		s.config.Frontend.BaseURL, url.QueryEscape(party), url.QueryEscape(key))
}

// WhatsAppLink builds a wa.me deep link with a prefilled message body.
func WhatsAppLink(mobile, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", mobile, url.QueryEscape(message))
}

// ApprovalMessage is the review-request body sent to a party.
func ApprovalMessage(party, reviewURL string) string {
	return fmt.Sprintf(`Dear %s,

We've received your latest stock update request.

Please review and approve the suggested quantities at your earliest convenience — your approval helps us process orders quickly and accurately.

Our approval system takes less than 30 seconds to complete.

Approval Link: %s

Your input is highly valued and greatly appreciated.

Thank you for your continued trust and partnership.

Best regards,
Acemark Stationers`, party, reviewURL)
}

// FeedbackMessage is the feedback-request body sent to a party.
func FeedbackMessage(party, feedbackURL string) string {
	return fmt.Sprintf(`Dear %s,

As one of our valued Golden Partners, your satisfaction means everything to us.

We'd truly appreciate 30 seconds of your time to share your honest feedback on our recent delivery.

Your thoughts help us serve you even better.

Feedback Link: %s

Thank you for being part of the Acemark family.

Warm regards,
Acemark Stationers`, party, feedbackURL)
}

// SendLowRatingAlert queues a WhatsApp alert to the owner. Best effort:
// the notifier retries and eventually drops; the feedback insert is never
// blocked or rolled back.
func (s *NotificationService) SendLowRatingAlert(record *models.FeedbackRecord) {
	s.notifier.Enqueue(notify.Alert{
		ToNumber: s.config.WhatsApp.OwnerNumber,
		Message:  LowRatingAlertMessage(record, time.Now()),
	})
}

// LowRatingAlertMessage is the owner-facing alert body.
func LowRatingAlertMessage(record *models.FeedbackRecord, now time.Time) string {
	remark := record.Remark
	if remark == "" {
		remark = "No remark"
	}

	audio := "No audio"
	if record.AudioURL != nil && *record.AudioURL != "" {
		audio = *record.AudioURL
	}

	return fmt.Sprintf(`Low Feedback Alert!

Party: %s
Rating: %s (%d stars)
Remark: %s
Audio: %s
Time: %s`,
		record.Party, record.RatingLabel, record.Rating, remark, audio,
		now.Format("02/01/2006, 15:04:05"))
}
