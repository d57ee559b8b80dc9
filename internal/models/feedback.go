// internal/models/feedback.go
package models

import "time"

// FeedbackRecord is one post-delivery feedback session. Immutable after
// insert. LikedOptions keeps the client's multi-select as a comma-joined
// string, matching the export format the office already uses.
type FeedbackRecord struct {
	BaseModel
	Party          string    `json:"party" gorm:"size:255;not null;index"`
	TransactionKey string    `json:"transaction_key" gorm:"size:64;index"`
	Rating         int       `json:"rating" gorm:"not null"`
	RatingLabel    string    `json:"rating_label" gorm:"size:20"`
	Remark         string    `json:"remark" gorm:"type:text"`
	LikedOptions   string    `json:"liked_options" gorm:"type:text"`
	AudioURL       *string   `json:"audio_url,omitempty" gorm:"type:text"`
	PhotoURL       *string   `json:"photo_url,omitempty" gorm:"type:text"`
	VideoURL       *string   `json:"video_url,omitempty" gorm:"type:text"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// RatingLabels maps ratings 1..5 to their display labels.
var RatingLabels = [5]string{"Poor", "Average", "Good", "Best", "Excellence"}

// LabelForRating returns the display label for a 1..5 rating, or "".
func LabelForRating(rating int) string {
	if rating < 1 || rating > 5 {
		return ""
	}
	return RatingLabels[rating-1]
}
