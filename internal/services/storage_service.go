// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/acemark/stockops-backend/internal/config"
)

// StorageService uploads stock photos and feedback media to S3 and hands
// back public URLs. Without AWS credentials it degrades to a local stub so
// the form still works in development.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// UploadStockPhoto stores one photo under a per-party folder with a random
// filename preserving the original extension, and returns its public URL.
func (s *StorageService) UploadStockPhoto(party, originalName string, data []byte, contentType string) (string, error) {
	key := StockPhotoKey(party, originalName)
	return s.upload(s.config.AWS.StockPhotoBucket, key, data, contentType)
}

// UploadFeedbackMedia stores one captured audio/photo/video file and
// returns its public URL. kind is "audio", "photo" or "video".
func (s *StorageService) UploadFeedbackMedia(party, kind, originalName string, data []byte, contentType string) (string, error) {
	key := FeedbackMediaKey(party, kind, originalName, time.Now())
	return s.upload(s.config.AWS.FeedbackBucket, key, data, contentType)
}

// StockPhotoKey builds the object key partyName/uuid.ext. Spaces in the
// party name become underscores so keys stay one path segment per party.
func StockPhotoKey(party, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s/%s%s", sanitizeParty(party), uuid.New().String(), ext)
}

// FeedbackMediaKey builds the object key partyName_timestamp_kind.ext.
func FeedbackMediaKey(party, kind, originalName string, now time.Time) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".webm"
	}
	return fmt.Sprintf("%s_%d_%s%s", sanitizeParty(party), now.UnixMilli(), kind, ext)
}

func sanitizeParty(party string) string {
	return strings.Join(strings.Fields(party), "_")
}

func (s *StorageService) upload(bucket, key string, data []byte, contentType string) (string, error) {
	if s.s3Client == nil {
		// Local development stub
		return fmt.Sprintf("http://localhost:%s/uploads/%s/%s", s.config.Server.Port, bucket, key), nil
	}

	params := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("max-age=3600"),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.publicURL(bucket, key), nil
}

func (s *StorageService) publicURL(bucket, key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.config.AWS.CloudFrontURL, bucket, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		bucket, s.config.AWS.Region, key)
}

// ValidateImage checks the file signature of an uploaded stock photo.
func ValidateImage(data []byte) error {
	if !isValidImageType(data) {
		return fmt.Errorf("invalid image file")
	}
	return nil
}

func isValidImageType(buffer []byte) bool {
	// Check for JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// Check for PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// Check for GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	return false
}
