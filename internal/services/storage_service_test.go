// internal/services/storage_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemark/stockops-backend/internal/config"
)

func TestStockPhotoKey(t *testing.T) {
	key := StockPhotoKey("Gupta  Traders", "photo.jpg")

	parts := strings.SplitN(key, "/", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "Gupta_Traders", parts[0])
	assert.True(t, strings.HasSuffix(parts[1], ".jpg"))
	assert.NotContains(t, parts[1], " ")
}

func TestStockPhotoKeyUniquePerCall(t *testing.T) {
	a := StockPhotoKey("P", "photo.jpg")
	b := StockPhotoKey("P", "photo.jpg")

	assert.NotEqual(t, a, b)
}

func TestFeedbackMediaKey(t *testing.T) {
	now := time.UnixMilli(1741615509000)

	key := FeedbackMediaKey("Gupta Traders", "audio", "clip.mp3", now)

	assert.Equal(t, "Gupta_Traders_1741615509000_audio.mp3", key)
}

func TestFeedbackMediaKeyDefaultsExtension(t *testing.T) {
	now := time.UnixMilli(1741615509000)

	key := FeedbackMediaKey("P", "video", "blob", now)

	assert.Equal(t, "P_1741615509000_video.webm", key)
}

func TestNewStorageServiceWithoutCredentials(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		AWS:    config.AWSConfig{StockPhotoBucket: "stock-photos"},
	}

	svc, err := NewStorageService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)

	url, err := svc.UploadStockPhoto("Gupta Traders", "photo.jpg", []byte{0xFF}, "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, url, "uploads/stock-photos/Gupta_Traders/")
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Error(t, ValidateImage([]byte("plain text")))
}

func TestIsValidImageType(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	gif := []byte("GIF89a trailer")

	assert.True(t, isValidImageType(jpeg))
	assert.True(t, isValidImageType(png))
	assert.True(t, isValidImageType(gif))
	assert.False(t, isValidImageType([]byte("not an image")))
	assert.False(t, isValidImageType(nil))
}
