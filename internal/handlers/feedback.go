// internal/handlers/feedback.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acemark/stockops-backend/internal/services"
	"github.com/acemark/stockops-backend/internal/utils"
)

// maxMediaSize caps one captured feedback file at 50MB (video included).
const maxMediaSize = 50 << 20

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// POST /feedback
// Multipart form: party, transaction_key, rating, remark, liked_options
// (comma separated), plus optional audio/photo/video files.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	rating, err := strconv.Atoi(c.PostForm("rating"))
	if err != nil {
		utils.BadRequestResponse(c, "Rating must be a number between 1 and 5", nil)
		return
	}

	req := &services.SubmitFeedbackRequest{
		Party:          c.PostForm("party"),
		TransactionKey: c.PostForm("transaction_key"),
		Rating:         rating,
		Remark:         c.PostForm("remark"),
		LikedOptions:   splitOptions(c.PostForm("liked_options")),
	}

	media, err := readFeedbackMedia(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	record, err := h.feedbackService.Submit(req, media)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(unwrapAll(err)); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"feedback": record,
	})
}

// GET /feedback
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	records, total, err := h.feedbackService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(records, total, params))
}

func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}

	var options []string
	for _, opt := range strings.Split(raw, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	return options
}

func readFeedbackMedia(c *gin.Context) (services.FeedbackMedia, error) {
	var media services.FeedbackMedia

	kinds := []struct {
		field string
		dest  **services.MediaFile
	}{
		{"audio", &media.Audio},
		{"photo", &media.Photo},
		{"video", &media.Video},
	}

	for _, kind := range kinds {
		header, err := c.FormFile(kind.field)
		if err != nil {
			continue
		}

		if header.Size > maxMediaSize {
			return media, fmt.Errorf("%s file exceeds the 50MB limit", kind.field)
		}

		file, err := readMediaFile(header)
		if err != nil {
			return media, fmt.Errorf("failed to read %s file: %w", kind.field, err)
		}
		*kind.dest = file
	}

	return media, nil
}

func readMediaFile(header *multipart.FileHeader) (*services.MediaFile, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// unwrapAll digs to the innermost error so wrapped validator errors still
// map to field messages.
func unwrapAll(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
