// internal/handlers/submission.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/acemark/stockops-backend/internal/services"
	"github.com/acemark/stockops-backend/internal/utils"
)

// maxPhotoSize caps one stock photo at 10MB.
const maxPhotoSize = 10 << 20

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// POST /parties/:party/submissions
// Multipart batch submit: a "rows" field holding the JSON row array, plus
// one "photo_<index>" file per row that attached a photo.
func (h *SubmissionHandler) SubmitBatch(c *gin.Context) {
	party := c.Param("party")
	if party == "" {
		utils.BadRequestResponse(c, "Party is required", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	rowsField := form.Value["rows"]
	if len(rowsField) == 0 {
		utils.BadRequestResponse(c, "Missing rows field", nil)
		return
	}

	var rows []services.SubmissionRow
	if err := json.Unmarshal([]byte(rowsField[0]), &rows); err != nil {
		utils.BadRequestResponse(c, "Invalid rows payload", err.Error())
		return
	}

	if err := attachPhotos(rows, form); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.submissionService.Submit(party, rows)
	if err != nil {
		var validationErr *services.BatchValidationError
		if errors.As(err, &validationErr) {
			utils.ErrorResponse(c, 400, "VALIDATION_ERROR", validationErr.Error(), validationErr.Rows)
			return
		}
		if errors.Is(err, services.ErrNothingSelected) {
			utils.BadRequestResponse(c, "No rows selected", nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, result)
}

// attachPhotos pairs photo_<index> files with their rows.
func attachPhotos(rows []services.SubmissionRow, form *multipart.Form) error {
	for i := range rows {
		files := form.File[fmt.Sprintf("photo_%d", i)]
		if len(files) == 0 {
			continue
		}

		header := files[0]
		if header.Size > maxPhotoSize {
			return fmt.Errorf("photo for row %d exceeds the 10MB limit", i)
		}

		photo, err := readUpload(header)
		if err != nil {
			return fmt.Errorf("failed to read photo for row %d: %w", i, err)
		}
		if err := services.ValidateImage(photo.Data); err != nil {
			return fmt.Errorf("photo for row %d is not a valid image", i)
		}
		rows[i].Photo = photo
	}

	return nil
}

func readUpload(header *multipart.FileHeader) (*services.RowPhoto, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.RowPhoto{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
