// internal/handlers/submission_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemark/stockops-backend/internal/services"
)

func submissionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSubmissionHandler(services.NewSubmissionService(nil, nil))
	r.POST("/parties/:party/submissions", h.SubmitBatch)
	return r
}

func batchRequest(t *testing.T, photo []byte) *http.Request {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	rows := []services.SubmissionRow{
		{ProductName: "Pen", CurrentQty: "5", OrderQty: "10", Unit: "pcs"},
	}
	rowsJSON, err := json.Marshal(rows)
	require.NoError(t, err)
	require.NoError(t, form.WriteField("rows", string(rowsJSON)))

	fw, err := form.CreateFormFile("photo_0", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write(photo)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/parties/Gupta%20Traders/submissions", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestSubmitBatchRejectsNonImagePhoto(t *testing.T) {
	r := submissionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, batchRequest(t, []byte("definitely not an image")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not a valid image")
}

func TestSubmitBatchRejectsMissingRowsField(t *testing.T) {
	r := submissionRouter()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("other", "value"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/parties/P/submissions", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing rows field")
}
