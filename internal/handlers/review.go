// internal/handlers/review.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acemark/stockops-backend/internal/services"
	"github.com/acemark/stockops-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /review?key=<batch>&party=<party>
func (h *ReviewHandler) GetBatch(c *gin.Context) {
	keyStr := c.Query("key")
	party := c.Query("party")

	if keyStr == "" {
		utils.BadRequestResponse(c, "Invalid link: batch key missing", nil)
		return
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid batch key", nil)
		return
	}

	sets, err := h.reviewService.LoadBatch(key, party)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, sets)
}

type approveRequest struct {
	Key   string                     `json:"key" binding:"required"`
	Party string                     `json:"party" binding:"required"`
	Edits map[string]decimal.Decimal `json:"edits"`
}

// POST /review/approve
// Bulk-approves every still-pending row of the batch, applying the staged
// order-quantity edits (keyed by row id).
func (h *ReviewHandler) ApproveBatch(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	key, err := uuid.Parse(req.Key)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid batch key", nil)
		return
	}

	edits := make(map[uuid.UUID]decimal.Decimal, len(req.Edits))
	for idStr, qty := range req.Edits {
		id, err := uuid.Parse(idStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid row id in edits", idStr)
			return
		}
		edits[id] = qty
	}

	approved, err := h.reviewService.ApproveAll(key, req.Party, edits)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"approved": approved,
	})
}

// DELETE /review/submissions/:id
func (h *ReviewHandler) DeleteSubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid submission ID", nil)
		return
	}

	audit, err := h.reviewService.DeleteWithAudit(id)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			utils.NotFoundResponse(c, "Submission")
			return
		}
		if errors.Is(err, services.ErrNotPending) {
			utils.ConflictResponse(c, "Only pending submissions can be deleted")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"deleted": audit,
	})
}
