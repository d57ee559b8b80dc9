// internal/handlers/dashboard.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acemark/stockops-backend/internal/services"
	"github.com/acemark/stockops-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService    *services.DashboardService
	notificationService *services.NotificationService
}

func NewDashboardHandler(dashboardService *services.DashboardService, notificationService *services.NotificationService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:    dashboardService,
		notificationService: notificationService,
	}
}

// GET /dashboard
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.Overview()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, overview)
}

// GET /dashboard/deliveries
func (h *DashboardHandler) GetPendingDeliveries(c *gin.Context) {
	pending, err := h.dashboardService.PendingForDelivery()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"pending": pending,
	})
}

// POST /submissions/:id/deliver
func (h *DashboardHandler) MarkDelivered(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid submission ID", nil)
		return
	}

	sub, err := h.dashboardService.MarkDelivered(id)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			utils.NotFoundResponse(c, "Submission")
			return
		}
		if errors.Is(err, services.ErrAlreadyDelivered) {
			utils.ConflictResponse(c, "Submission already delivered")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"submission": sub,
	})
}

// GET /parties/:party/overview
func (h *DashboardHandler) GetPartyOverview(c *gin.Context) {
	party := c.Param("party")
	if party == "" {
		utils.BadRequestResponse(c, "Party is required", nil)
		return
	}

	summary, err := h.dashboardService.PartyOverview(party)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, summary)
}

// GET /submissions/:id/links
// Builds the WhatsApp deep links the office opens to request a party's
// review or feedback.
func (h *DashboardHandler) GetSubmissionLinks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid submission ID", nil)
		return
	}

	sub, err := h.dashboardService.GetSubmission(id)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			utils.NotFoundResponse(c, "Submission")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	links, err := h.notificationService.LinksFor(sub)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, links)
}
