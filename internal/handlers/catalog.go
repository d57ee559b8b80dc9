// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/acemark/stockops-backend/internal/services"
	"github.com/acemark/stockops-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /parties/:party/rows
// Returns the entry-form row set: aggregated catalog merged with prior
// action-log markings, ready to render.
func (h *CatalogHandler) GetRows(c *gin.Context) {
	party := c.Param("party")
	if party == "" {
		utils.BadRequestResponse(c, "Party is required", nil)
		return
	}

	rows, err := h.catalogService.LoadRows(party)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"party":       party,
		"total_items": len(rows),
		"rows":        rows,
	})
}
