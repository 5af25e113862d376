package handler

import (
	"github.com/gin-gonic/gin"
	stockapp "github.com/stockflow/backend/internal/application/stock"
)

// OpeningStockHandler handles opening stock API endpoints
type OpeningStockHandler struct {
	BaseHandler
	openingService *stockapp.OpeningStockService
}

// NewOpeningStockHandler creates a new OpeningStockHandler
func NewOpeningStockHandler(openingService *stockapp.OpeningStockService) *OpeningStockHandler {
	return &OpeningStockHandler{openingService: openingService}
}

// List returns all opening stock lots
func (h *OpeningStockHandler) List(c *gin.Context) {
	lots, err := h.openingService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, lots)
}

// Create seeds an opening stock lot
func (h *OpeningStockHandler) Create(c *gin.Context) {
	var req stockapp.CreateOpeningStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lot, err := h.openingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, lot)
}
