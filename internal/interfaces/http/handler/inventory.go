package handler

import (
	"github.com/gin-gonic/gin"
	stockapp "github.com/stockflow/backend/internal/application/stock"
)

// InventoryHandler handles the inventory ledger API endpoint
type InventoryHandler struct {
	BaseHandler
	ledgerService *stockapp.LedgerService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledgerService *stockapp.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledgerService: ledgerService}
}

// GetLedger returns the merged purchase and issue timeline with running
// stock per part number. Filtering narrows the rows shown but never the
// balances, which are computed over the full timeline first.
func (h *InventoryHandler) GetLedger(c *gin.Context) {
	var filter stockapp.LedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.GetInventoryLedger(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}
