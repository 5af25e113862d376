package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procapp "github.com/stockflow/backend/internal/application/procurement"
)

// PurchaseEntryHandler handles purchase entry API endpoints
type PurchaseEntryHandler struct {
	BaseHandler
	entryService *procapp.PurchaseEntryService
}

// NewPurchaseEntryHandler creates a new PurchaseEntryHandler
func NewPurchaseEntryHandler(entryService *procapp.PurchaseEntryService) *PurchaseEntryHandler {
	return &PurchaseEntryHandler{entryService: entryService}
}

// List returns all purchase entries, newest purchase date first
func (h *PurchaseEntryHandler) List(c *gin.Context) {
	entries, err := h.entryService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}

// GetByID retrieves a purchase entry by its ID
func (h *PurchaseEntryHandler) GetByID(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.entryService.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entry)
}

// GetByPartNumber returns the purchase entries containing a part number
func (h *PurchaseEntryHandler) GetByPartNumber(c *gin.Context) {
	partNumber := c.Param("partNumber")
	if partNumber == "" {
		h.BadRequest(c, "Part number is required")
		return
	}

	entries, err := h.entryService.GetByPartNumber(c.Request.Context(), partNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entries)
}

// Create records a goods received note and seeds its stock lots
func (h *PurchaseEntryHandler) Create(c *gin.Context) {
	var req procapp.CreatePurchaseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, entry)
}

// Update replaces a purchase entry that has not been issued against yet
func (h *PurchaseEntryHandler) Update(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	var req procapp.UpdatePurchaseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), entryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entry)
}

// Delete removes a purchase entry that has not been issued against yet
func (h *PurchaseEntryHandler) Delete(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), entryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
