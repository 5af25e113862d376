package handler

import (
	"github.com/gin-gonic/gin"
	stockapp "github.com/stockflow/backend/internal/application/stock"
)

// IssueHandler handles stock issuance API endpoints
type IssueHandler struct {
	BaseHandler
	issueService *stockapp.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService *stockapp.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// List returns all issue records, newest first
func (h *IssueHandler) List(c *gin.Context) {
	records, err := h.issueService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}

// GetAvailable quotes the stock on hand for a part number
func (h *IssueHandler) GetAvailable(c *gin.Context) {
	partNumber := c.Param("partNumber")
	if partNumber == "" {
		h.BadRequest(c, "Part number is required")
		return
	}

	quote, err := h.issueService.GetAvailable(c.Request.Context(), partNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quote)
}

// Create commits an issuance. Clients may send an Idempotency-Key header to
// guard against double submits; a replayed key gets DUPLICATE_REQUEST.
func (h *IssueHandler) Create(c *gin.Context) {
	var req stockapp.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.issueService.CreateIssue(c.Request.Context(), req, c.GetHeader("Idempotency-Key"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, record)
}
