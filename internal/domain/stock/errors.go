package stock

import (
	"fmt"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Allocation error codes
const (
	CodeInvalidRequest              = "INVALID_REQUEST"
	CodeInsufficientStock           = "INSUFFICIENT_STOCK"
	CodeAllocationMismatch          = "ALLOCATION_MISMATCH"
	CodeIncompleteAllocationRow     = "INCOMPLETE_ALLOCATION_ROW"
	CodeAllocationInvariantViolated = "ALLOCATION_INVARIANT_VIOLATION"
	CodeStaleQuote                  = "STALE_QUOTE"
)

// Allocation errors surfaced to callers. Each validation failure gets its own
// code so the caller can render an actionable message instead of a catch-all.
var (
	ErrInvalidRequest          = shared.NewDomainError(CodeInvalidRequest, "A part number and a positive total quantity are required")
	ErrIncompleteAllocationRow = shared.NewDomainError(CodeIncompleteAllocationRow, "Every project row needs a project name and a positive quantity")
)

// NewInsufficientStockError reports how much stock is actually available so
// the caller can adjust the request
func NewInsufficientStockError(available, requested int64) *shared.DomainError {
	return shared.NewDomainError(CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock: %d units available, %d requested", available, requested))
}

// NewAllocationMismatchError reports the split total against the requested total
func NewAllocationMismatchError(split, requested int64) *shared.DomainError {
	return shared.NewDomainError(CodeAllocationMismatch,
		fmt.Sprintf("Project quantities sum to %d but %d units were requested", split, requested))
}

// NewStaleQuoteError signals that stock changed between quote and commit
func NewStaleQuoteError(available, requested int64) *shared.DomainError {
	return shared.NewDomainError(CodeStaleQuote,
		fmt.Sprintf("Available stock changed since the quote: %d units available now, %d requested; refresh the quote and retry", available, requested))
}

// newInvariantViolationError marks a bug in the validation/allocation pairing,
// not a user error. It should be logged and reported, never shown as actionable.
func newInvariantViolationError(remaining int64) *shared.DomainError {
	return shared.NewDomainError(CodeAllocationInvariantViolated,
		fmt.Sprintf("Allocation walk left %d units unallocated after validation passed", remaining))
}
