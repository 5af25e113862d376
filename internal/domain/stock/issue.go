package stock

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ProjectAllocation is one project's share of an issuance
type ProjectAllocation struct {
	shared.BaseEntity
	IssueRecordID uuid.UUID
	ProjectName   string
	Quantity      int64
}

// IssueRecord represents a completed issuance of stock to one or more projects.
// Records are immutable once created.
type IssueRecord struct {
	shared.BaseEntity
	PartNumber  string
	Quantity    int64
	DateIssued  time.Time
	PONumber    string
	Allocations []ProjectAllocation
}

// NewIssueRecord creates an issue record with its project allocations
func NewIssueRecord(partNumber string, quantity int64, dateIssued time.Time, poNumber string, split []ProjectSplit) *IssueRecord {
	record := &IssueRecord{
		BaseEntity: shared.NewBaseEntity(),
		PartNumber: partNumber,
		Quantity:   quantity,
		DateIssued: dateIssued,
		PONumber:   poNumber,
	}
	record.Allocations = make([]ProjectAllocation, 0, len(split))
	for _, s := range split {
		record.Allocations = append(record.Allocations, ProjectAllocation{
			BaseEntity:    shared.NewBaseEntity(),
			IssueRecordID: record.ID,
			ProjectName:   s.ProjectName,
			Quantity:      s.Quantity,
		})
	}
	return record
}

// ProjectSplit is one requested (project, quantity) pair of an allocation request
type ProjectSplit struct {
	ProjectName string
	Quantity    int64
}

// AllocationRequest is a demand for stock split across destination projects
type AllocationRequest struct {
	PartNumber string
	TotalUnits int64
	Projects   []ProjectSplit
}

// validateBasic checks that a part number is present and the total is positive
func (r *AllocationRequest) validateBasic() error {
	if strings.TrimSpace(r.PartNumber) == "" || r.TotalUnits <= 0 {
		return ErrInvalidRequest
	}
	return nil
}

// validateSplit checks that the per-project split exactly exhausts the
// requested total and that every row names a project with a positive quantity
func (r *AllocationRequest) validateSplit() error {
	var split int64
	for _, p := range r.Projects {
		split += p.Quantity
	}
	if split != r.TotalUnits {
		return NewAllocationMismatchError(split, r.TotalUnits)
	}
	for _, p := range r.Projects {
		if strings.TrimSpace(p.ProjectName) == "" || p.Quantity <= 0 {
			return ErrIncompleteAllocationRow
		}
	}
	return nil
}
