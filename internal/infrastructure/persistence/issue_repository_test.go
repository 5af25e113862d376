package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssue(partNumber string, quantity int64, dateIssued time.Time, split ...stock.ProjectSplit) *stock.IssueRecord {
	return stock.NewIssueRecord(partNumber, quantity, dateIssued, "PO-001", split)
}

func TestGormIssueRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormIssueRepository(db)
	ctx := context.Background()

	record := newIssue("EL-SW-001", 9, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		stock.ProjectSplit{ProjectName: "Project A", Quantity: 4},
		stock.ProjectSplit{ProjectName: "Project B", Quantity: 5})
	require.NoError(t, repo.Save(ctx, record))

	t.Run("finds record with allocations by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "EL-SW-001", found.PartNumber)
		assert.Equal(t, int64(9), found.Quantity)
		require.Len(t, found.Allocations, 2)
		for _, alloc := range found.Allocations {
			assert.Equal(t, record.ID, alloc.IssueRecordID)
		}
	})

	t.Run("returns ErrNotFound for missing record", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormIssueRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormIssueRepository(db)
	ctx := context.Background()

	older := newIssue("EL-SW-001", 5, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		stock.ProjectSplit{ProjectName: "Project A", Quantity: 5})
	newer := newIssue("EL-CB-002", 3, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		stock.ProjectSplit{ProjectName: "Project B", Quantity: 3})
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	records, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest issue date first.
	assert.Equal(t, "EL-CB-002", records[0].PartNumber)
	assert.Equal(t, "EL-SW-001", records[1].PartNumber)
}

func TestGormIssueRepository_FindByPartNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormIssueRepository(db)
	ctx := context.Background()

	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newIssue("EL-SW-001", 5, issued,
		stock.ProjectSplit{ProjectName: "Project A", Quantity: 5})))
	require.NoError(t, repo.Save(ctx, newIssue("EL-CB-002", 3, issued,
		stock.ProjectSplit{ProjectName: "Project B", Quantity: 3})))

	records, err := repo.FindByPartNumber(ctx, "EL-SW-001")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].Allocations, 1)
	assert.Equal(t, "Project A", records[0].Allocations[0].ProjectName)
}
