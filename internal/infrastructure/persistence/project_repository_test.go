package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/project"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProjectRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	ctx := context.Background()

	alpha := project.NewProject("Alpha Substation", "132kV substation retrofit")
	zulu := project.NewProject("Zulu Plant", "")
	require.NoError(t, repo.Save(ctx, zulu))
	require.NoError(t, repo.Save(ctx, alpha))

	t.Run("finds project by name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "Alpha Substation")
		require.NoError(t, err)
		assert.Equal(t, alpha.ID, found.ID)
	})

	t.Run("returns ErrNotFound for unknown name", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Nowhere")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists projects ordered by name", func(t *testing.T) {
		projects, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "Alpha Substation", projects[0].Name)
		assert.Equal(t, "Zulu Plant", projects[1].Name)
	})

	t.Run("deletes a project", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, zulu.ID))
		_, err := repo.FindByID(ctx, zulu.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deleting a missing project returns ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}
