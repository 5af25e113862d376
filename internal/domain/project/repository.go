package project

import (
	"context"

	"github.com/google/uuid"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindByName finds a project by its unique name
	FindByName(ctx context.Context, name string) (*Project, error)

	// FindAll returns all projects ordered by name
	FindAll(ctx context.Context) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, p *Project) error

	// Delete removes a project
	Delete(ctx context.Context, id uuid.UUID) error
}
