package project

import (
	"strings"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Project is a destination stock can be issued to
type Project struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewProject creates a new project
func NewProject(name, description string) *Project {
	return &Project{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}
}

// Validate checks the project invariants
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project name is required")
	}
	return nil
}
