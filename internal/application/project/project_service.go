package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/project"
	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateProjectRequest creates a destination project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ProjectResponse is a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectService handles the destination projects stock can be issued to
type ProjectService struct {
	repo   project.ProjectRepository
	logger *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo project.ProjectRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// List returns all projects ordered by name
func (s *ProjectService) List(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, toProjectResponse(&projects[i]))
	}
	return responses, nil
}

// Create persists a new project. Names are unique.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	p := project.NewProject(req.Name, req.Description)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByName(ctx, p.Name)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A project with this name already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Project created", zap.String("name", p.Name))

	resp := toProjectResponse(p)
	return &resp, nil
}

func toProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
