package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// ProjectService orchestrates project operations
type ProjectService struct {
	repo   repositories.ProjectRepository
	logger *logging.ChanneledLogger
}

// NewProjectService creates a new project service singleton
func NewProjectService(repo repositories.ProjectRepository, logger *logging.ChanneledLogger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll returns all projects
func (s *ProjectService) GetAll() ([]*content.ProjectNode, error) {
	return s.repo.FindAll()
}

// GetByID returns a project by ID, nil when not found
func (s *ProjectService) GetByID(id string) (*content.ProjectNode, error) {
	if id == "" {
		return nil, fmt.Errorf("project ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

// GetBySlug returns a project by slug, nil when not found
func (s *ProjectService) GetBySlug(slug string) (*content.ProjectNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("project slug cannot be empty")
	}
	return s.repo.FindBySlug(slug)
}

// Create stores a new project, assigning an ID when absent
func (s *ProjectService) Create(project *content.ProjectNode) error {
	if project == nil {
		return fmt.Errorf("project cannot be nil")
	}
	if project.ID == "" {
		project.ID = security.GenerateULID()
	}
	project.Created = time.Now().UTC()
	project.NodeType = "Project"

	if err := s.repo.Store(project); err != nil {
		return err
	}

	s.logger.Content().Info("Project created", "id", project.ID, "slug", project.Slug)
	return nil
}

// Update persists changes to an existing project
func (s *ProjectService) Update(project *content.ProjectNode) error {
	if project == nil || project.ID == "" {
		return fmt.Errorf("project ID cannot be empty")
	}
	existing, err := s.repo.FindByID(project.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("project %s not found", project.ID)
	}
	now := time.Now().UTC()
	project.Changed = &now

	if err := s.repo.Update(project); err != nil {
		return err
	}

	s.logger.Content().Info("Project updated", "id", project.ID)
	return nil
}
