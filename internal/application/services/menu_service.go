package services

import (
	"fmt"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// MenuService orchestrates navigation menu operations. Menus are never the
// target of relationship fields, so deleting one is a plain row removal
// handled by the shared deletion workflow.
type MenuService struct {
	repo   repositories.MenuRepository
	logger *logging.ChanneledLogger
}

// NewMenuService creates a new menu service singleton
func NewMenuService(repo repositories.MenuRepository, logger *logging.ChanneledLogger) *MenuService {
	return &MenuService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll returns all menus
func (s *MenuService) GetAll() ([]*content.MenuNode, error) {
	return s.repo.FindAll()
}

// GetByID returns a menu by ID, nil when not found
func (s *MenuService) GetByID(id string) (*content.MenuNode, error) {
	if id == "" {
		return nil, fmt.Errorf("menu ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

// Create stores a new menu, assigning an ID when absent
func (s *MenuService) Create(menu *content.MenuNode) error {
	if menu == nil {
		return fmt.Errorf("menu cannot be nil")
	}
	if menu.ID == "" {
		menu.ID = security.GenerateULID()
	}
	menu.NodeType = "Menu"

	if err := s.repo.Store(menu); err != nil {
		return err
	}
	s.logger.Content().Info("Menu created", "id", menu.ID, "title", menu.Title)
	return nil
}

// Update persists changes to an existing menu
func (s *MenuService) Update(menu *content.MenuNode) error {
	if menu == nil || menu.ID == "" {
		return fmt.Errorf("menu ID cannot be empty")
	}
	existing, err := s.repo.FindByID(menu.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("menu %s not found", menu.ID)
	}
	return s.repo.Update(menu)
}
