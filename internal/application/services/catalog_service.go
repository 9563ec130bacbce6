package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// ServiceCatalogService orchestrates the services collection, the list of
// offerings shown on the public site.
type ServiceCatalogService struct {
	repo   repositories.ServiceRepository
	logger *logging.ChanneledLogger
}

func NewServiceCatalogService(repo repositories.ServiceRepository, logger *logging.ChanneledLogger) *ServiceCatalogService {
	return &ServiceCatalogService{repo: repo, logger: logger}
}

func (s *ServiceCatalogService) GetAll() ([]*content.ServiceNode, error) {
	return s.repo.FindAll()
}

func (s *ServiceCatalogService) GetByID(id string) (*content.ServiceNode, error) {
	if id == "" {
		return nil, fmt.Errorf("service ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

func (s *ServiceCatalogService) GetBySlug(slug string) (*content.ServiceNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("service slug cannot be empty")
	}
	return s.repo.FindBySlug(slug)
}

func (s *ServiceCatalogService) Create(svc *content.ServiceNode) error {
	if svc == nil {
		return fmt.Errorf("service cannot be nil")
	}
	if svc.ID == "" {
		svc.ID = security.GenerateULID()
	}
	if svc.Status == "" {
		svc.Status = "draft"
	}
	svc.Created = time.Now().UTC()
	svc.NodeType = "Service"

	if err := s.repo.Store(svc); err != nil {
		return err
	}
	s.logger.Content().Info("Service created", "id", svc.ID, "slug", svc.Slug)
	return nil
}

func (s *ServiceCatalogService) Update(svc *content.ServiceNode) error {
	if svc == nil || svc.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	existing, err := s.repo.FindByID(svc.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("service %s not found", svc.ID)
	}
	now := time.Now().UTC()
	svc.Changed = &now
	return s.repo.Update(svc)
}

// TechnologyService orchestrates the technologies lookup collection.
type TechnologyService struct {
	repo   repositories.TechnologyRepository
	logger *logging.ChanneledLogger
}

func NewTechnologyService(repo repositories.TechnologyRepository, logger *logging.ChanneledLogger) *TechnologyService {
	return &TechnologyService{repo: repo, logger: logger}
}

func (s *TechnologyService) GetAll() ([]*content.TechnologyNode, error) {
	return s.repo.FindAll()
}

func (s *TechnologyService) GetByID(id string) (*content.TechnologyNode, error) {
	if id == "" {
		return nil, fmt.Errorf("technology ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

func (s *TechnologyService) GetBySlug(slug string) (*content.TechnologyNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("technology slug cannot be empty")
	}
	return s.repo.FindBySlug(slug)
}

func (s *TechnologyService) Create(tech *content.TechnologyNode) error {
	if tech == nil {
		return fmt.Errorf("technology cannot be nil")
	}
	if tech.ID == "" {
		tech.ID = security.GenerateULID()
	}
	tech.NodeType = "Technology"

	if err := s.repo.Store(tech); err != nil {
		return err
	}
	s.logger.Content().Info("Technology created", "id", tech.ID, "slug", tech.Slug)
	return nil
}

func (s *TechnologyService) Update(tech *content.TechnologyNode) error {
	if tech == nil || tech.ID == "" {
		return fmt.Errorf("technology ID cannot be empty")
	}
	existing, err := s.repo.FindByID(tech.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("technology %s not found", tech.ID)
	}
	return s.repo.Update(tech)
}

// PartnerService orchestrates the partners lookup collection.
type PartnerService struct {
	repo   repositories.PartnerRepository
	logger *logging.ChanneledLogger
}

func NewPartnerService(repo repositories.PartnerRepository, logger *logging.ChanneledLogger) *PartnerService {
	return &PartnerService{repo: repo, logger: logger}
}

func (s *PartnerService) GetAll() ([]*content.PartnerNode, error) {
	return s.repo.FindAll()
}

func (s *PartnerService) GetByID(id string) (*content.PartnerNode, error) {
	if id == "" {
		return nil, fmt.Errorf("partner ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

func (s *PartnerService) Create(partner *content.PartnerNode) error {
	if partner == nil {
		return fmt.Errorf("partner cannot be nil")
	}
	if partner.ID == "" {
		partner.ID = security.GenerateULID()
	}
	partner.NodeType = "Partner"

	if err := s.repo.Store(partner); err != nil {
		return err
	}
	s.logger.Content().Info("Partner created", "id", partner.ID)
	return nil
}

func (s *PartnerService) Update(partner *content.PartnerNode) error {
	if partner == nil || partner.ID == "" {
		return fmt.Errorf("partner ID cannot be empty")
	}
	existing, err := s.repo.FindByID(partner.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("partner %s not found", partner.ID)
	}
	return s.repo.Update(partner)
}
