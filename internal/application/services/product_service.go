package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// ProductService orchestrates product operations with cache-first repository pattern
type ProductService struct {
	repo   repositories.ProductRepository
	logger *logging.ChanneledLogger
}

// NewProductService creates a new product service singleton
func NewProductService(repo repositories.ProductRepository, logger *logging.ChanneledLogger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll returns all products
func (s *ProductService) GetAll() ([]*content.ProductNode, error) {
	start := time.Now()

	products, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Content().Info("Successfully retrieved products", "count", len(products), "duration", time.Since(start))
	return products, nil
}

// GetByID returns a product by ID, nil when not found
func (s *ProductService) GetByID(id string) (*content.ProductNode, error) {
	if id == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	return s.repo.FindByID(id)
}

// GetBySlug returns a product by slug, nil when not found
func (s *ProductService) GetBySlug(slug string) (*content.ProductNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("product slug cannot be empty")
	}
	return s.repo.FindBySlug(slug)
}

// GetByIDs returns products for a set of IDs, skipping missing ones
func (s *ProductService) GetByIDs(ids []string) ([]*content.ProductNode, error) {
	if len(ids) == 0 {
		return []*content.ProductNode{}, nil
	}
	return s.repo.FindByIDs(ids)
}

// Create stores a new product, assigning an ID when absent
func (s *ProductService) Create(product *content.ProductNode) error {
	if product == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if product.ID == "" {
		product.ID = security.GenerateULID()
	}
	if product.Status == "" {
		product.Status = "draft"
	}
	product.Created = time.Now().UTC()
	product.NodeType = "Product"

	if err := s.repo.Store(product); err != nil {
		return err
	}

	s.logger.Content().Info("Product created", "id", product.ID, "slug", product.Slug)
	return nil
}

// Update persists changes to an existing product
func (s *ProductService) Update(product *content.ProductNode) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product ID cannot be empty")
	}
	existing, err := s.repo.FindByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("product %s not found", product.ID)
	}
	now := time.Now().UTC()
	product.Changed = &now

	if err := s.repo.Update(product); err != nil {
		return err
	}

	s.logger.Content().Info("Product updated", "id", product.ID)
	return nil
}
