package services

import (
	"fmt"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

// CompanyInfoService orchestrates the company_info global, a single document
// that always exists after seeding.
type CompanyInfoService struct {
	repo   repositories.CompanyInfoRepository
	logger *logging.ChanneledLogger
}

// NewCompanyInfoService creates a new company info service singleton
func NewCompanyInfoService(repo repositories.CompanyInfoRepository, logger *logging.ChanneledLogger) *CompanyInfoService {
	return &CompanyInfoService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the company info global
func (s *CompanyInfoService) Get() (*content.CompanyInfoNode, error) {
	return s.repo.Get()
}

// Put replaces the company info global
func (s *CompanyInfoService) Put(info *content.CompanyInfoNode) error {
	if info == nil {
		return fmt.Errorf("company info cannot be nil")
	}
	if info.Name == "" {
		return fmt.Errorf("company name cannot be empty")
	}
	info.NodeType = "CompanyInfo"

	if err := s.repo.Put(info); err != nil {
		return err
	}
	s.logger.Content().Info("Company info updated", "name", info.Name)
	return nil
}
