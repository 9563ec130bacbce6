package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

const (
	homepageProductLimit    = 6
	homepageServiceLimit    = 6
	homepageProjectLimit    = 4
	homepageTechnologyLimit = 10
	homepagePostLimit       = 3
)

// HomepagePayload composes everything the public homepage renders in one
// round trip.
type HomepagePayload struct {
	CompanyInfo      *content.CompanyInfoNode  `json:"companyInfo"`
	Navigation       []*content.MenuNode       `json:"navigation"`
	FeaturedProducts []*content.ProductNode    `json:"featuredProducts"`
	FeaturedServices []*content.ServiceNode    `json:"featuredServices"`
	RecentProjects   []*content.ProjectNode    `json:"recentProjects"`
	Technologies     []*content.TechnologyNode `json:"technologies"`
	RecentPosts      []*content.PostNode       `json:"recentPosts"`
}

// HeaderInfoPayload is the slim slice of company info and navigation the
// site header needs.
type HeaderInfoPayload struct {
	CompanyName string              `json:"companyName"`
	Tagline     *string             `json:"tagline,omitempty"`
	Phone       *string             `json:"phone,omitempty"`
	Email       *string             `json:"email,omitempty"`
	Address     *string             `json:"address,omitempty"`
	SocialLinks map[string]string   `json:"socialLinks"`
	Navigation  []*content.MenuLink `json:"navigation"`
}

// AggregateService composes the read-only convenience payloads consumed by
// the public site shell. Only published documents are included.
type AggregateService struct {
	companyInfo  repositories.CompanyInfoRepository
	menus        repositories.MenuRepository
	products     repositories.ProductRepository
	services     repositories.ServiceRepository
	projects     repositories.ProjectRepository
	technologies repositories.TechnologyRepository
	posts        repositories.PostRepository
	logger       *logging.ChanneledLogger
}

// NewAggregateService creates a new aggregate service singleton
func NewAggregateService(
	companyInfo repositories.CompanyInfoRepository,
	menus repositories.MenuRepository,
	products repositories.ProductRepository,
	services repositories.ServiceRepository,
	projects repositories.ProjectRepository,
	technologies repositories.TechnologyRepository,
	posts repositories.PostRepository,
	logger *logging.ChanneledLogger,
) *AggregateService {
	return &AggregateService{
		companyInfo:  companyInfo,
		menus:        menus,
		products:     products,
		services:     services,
		projects:     projects,
		technologies: technologies,
		posts:        posts,
		logger:       logger,
	}
}

// GetHomepage assembles the homepage payload: company info, navigation,
// featured published products and services, recent published projects and
// posts, and the technology list.
func (s *AggregateService) GetHomepage() (*HomepagePayload, error) {
	start := time.Now()

	info, err := s.companyInfo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load company info: %w", err)
	}
	menus, err := s.menus.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation: %w", err)
	}

	products, err := s.products.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	featuredProducts := make([]*content.ProductNode, 0, homepageProductLimit)
	for _, p := range products {
		if p.Featured && p.Status == "published" {
			featuredProducts = append(featuredProducts, p)
			if len(featuredProducts) == homepageProductLimit {
				break
			}
		}
	}

	serviceNodes, err := s.services.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	featuredServices := make([]*content.ServiceNode, 0, homepageServiceLimit)
	for _, svc := range serviceNodes {
		if svc.Featured && svc.Status == "published" {
			featuredServices = append(featuredServices, svc)
			if len(featuredServices) == homepageServiceLimit {
				break
			}
		}
	}

	projects, err := s.projects.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	recentProjects := make([]*content.ProjectNode, 0, homepageProjectLimit)
	for _, project := range projects {
		if project.Status == "published" {
			recentProjects = append(recentProjects, project)
		}
	}
	sort.SliceStable(recentProjects, func(i, j int) bool {
		return recentProjects[i].Created.After(recentProjects[j].Created)
	})
	if len(recentProjects) > homepageProjectLimit {
		recentProjects = recentProjects[:homepageProjectLimit]
	}

	technologies, err := s.technologies.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load technologies: %w", err)
	}
	if len(technologies) > homepageTechnologyLimit {
		technologies = technologies[:homepageTechnologyLimit]
	}

	posts, err := s.posts.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	recentPosts := make([]*content.PostNode, 0, homepagePostLimit)
	for _, post := range posts {
		if post.Status == "published" {
			recentPosts = append(recentPosts, post)
		}
	}
	sort.SliceStable(recentPosts, func(i, j int) bool {
		return recentPosts[i].Created.After(recentPosts[j].Created)
	})
	if len(recentPosts) > homepagePostLimit {
		recentPosts = recentPosts[:homepagePostLimit]
	}

	s.logger.Content().Info("Assembled homepage payload",
		"featuredProducts", len(featuredProducts), "featuredServices", len(featuredServices),
		"recentPosts", len(recentPosts), "duration", time.Since(start))

	return &HomepagePayload{
		CompanyInfo:      info,
		Navigation:       menus,
		FeaturedProducts: featuredProducts,
		FeaturedServices: featuredServices,
		RecentProjects:   recentProjects,
		Technologies:     technologies,
		RecentPosts:      recentPosts,
	}, nil
}

// GetHeaderInfo assembles the header payload from company info and the first
// navigation menu.
func (s *AggregateService) GetHeaderInfo() (*HeaderInfoPayload, error) {
	info, err := s.companyInfo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load company info: %w", err)
	}

	menus, err := s.menus.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation: %w", err)
	}
	var navigation []*content.MenuLink
	if len(menus) > 0 {
		navigation = menus[0].Links
	}

	payload := &HeaderInfoPayload{
		SocialLinks: map[string]string{},
		Navigation:  navigation,
	}
	if info != nil {
		payload.CompanyName = info.Name
		payload.Tagline = info.Tagline
		payload.Phone = info.Phone
		payload.Email = info.Email
		payload.Address = info.Address
		if info.SocialLinks != nil {
			payload.SocialLinks = info.SocialLinks
		}
	}
	return payload, nil
}
