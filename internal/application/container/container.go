// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/email"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/persistence/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/persistence/database"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Content Services (stateless singletons)
	ProductService        *services.ProductService
	EventService          *services.EventService
	PostService           *services.PostService
	ProjectService        *services.ProjectService
	ServiceCatalogService *services.ServiceCatalogService
	TechnologyService     *services.TechnologyService
	PartnerService        *services.PartnerService
	MenuService           *services.MenuService
	CompanyInfoService    *services.CompanyInfoService

	// Workflow Services
	DeletionService     *services.DeletionService
	ReferenceMapService *services.ReferenceMapService
	AggregateService    *services.AggregateService
	AuthService         *services.AuthService
	ContactService      *services.ContactService

	// Infrastructure Dependencies
	DB          *database.DB
	Cache       caching.ContentCache
	Broadcaster *messaging.ContentBroadcaster
	Logger      *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, cache caching.ContentCache, emailService email.Service, logger *logging.ChanneledLogger) *Container {
	productRepo := content.NewProductRepository(db.DB, cache, logger)
	eventRepo := content.NewEventRepository(db.DB, cache, logger)
	postRepo := content.NewPostRepository(db.DB, cache, logger)
	projectRepo := content.NewProjectRepository(db.DB, cache, logger)
	serviceRepo := content.NewServiceRepository(db.DB, cache, logger)
	technologyRepo := content.NewTechnologyRepository(db.DB, cache, logger)
	partnerRepo := content.NewPartnerRepository(db.DB, cache, logger)
	menuRepo := content.NewMenuRepository(db.DB, cache, logger)
	companyInfoRepo := content.NewCompanyInfoRepository(db.DB, cache, logger)
	deletionStore := content.NewDeletionStore(db.DB, cache, logger)

	broadcaster := messaging.NewContentBroadcaster(logger)

	return &Container{
		ProductService:        services.NewProductService(productRepo, logger),
		EventService:          services.NewEventService(eventRepo, logger),
		PostService:           services.NewPostService(postRepo, logger),
		ProjectService:        services.NewProjectService(projectRepo, logger),
		ServiceCatalogService: services.NewServiceCatalogService(serviceRepo, logger),
		TechnologyService:     services.NewTechnologyService(technologyRepo, logger),
		PartnerService:        services.NewPartnerService(partnerRepo, logger),
		MenuService:           services.NewMenuService(menuRepo, logger),
		CompanyInfoService:    services.NewCompanyInfoService(companyInfoRepo, logger),

		DeletionService: services.NewDeletionService(deletionStore, logger),
		ReferenceMapService: services.NewReferenceMapService(
			productRepo, eventRepo, postRepo, projectRepo, technologyRepo, logger),
		AggregateService: services.NewAggregateService(
			companyInfoRepo, menuRepo, productRepo, serviceRepo, projectRepo,
			technologyRepo, postRepo, logger),
		AuthService:    services.NewAuthService(logger),
		ContactService: services.NewContactService(emailService, logger),

		DB:          db,
		Cache:       cache,
		Broadcaster: broadcaster,
		Logger:      logger,
	}
}
