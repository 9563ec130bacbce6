// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/container"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/handlers"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	productHandlers := handlers.NewProductHandlers(container.ProductService, container.AuthService, container.Broadcaster, container.Logger)
	eventHandlers := handlers.NewEventHandlers(container.EventService, container.AuthService, container.Broadcaster, container.Logger)
	postHandlers := handlers.NewPostHandlers(container.PostService, container.AuthService, container.Broadcaster, container.Logger)
	projectHandlers := handlers.NewProjectHandlers(container.ProjectService, container.AuthService, container.Broadcaster, container.Logger)
	catalogHandlers := handlers.NewCatalogHandlers(
		container.ServiceCatalogService,
		container.TechnologyService,
		container.PartnerService,
		container.AuthService,
		container.Broadcaster,
		container.Logger,
	)
	menuHandlers := handlers.NewMenuHandlers(container.MenuService, container.Broadcaster, container.Logger)
	companyInfoHandlers := handlers.NewCompanyInfoHandlers(container.CompanyInfoService, container.Broadcaster, container.Logger)
	deletionHandlers := handlers.NewDeletionHandlers(container.DeletionService, container.Broadcaster, container.Logger)
	contactHandlers := handlers.NewContactHandlers(container.ContactService, container.Logger)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	adminHandlers := handlers.NewAdminHandlers(container.ReferenceMapService, container.Broadcaster, container.Logger)
	aggregateHandlers := handlers.NewAggregateHandlers(container.AggregateService, container.Logger)
	healthHandlers := handlers.NewHealthHandlers(container.DB)

	authRequired := middleware.AuthRequired(container.AuthService)

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandlers.Health)
		api.GET("/homepage", aggregateHandlers.GetHomepage)
		api.GET("/header-info", aggregateHandlers.GetHeaderInfo)
		api.POST("/contact", contactHandlers.SubmitContact)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.Login)
			auth.POST("/logout", authHandlers.Logout)
			auth.GET("/status", authHandlers.Status)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandlers.GetProducts)
			products.GET("/slug/:slug", productHandlers.GetProductBySlug)
			products.GET("/:id", productHandlers.GetProductByID)
			products.POST("", authRequired, productHandlers.CreateProduct)
			products.PUT("/:id", authRequired, productHandlers.UpdateProduct)
			products.DELETE("", authRequired, deletionHandlers.Delete("products"))
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandlers.GetEvents)
			events.GET("/slug/:slug", eventHandlers.GetEventBySlug)
			events.GET("/:id", eventHandlers.GetEventByID)
			events.POST("", authRequired, eventHandlers.CreateEvent)
			events.PUT("/:id", authRequired, eventHandlers.UpdateEvent)
			events.DELETE("", authRequired, deletionHandlers.Delete("events"))
		}

		posts := api.Group("/posts")
		{
			posts.GET("", postHandlers.GetPosts)
			posts.GET("/slug/:slug", postHandlers.GetPostBySlug)
			posts.POST("/unpublish", authRequired, postHandlers.UnpublishPost)
			posts.GET("/:id", postHandlers.GetPostByID)
			posts.POST("", authRequired, postHandlers.CreatePost)
			posts.PUT("/:id", authRequired, postHandlers.UpdatePost)
			posts.DELETE("", authRequired, deletionHandlers.Delete("posts"))
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandlers.GetProjects)
			projects.GET("/slug/:slug", projectHandlers.GetProjectBySlug)
			projects.GET("/:id", projectHandlers.GetProjectByID)
			projects.POST("", authRequired, projectHandlers.CreateProject)
			projects.PUT("/:id", authRequired, projectHandlers.UpdateProject)
			projects.DELETE("", authRequired, deletionHandlers.Delete("projects"))
		}

		servicesGroup := api.Group("/services")
		{
			servicesGroup.GET("", catalogHandlers.GetServices)
			servicesGroup.GET("/slug/:slug", catalogHandlers.GetServiceBySlug)
			servicesGroup.GET("/:id", catalogHandlers.GetServiceByID)
			servicesGroup.POST("", authRequired, catalogHandlers.CreateService)
			servicesGroup.PUT("/:id", authRequired, catalogHandlers.UpdateService)
			servicesGroup.DELETE("", authRequired, deletionHandlers.Delete("services"))
		}

		technologies := api.Group("/technologies")
		{
			technologies.GET("", catalogHandlers.GetTechnologies)
			technologies.GET("/:id", catalogHandlers.GetTechnologyByID)
			technologies.POST("", authRequired, catalogHandlers.CreateTechnology)
			technologies.PUT("/:id", authRequired, catalogHandlers.UpdateTechnology)
			technologies.DELETE("", authRequired, deletionHandlers.Delete("technologies"))
		}

		partners := api.Group("/partners")
		{
			partners.GET("", catalogHandlers.GetPartners)
			partners.GET("/:id", catalogHandlers.GetPartnerByID)
			partners.POST("", authRequired, catalogHandlers.CreatePartner)
			partners.PUT("/:id", authRequired, catalogHandlers.UpdatePartner)
			partners.DELETE("", authRequired, deletionHandlers.Delete("partners"))
		}

		menus := api.Group("/menus")
		{
			menus.GET("", menuHandlers.GetMenus)
			menus.GET("/:id", menuHandlers.GetMenuByID)
			menus.POST("", authRequired, menuHandlers.CreateMenu)
			menus.PUT("/:id", authRequired, menuHandlers.UpdateMenu)
			menus.DELETE("", authRequired, deletionHandlers.Delete("menus"))
		}

		api.GET("/company-info", companyInfoHandlers.GetCompanyInfo)
		api.PUT("/company-info", authRequired, companyInfoHandlers.PutCompanyInfo)

		admin := api.Group("/admin")
		admin.Use(authRequired)
		{
			admin.GET("/reference-map", adminHandlers.GetReferenceMap)
			admin.GET("/ws", adminHandlers.ContentFeed)
		}
	}

	return r
}
