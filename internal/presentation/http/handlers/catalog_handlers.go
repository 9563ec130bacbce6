package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// CatalogHandlers serves the lean lookup collections: services, technologies
// and partners.
type CatalogHandlers struct {
	serviceCatalog *services.ServiceCatalogService
	technologies   *services.TechnologyService
	partners       *services.PartnerService
	authService    *services.AuthService
	broadcaster    *messaging.ContentBroadcaster
	logger         *logging.ChanneledLogger
}

// NewCatalogHandlers creates catalog handlers with injected dependencies
func NewCatalogHandlers(
	serviceCatalog *services.ServiceCatalogService,
	technologies *services.TechnologyService,
	partners *services.PartnerService,
	authService *services.AuthService,
	broadcaster *messaging.ContentBroadcaster,
	logger *logging.ChanneledLogger,
) *CatalogHandlers {
	return &CatalogHandlers{
		serviceCatalog: serviceCatalog,
		technologies:   technologies,
		partners:       partners,
		authService:    authService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// GetServices handles GET /api/v1/services
func (h *CatalogHandlers) GetServices(c *gin.Context) {
	all, err := h.serviceCatalog.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list services", "error", err.Error())
		api.ServerError(c)
		return
	}

	authenticated := isAuthenticated(c, h.authService)
	filtered := make([]*content.ServiceNode, 0, len(all))
	for _, s := range all {
		if !authenticated && s.Status != "published" {
			continue
		}
		filtered = append(filtered, s)
	}

	c.JSON(http.StatusOK, gin.H{"docs": filtered, "totalDocs": len(filtered)})
}

// GetServiceByID handles GET /api/v1/services/:id
func (h *CatalogHandlers) GetServiceByID(c *gin.Context) {
	id := c.Param("id")

	svc, err := h.serviceCatalog.GetByID(id)
	if err != nil {
		api.ServerError(c)
		return
	}
	if svc == nil || (!isAuthenticated(c, h.authService) && svc.Status != "published") {
		api.NotFound(c, "services", id)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// GetServiceBySlug handles GET /api/v1/services/slug/:slug
func (h *CatalogHandlers) GetServiceBySlug(c *gin.Context) {
	slug := c.Param("slug")

	svc, err := h.serviceCatalog.GetBySlug(slug)
	if err != nil {
		api.ServerError(c)
		return
	}
	if svc == nil || (!isAuthenticated(c, h.authService) && svc.Status != "published") {
		api.NotFound(c, "services", slug)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateService handles POST /api/v1/services
func (h *CatalogHandlers) CreateService(c *gin.Context) {
	var svc content.ServiceNode
	if err := c.ShouldBindJSON(&svc); err != nil {
		api.BadRequest(c, "Dữ liệu dịch vụ không hợp lệ")
		return
	}
	if strings.TrimSpace(svc.Title) == "" || strings.TrimSpace(svc.Slug) == "" {
		api.BadRequest(c, "Tiêu đề và slug là bắt buộc")
		return
	}

	if err := h.serviceCatalog.Create(&svc); err != nil {
		h.logger.HTTP().Error("Failed to create service", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("services", svc.ID, "created")
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Đã tạo dịch vụ thành công", "data": svc})
}

// UpdateService handles PUT /api/v1/services/:id
func (h *CatalogHandlers) UpdateService(c *gin.Context) {
	id := c.Param("id")

	var svc content.ServiceNode
	if err := c.ShouldBindJSON(&svc); err != nil {
		api.BadRequest(c, "Dữ liệu dịch vụ không hợp lệ")
		return
	}
	svc.ID = id

	if err := h.serviceCatalog.Update(&svc); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "services", id)
			return
		}
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("services", id, "updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đã cập nhật dịch vụ thành công", "data": svc})
}

// GetTechnologies handles GET /api/v1/technologies
func (h *CatalogHandlers) GetTechnologies(c *gin.Context) {
	all, err := h.technologies.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list technologies", "error", err.Error())
		api.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": all, "totalDocs": len(all)})
}

// GetTechnologyByID handles GET /api/v1/technologies/:id
func (h *CatalogHandlers) GetTechnologyByID(c *gin.Context) {
	id := c.Param("id")

	tech, err := h.technologies.GetByID(id)
	if err != nil {
		api.ServerError(c)
		return
	}
	if tech == nil {
		api.NotFound(c, "technologies", id)
		return
	}
	c.JSON(http.StatusOK, tech)
}

// CreateTechnology handles POST /api/v1/technologies
func (h *CatalogHandlers) CreateTechnology(c *gin.Context) {
	var tech content.TechnologyNode
	if err := c.ShouldBindJSON(&tech); err != nil {
		api.BadRequest(c, "Dữ liệu công nghệ không hợp lệ")
		return
	}
	if strings.TrimSpace(tech.Name) == "" || strings.TrimSpace(tech.Slug) == "" {
		api.BadRequest(c, "Tên và slug là bắt buộc")
		return
	}

	if err := h.technologies.Create(&tech); err != nil {
		h.logger.HTTP().Error("Failed to create technology", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("technologies", tech.ID, "created")
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Đã tạo công nghệ thành công", "data": tech})
}

// UpdateTechnology handles PUT /api/v1/technologies/:id
func (h *CatalogHandlers) UpdateTechnology(c *gin.Context) {
	id := c.Param("id")

	var tech content.TechnologyNode
	if err := c.ShouldBindJSON(&tech); err != nil {
		api.BadRequest(c, "Dữ liệu công nghệ không hợp lệ")
		return
	}
	tech.ID = id

	if err := h.technologies.Update(&tech); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "technologies", id)
			return
		}
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("technologies", id, "updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đã cập nhật công nghệ thành công", "data": tech})
}

// GetPartners handles GET /api/v1/partners
func (h *CatalogHandlers) GetPartners(c *gin.Context) {
	all, err := h.partners.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list partners", "error", err.Error())
		api.ServerError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": all, "totalDocs": len(all)})
}

// GetPartnerByID handles GET /api/v1/partners/:id
func (h *CatalogHandlers) GetPartnerByID(c *gin.Context) {
	id := c.Param("id")

	partner, err := h.partners.GetByID(id)
	if err != nil {
		api.ServerError(c)
		return
	}
	if partner == nil {
		api.NotFound(c, "partners", id)
		return
	}
	c.JSON(http.StatusOK, partner)
}

// CreatePartner handles POST /api/v1/partners
func (h *CatalogHandlers) CreatePartner(c *gin.Context) {
	var partner content.PartnerNode
	if err := c.ShouldBindJSON(&partner); err != nil {
		api.BadRequest(c, "Dữ liệu đối tác không hợp lệ")
		return
	}
	if strings.TrimSpace(partner.Name) == "" {
		api.BadRequest(c, "Tên là bắt buộc")
		return
	}

	if err := h.partners.Create(&partner); err != nil {
		h.logger.HTTP().Error("Failed to create partner", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("partners", partner.ID, "created")
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Đã tạo đối tác thành công", "data": partner})
}

// UpdatePartner handles PUT /api/v1/partners/:id
func (h *CatalogHandlers) UpdatePartner(c *gin.Context) {
	id := c.Param("id")

	var partner content.PartnerNode
	if err := c.ShouldBindJSON(&partner); err != nil {
		api.BadRequest(c, "Dữ liệu đối tác không hợp lệ")
		return
	}
	partner.ID = id

	if err := h.partners.Update(&partner); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "partners", id)
			return
		}
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("partners", id, "updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đã cập nhật đối tác thành công", "data": partner})
}
