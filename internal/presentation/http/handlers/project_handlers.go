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

// ProjectHandlers contains HTTP handlers for project endpoints
type ProjectHandlers struct {
	projectService *services.ProjectService
	authService    *services.AuthService
	broadcaster    *messaging.ContentBroadcaster
	logger         *logging.ChanneledLogger
}

// NewProjectHandlers creates project handlers with injected dependencies
func NewProjectHandlers(projectService *services.ProjectService, authService *services.AuthService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *ProjectHandlers {
	return &ProjectHandlers{
		projectService: projectService,
		authService:    authService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// GetProjects handles GET /api/v1/projects
func (h *ProjectHandlers) GetProjects(c *gin.Context) {
	projects, err := h.projectService.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list projects", "error", err.Error())
		api.ServerError(c)
		return
	}

	filters := parseListFilters(c)
	authenticated := isAuthenticated(c, h.authService)

	filtered := make([]*content.ProjectNode, 0, len(projects))
	for _, p := range projects {
		if !authenticated && p.Status != "published" {
			continue
		}
		if filters.Slug != "" && p.Slug != filters.Slug {
			continue
		}
		if filters.Search != "" && !matchesSearch(filters.Search, p.Title, deref(p.Summary), deref(p.Client)) {
			continue
		}
		filtered = append(filtered, p)
	}

	page := paginate(filtered, filters.Page, filters.Limit)

	c.JSON(http.StatusOK, gin.H{
		"docs":       page,
		"totalDocs":  len(filtered),
		"page":       filters.Page,
		"limit":      filters.Limit,
		"totalPages": totalPages(len(filtered), filters.Limit),
	})
}

// GetProjectByID handles GET /api/v1/projects/:id
func (h *ProjectHandlers) GetProjectByID(c *gin.Context) {
	id := c.Param("id")

	project, err := h.projectService.GetByID(id)
	if err != nil {
		h.logger.HTTP().Error("Failed to get project", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}
	if project == nil || (!isAuthenticated(c, h.authService) && project.Status != "published") {
		api.NotFound(c, "projects", id)
		return
	}

	c.JSON(http.StatusOK, project)
}

// GetProjectBySlug handles GET /api/v1/projects/slug/:slug
func (h *ProjectHandlers) GetProjectBySlug(c *gin.Context) {
	slug := c.Param("slug")

	project, err := h.projectService.GetBySlug(slug)
	if err != nil {
		h.logger.HTTP().Error("Failed to get project by slug", "slug", slug, "error", err.Error())
		api.ServerError(c)
		return
	}
	if project == nil || (!isAuthenticated(c, h.authService) && project.Status != "published") {
		api.NotFound(c, "projects", slug)
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandlers) CreateProject(c *gin.Context) {
	var project content.ProjectNode
	if err := c.ShouldBindJSON(&project); err != nil {
		api.BadRequest(c, "Dữ liệu dự án không hợp lệ")
		return
	}

	if strings.TrimSpace(project.Title) == "" || strings.TrimSpace(project.Slug) == "" {
		api.BadRequest(c, "Tiêu đề và slug là bắt buộc")
		return
	}

	if err := h.projectService.Create(&project); err != nil {
		h.logger.HTTP().Error("Failed to create project", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("projects", project.ID, "created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Đã tạo dự án thành công",
		"data":    project,
	})
}

// UpdateProject handles PUT /api/v1/projects/:id
func (h *ProjectHandlers) UpdateProject(c *gin.Context) {
	id := c.Param("id")

	var project content.ProjectNode
	if err := c.ShouldBindJSON(&project); err != nil {
		api.BadRequest(c, "Dữ liệu dự án không hợp lệ")
		return
	}
	project.ID = id

	if err := h.projectService.Update(&project); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "projects", id)
			return
		}
		h.logger.HTTP().Error("Failed to update project", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("projects", id, "updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã cập nhật dự án thành công",
		"data":    project,
	})
}
