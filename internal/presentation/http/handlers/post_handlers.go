package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// PostHandlers contains HTTP handlers for blog post endpoints
type PostHandlers struct {
	postService *services.PostService
	authService *services.AuthService
	broadcaster *messaging.ContentBroadcaster
	logger      *logging.ChanneledLogger
}

// NewPostHandlers creates post handlers with injected dependencies
func NewPostHandlers(postService *services.PostService, authService *services.AuthService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *PostHandlers {
	return &PostHandlers{
		postService: postService,
		authService: authService,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetPosts handles GET /api/v1/posts
func (h *PostHandlers) GetPosts(c *gin.Context) {
	start := time.Now()

	posts, err := h.postService.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list posts", "error", err.Error())
		api.ServerError(c)
		return
	}

	filters := parseListFilters(c)
	authenticated := isAuthenticated(c, h.authService)

	filtered := make([]*content.PostNode, 0, len(posts))
	for _, p := range posts {
		if !authenticated && p.Status != "published" {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.Slug != "" && p.Slug != filters.Slug {
			continue
		}
		if filters.Search != "" && !matchesSearch(filters.Search, p.Title, deref(p.Excerpt)) {
			continue
		}
		filtered = append(filtered, p)
	}

	page := paginate(filtered, filters.Page, filters.Limit)

	h.logger.HTTP().Info("Posts list request completed",
		"total", len(filtered), "returned", len(page), "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"docs":       page,
		"totalDocs":  len(filtered),
		"page":       filters.Page,
		"limit":      filters.Limit,
		"totalPages": totalPages(len(filtered), filters.Limit),
	})
}

// GetPostByID handles GET /api/v1/posts/:id
func (h *PostHandlers) GetPostByID(c *gin.Context) {
	id := c.Param("id")

	post, err := h.postService.GetByID(id)
	if err != nil {
		h.logger.HTTP().Error("Failed to get post", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}
	if post == nil || (!isAuthenticated(c, h.authService) && post.Status != "published") {
		api.NotFound(c, "posts", id)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPostBySlug handles GET /api/v1/posts/slug/:slug
func (h *PostHandlers) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.postService.GetBySlug(slug)
	if err != nil {
		h.logger.HTTP().Error("Failed to get post by slug", "slug", slug, "error", err.Error())
		api.ServerError(c)
		return
	}
	if post == nil || (!isAuthenticated(c, h.authService) && post.Status != "published") {
		api.NotFound(c, "posts", slug)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost handles POST /api/v1/posts
func (h *PostHandlers) CreatePost(c *gin.Context) {
	var post content.PostNode
	if err := c.ShouldBindJSON(&post); err != nil {
		api.BadRequest(c, "Dữ liệu bài viết không hợp lệ")
		return
	}

	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Slug) == "" {
		api.BadRequest(c, "Tiêu đề và slug là bắt buộc")
		return
	}

	if err := h.postService.Create(&post); err != nil {
		h.logger.HTTP().Error("Failed to create post", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("posts", post.ID, "created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Đã tạo bài viết thành công",
		"data":    post,
	})
}

// UpdatePost handles PUT /api/v1/posts/:id
func (h *PostHandlers) UpdatePost(c *gin.Context) {
	id := c.Param("id")

	var post content.PostNode
	if err := c.ShouldBindJSON(&post); err != nil {
		api.BadRequest(c, "Dữ liệu bài viết không hợp lệ")
		return
	}
	post.ID = id

	if err := h.postService.Update(&post); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "posts", id)
			return
		}
		h.logger.HTTP().Error("Failed to update post", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("posts", id, "updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã cập nhật bài viết thành công",
		"data":    post,
	})
}

// UnpublishPost handles POST /api/v1/posts/unpublish?id=. Unlike a hard
// delete, the post keeps its row and inbound references stay untouched.
func (h *PostHandlers) UnpublishPost(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		api.BadRequest(c, "Thiếu tham số id")
		return
	}

	if err := h.postService.Unpublish(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "posts", id)
			return
		}
		h.logger.HTTP().Error("Failed to unpublish post", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("posts", id, "unpublished")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã gỡ bài viết thành công",
		"data":    gin.H{"id": id, "status": "draft"},
	})
}
