// Package handlers provides HTTP handlers for the content API endpoints
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

// ProductHandlers contains HTTP handlers for product endpoints
type ProductHandlers struct {
	productService *services.ProductService
	authService    *services.AuthService
	broadcaster    *messaging.ContentBroadcaster
	logger         *logging.ChanneledLogger
}

// NewProductHandlers creates product handlers with injected dependencies
func NewProductHandlers(productService *services.ProductService, authService *services.AuthService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		authService:    authService,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// GetProducts handles GET /api/v1/products with list filters.
// Unauthenticated callers only see published products.
func (h *ProductHandlers) GetProducts(c *gin.Context) {
	start := time.Now()
	h.logger.HTTP().Debug("Starting products list request", "path", c.Request.URL.Path)

	products, err := h.productService.GetAll()
	if err != nil {
		h.logger.HTTP().Error("Failed to list products", "error", err.Error())
		api.ServerError(c)
		return
	}

	filters := parseListFilters(c)
	authenticated := isAuthenticated(c, h.authService)

	filtered := make([]*content.ProductNode, 0, len(products))
	for _, p := range products {
		if !authenticated && p.Status != "published" {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.Slug != "" && p.Slug != filters.Slug {
			continue
		}
		if filters.Category != "" && (p.Category == nil || *p.Category != filters.Category) {
			continue
		}
		if filters.Featured != nil && p.Featured != *filters.Featured {
			continue
		}
		if filters.Search != "" && !matchesSearch(filters.Search, p.Name, deref(p.Excerpt)) {
			continue
		}
		filtered = append(filtered, p)
	}

	page := paginate(filtered, filters.Page, filters.Limit)

	h.logger.HTTP().Info("Products list request completed",
		"total", len(filtered), "returned", len(page), "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"docs":       page,
		"totalDocs":  len(filtered),
		"page":       filters.Page,
		"limit":      filters.Limit,
		"totalPages": totalPages(len(filtered), filters.Limit),
	})
}

// GetProductByID handles GET /api/v1/products/:id
func (h *ProductHandlers) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	product, err := h.productService.GetByID(id)
	if err != nil {
		h.logger.HTTP().Error("Failed to get product", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}
	if product == nil || (!isAuthenticated(c, h.authService) && product.Status != "published") {
		api.NotFound(c, "products", id)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProductBySlug handles GET /api/v1/products/slug/:slug
func (h *ProductHandlers) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.productService.GetBySlug(slug)
	if err != nil {
		h.logger.HTTP().Error("Failed to get product by slug", "slug", slug, "error", err.Error())
		api.ServerError(c)
		return
	}
	if product == nil || (!isAuthenticated(c, h.authService) && product.Status != "published") {
		api.NotFound(c, "products", slug)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	var product content.ProductNode
	if err := c.ShouldBindJSON(&product); err != nil {
		api.BadRequest(c, "Dữ liệu sản phẩm không hợp lệ")
		return
	}

	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Slug) == "" {
		api.BadRequest(c, "Tên và slug là bắt buộc")
		return
	}

	if err := h.productService.Create(&product); err != nil {
		h.logger.HTTP().Error("Failed to create product", "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("products", product.ID, "created")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Đã tạo sản phẩm thành công",
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product content.ProductNode
	if err := c.ShouldBindJSON(&product); err != nil {
		api.BadRequest(c, "Dữ liệu sản phẩm không hợp lệ")
		return
	}
	product.ID = id

	if err := h.productService.Update(&product); err != nil {
		if strings.Contains(err.Error(), "not found") {
			api.NotFound(c, "products", id)
			return
		}
		h.logger.HTTP().Error("Failed to update product", "id", id, "error", err.Error())
		api.ServerError(c)
		return
	}

	h.broadcaster.Broadcast("products", id, "updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đã cập nhật sản phẩm thành công",
		"data":    product,
	})
}
