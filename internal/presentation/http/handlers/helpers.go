package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/middleware"
)

// listFilters holds the query parameters shared by collection list endpoints.
type listFilters struct {
	Page     int
	Limit    int
	Slug     string
	Category string
	Search   string
	Status   string
	Featured *bool
}

func parseListFilters(c *gin.Context) listFilters {
	filters := listFilters{
		Page:     1,
		Limit:    20,
		Slug:     c.Query("slug"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		filters.Limit = limit
	}
	if featured := c.Query("featured"); featured != "" {
		value := featured == "true" || featured == "1"
		filters.Featured = &value
	}

	return filters
}

// isAuthenticated reports whether the request carries a valid session token.
// Public list endpoints use this to decide between published-only and full
// visibility without requiring auth.
func isAuthenticated(c *gin.Context, authService *services.AuthService) bool {
	_, ok := authService.ValidateToken(middleware.ExtractToken(c))
	return ok
}

func matchesSearch(search string, fields ...string) bool {
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
