// Package api shapes HTTP response payloads. Admin-originated requests get
// the bare document shapes the admin UI expects, API clients get the
// {success, message, data} envelope.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
)

// collectionLabels holds the Vietnamese display label per collection, used
// in user-facing messages.
var collectionLabels = map[string]string{
	"products":     "sản phẩm",
	"events":       "sự kiện",
	"posts":        "bài viết",
	"projects":     "dự án",
	"services":     "dịch vụ",
	"technologies": "công nghệ",
	"partners":     "đối tác",
	"menus":        "menu",
}

// Label returns the Vietnamese display label for a collection slug.
func Label(collection string) string {
	if label, ok := collectionLabels[collection]; ok {
		return label
	}
	return "tài liệu"
}

// IsAdminRequest reports whether the request originates from the admin UI,
// signalled by the referer path.
func IsAdminRequest(c *gin.Context) bool {
	return strings.Contains(c.Request.Referer(), "/admin")
}

// AdminView resolves which admin shape a delete response should take. The
// explicit view query parameter wins; otherwise the referer is sniffed: the
// admin collection list page refers without an /edit segment.
func AdminView(c *gin.Context, collection string) string {
	switch c.Query("view") {
	case "list":
		return "list"
	case "edit":
		return "edit"
	}

	referer := c.Request.Referer()
	if strings.Contains(referer, "/admin/collections/"+collection) && !strings.Contains(referer, "/edit") {
		return "list"
	}
	return "edit"
}

// writeAdminHeaders marks a response as admin-originated and tells the admin
// UI which collection to refresh.
func writeAdminHeaders(c *gin.Context, collection string) {
	c.Header("X-Payload-Admin", "true")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Header("X-Payload-Refresh", collection)
}

// DeleteSuccess writes the single-delete success response in the shape the
// caller expects.
func DeleteSuccess(c *gin.Context, collection string, outcome services.DeletionOutcome) {
	if IsAdminRequest(c) {
		writeAdminHeaders(c, collection)
		if AdminView(c, collection) == "list" {
			c.JSON(http.StatusOK, gin.H{
				"docs":    []gin.H{{"id": outcome.ID}},
				"errors":  []any{},
				"message": nil,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"doc":     gin.H{"id": outcome.ID, "status": "deleted"},
			"errors":  []any{},
			"message": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Đã xóa thành công %s \"%s\"", Label(collection), outcome.Name),
		"data":    gin.H{"id": outcome.ID, "name": outcome.Name},
	})
}

// DeleteBulk writes the bulk-delete response. Any failure in the batch turns
// the status into 207 Multi-Status, including a batch where nothing
// succeeded.
func DeleteBulk(c *gin.Context, collection string, outcome services.BulkDeletionOutcome) {
	status := http.StatusOK
	if outcome.Failed > 0 {
		status = http.StatusMultiStatus
	}

	if IsAdminRequest(c) {
		writeAdminHeaders(c, collection)
	}

	results := outcome.Results
	if results == nil {
		results = []services.DeletionOutcome{}
	}
	errors := outcome.Errors
	if errors == nil {
		errors = []services.DeletionOutcome{}
	}

	c.JSON(status, gin.H{
		"success": outcome.Failed == 0,
		"message": fmt.Sprintf("Đã xóa %d/%d %s", outcome.Successful, outcome.Total, Label(collection)),
		"data": gin.H{
			"results":    results,
			"errors":     errors,
			"total":      outcome.Total,
			"successful": outcome.Successful,
			"failed":     outcome.Failed,
		},
	})
}

// NotFound writes the 404 envelope for a missing document.
func NotFound(c *gin.Context, collection, id string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": fmt.Sprintf("Không tìm thấy %s với ID: %s", Label(collection), id),
	})
}

// BadRequest writes the 400 envelope with a caller-facing message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// Unauthorized writes the 401 envelope.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Bạn không có quyền thực hiện thao tác này",
	})
}

// ServerError writes the 500 envelope. The raw error stays in server logs,
// never in the body.
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Đã xảy ra lỗi, vui lòng thử lại sau",
	})
}
