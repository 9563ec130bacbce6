package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, referer, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?"+rawQuery, nil)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	c.Request = req
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDeleteSuccessAPIEnvelope(t *testing.T) {
	c, w := testContext(t, "", "id=P1")

	DeleteSuccess(c, "products", services.DeletionOutcome{ID: "P1", Name: "Máy nén khí", Success: true})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Máy nén khí")
	assert.Contains(t, body["message"], "sản phẩm")

	data := body["data"].(map[string]any)
	assert.Equal(t, "P1", data["id"])
	assert.Empty(t, w.Header().Get("X-Payload-Admin"))
}

func TestDeleteSuccessAdminListView(t *testing.T) {
	c, w := testContext(t, "https://vrc.com.vn/admin/collections/products", "id=P1")

	DeleteSuccess(c, "products", services.DeletionOutcome{ID: "P1", Name: "Máy nén khí", Success: true})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	docs := body["docs"].([]any)
	require.Len(t, docs, 1)
	assert.Equal(t, "P1", docs[0].(map[string]any)["id"])
	assert.Equal(t, []any{}, body["errors"])
	assert.Nil(t, body["message"])

	assert.Equal(t, "true", w.Header().Get("X-Payload-Admin"))
	assert.Equal(t, "products", w.Header().Get("X-Payload-Refresh"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
}

func TestDeleteSuccessAdminEditView(t *testing.T) {
	c, w := testContext(t, "https://vrc.com.vn/admin/collections/products/P1/edit", "id=P1")

	DeleteSuccess(c, "products", services.DeletionOutcome{ID: "P1", Name: "Máy nén khí", Success: true})

	body := decodeBody(t, w)
	doc := body["doc"].(map[string]any)
	assert.Equal(t, "P1", doc["id"])
	assert.Equal(t, "deleted", doc["status"])
	assert.Nil(t, body["message"])
}

func TestDeleteSuccessExplicitViewParamWins(t *testing.T) {
	// Referer says edit page, explicit param says list.
	c, w := testContext(t, "https://vrc.com.vn/admin/collections/products/P1/edit", "id=P1&view=list")

	DeleteSuccess(c, "products", services.DeletionOutcome{ID: "P1", Success: true})

	body := decodeBody(t, w)
	assert.Contains(t, body, "docs")
	assert.NotContains(t, body, "doc")
}

func TestDeleteBulkPartialFailureIs207(t *testing.T) {
	c, w := testContext(t, "", "ids=P1,P2,P9")

	DeleteBulk(c, "products", services.BulkDeletionOutcome{
		Results: []services.DeletionOutcome{
			{ID: "P1", Success: true},
			{ID: "P2", Success: true},
		},
		Errors:     []services.DeletionOutcome{{ID: "P9", Error: "Không tìm thấy tài liệu với ID: P9"}},
		Total:      3,
		Successful: 2,
		Failed:     1,
	})

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Đã xóa 2/3 sản phẩm", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(2), data["successful"])
	assert.Equal(t, float64(1), data["failed"])
	assert.Len(t, data["results"], 2)
	assert.Len(t, data["errors"], 1)
}

func TestDeleteBulkFullSuccessIs200(t *testing.T) {
	c, w := testContext(t, "", "ids=P1")

	DeleteBulk(c, "products", services.BulkDeletionOutcome{
		Results:    []services.DeletionOutcome{{ID: "P1", Success: true}},
		Total:      1,
		Successful: 1,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Đã xóa 1/1 sản phẩm", body["message"])
}

func TestDeleteBulkAllFailStill207(t *testing.T) {
	c, w := testContext(t, "", "ids=X1,X2")

	DeleteBulk(c, "events", services.BulkDeletionOutcome{
		Errors: []services.DeletionOutcome{
			{ID: "X1", Error: "Không tìm thấy tài liệu với ID: X1"},
			{ID: "X2", Error: "Không tìm thấy tài liệu với ID: X2"},
		},
		Total:  2,
		Failed: 2,
	})

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Đã xóa 0/2 sự kiện", body["message"])

	// Empty results still serialize as an array, not null.
	data := body["data"].(map[string]any)
	assert.Equal(t, []any{}, data["results"])
}

func TestNotFoundMessage(t *testing.T) {
	c, w := testContext(t, "", "id=P9")

	NotFound(c, "products", "P9")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "P9")
	assert.Contains(t, body["message"], "sản phẩm")
}

func TestLabelFallback(t *testing.T) {
	assert.Equal(t, "sản phẩm", Label("products"))
	assert.Equal(t, "tài liệu", Label("unknown"))
}
