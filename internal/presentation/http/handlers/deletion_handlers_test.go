package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/middleware"
	appconfig "github.com/VRCMedia/vrcsite-go/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

// countingStore tracks every call so tests can assert that unauthenticated
// requests never reach storage.
type countingStore struct {
	docs  map[string]string
	calls int
}

func (s *countingStore) DisplayName(collection, id string) (string, bool, error) {
	s.calls++
	name, ok := s.docs[id]
	return name, ok, nil
}

func (s *countingStore) Delete(collection, id string) (bool, error) {
	s.calls++
	if _, ok := s.docs[id]; !ok {
		return false, nil
	}
	delete(s.docs, id)
	return true, nil
}

func (s *countingStore) FindReferencing(link relationships.Link, targetID string) ([]repositories.ReferenceHit, error) {
	s.calls++
	return nil, nil
}

func (s *countingStore) UpdateReference(link relationships.Link, docID string, value any) error {
	s.calls++
	return nil
}

func setupDeleteRouter(t *testing.T, store *countingStore) *gin.Engine {
	t.Helper()
	appconfig.JWTSecret = "test-secret"

	logger := newTestLogger(t)
	authService := services.NewAuthService(logger)
	deletionService := services.NewDeletionService(store, logger)
	broadcaster := messaging.NewContentBroadcaster(logger)
	deletionHandlers := NewDeletionHandlers(deletionService, broadcaster, logger)

	r := gin.New()
	r.DELETE("/api/v1/products", middleware.AuthRequired(authService), deletionHandlers.Delete("products"))
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := security.GenerateSessionToken("admin", "test-secret", time.Hour)
	require.NoError(t, err)
	return token
}

func TestDeleteUnauthenticatedIs401(t *testing.T) {
	store := &countingStore{docs: map[string]string{"P1": "Máy nén khí"}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?id=P1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, store.calls, "storage must not be touched without auth")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestDeleteInvalidTokenIs401(t *testing.T) {
	store := &countingStore{docs: map[string]string{"P1": "Máy nén khí"}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?id=P1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, store.calls)
}

func TestDeleteWithBearerToken(t *testing.T) {
	store := &countingStore{docs: map[string]string{"P1": "Máy nén khí"}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?id=P1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Máy nén khí")
}

func TestDeleteWithSessionCookie(t *testing.T) {
	store := &countingStore{docs: map[string]string{"P1": "Máy nén khí"}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?id=P1", nil)
	req.AddCookie(&http.Cookie{Name: appconfig.SessionCookieName, Value: adminToken(t)})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteMissingIDIs400(t *testing.T) {
	store := &countingStore{docs: map[string]string{}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.calls)
}

func TestDeleteUnknownIDIs404(t *testing.T) {
	store := &countingStore{docs: map[string]string{}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?id=P9", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "P9")
}

func TestDeleteBulkMixedOutcome(t *testing.T) {
	store := &countingStore{docs: map[string]string{
		"P1": "Máy nén khí",
		"P2": "Điều hòa công nghiệp",
	}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?ids=P1,P2,P9", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMultiStatus, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Đã xóa 2/3 sản phẩm", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(2), data["successful"])
	assert.Equal(t, float64(1), data["failed"])
}

func TestDeleteAdminRefererGetsAdminShape(t *testing.T) {
	store := &countingStore{docs: map[string]string{"P1": "Máy nén khí"}}
	r := setupDeleteRouter(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products?id=P1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	req.Header.Set("Referer", "https://vrc.com.vn/admin/collections/products")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Payload-Admin"))
	assert.Equal(t, "products", w.Header().Get("X-Payload-Refresh"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "docs")
}
