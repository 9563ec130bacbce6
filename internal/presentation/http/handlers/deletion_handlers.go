package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/messaging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
)

// DeletionHandlers serves DELETE for every collection that supports hard
// deletes. One handler instance covers all collections; routes bind it with
// the collection slug.
type DeletionHandlers struct {
	deletionService *services.DeletionService
	broadcaster     *messaging.ContentBroadcaster
	logger          *logging.ChanneledLogger
}

// NewDeletionHandlers creates deletion handlers with injected dependencies
func NewDeletionHandlers(deletionService *services.DeletionService, broadcaster *messaging.ContentBroadcaster, logger *logging.ChanneledLogger) *DeletionHandlers {
	return &DeletionHandlers{
		deletionService: deletionService,
		broadcaster:     broadcaster,
		logger:          logger,
	}
}

// Delete handles DELETE /api/v1/{collection}?id= and ?ids=a,b,c. The ids
// form always takes the bulk path, even for a single ID.
func (h *DeletionHandlers) Delete(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rawIDs := c.Query("ids"); rawIDs != "" {
			h.deleteBulk(c, collection, rawIDs)
			return
		}

		id := c.Query("id")
		if id == "" {
			api.BadRequest(c, "Thiếu tham số id")
			return
		}

		start := time.Now()
		outcome, err := h.deletionService.Delete(collection, id)
		if err != nil {
			h.logger.HTTP().Error("Delete request failed",
				"collection", collection, "id", id, "error", err.Error())
			api.ServerError(c)
			return
		}
		if !outcome.Success {
			api.NotFound(c, collection, id)
			return
		}

		h.logger.HTTP().Info("Delete request completed",
			"collection", collection, "id", id, "duration", time.Since(start))

		h.broadcaster.Broadcast(collection, id, "deleted")
		api.DeleteSuccess(c, collection, outcome)
	}
}

func (h *DeletionHandlers) deleteBulk(c *gin.Context, collection, rawIDs string) {
	var ids []string
	for _, id := range strings.Split(rawIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		api.BadRequest(c, "Thiếu tham số ids")
		return
	}

	start := time.Now()
	outcome := h.deletionService.DeleteBulk(collection, ids)

	h.logger.HTTP().Info("Bulk delete request completed",
		"collection", collection, "total", outcome.Total,
		"successful", outcome.Successful, "failed", outcome.Failed,
		"duration", time.Since(start))

	for _, item := range outcome.Results {
		h.broadcaster.Broadcast(collection, item.ID, "deleted")
	}
	api.DeleteBulk(c, collection, outcome)
}
