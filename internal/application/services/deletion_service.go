// Package services provides the application service layer orchestrating
// content operations over the repositories.
package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

// DeletionOutcome describes one deleted (or attempted) document.
type DeletionOutcome struct {
	ID                string `json:"id"`
	Name              string `json:"name,omitempty"`
	Success           bool   `json:"success"`
	Error             string `json:"error,omitempty"`
	ReferencesCleaned int    `json:"referencesCleaned"`
}

// BulkDeletionOutcome aggregates per-document outcomes for a batch delete.
// Successful plus Failed always equals Total.
type BulkDeletionOutcome struct {
	Results    []DeletionOutcome `json:"results"`
	Errors     []DeletionOutcome `json:"errors"`
	Total      int               `json:"total"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
}

// DeletionService orchestrates document deletion: it scans every collection
// that can point at the target, rewrites those references out, then removes
// the row itself. Reference cleanup failures are logged and never abort the
// delete, so a half-cleaned document can still be removed and re-deleted.
type DeletionService struct {
	store  repositories.DeletionStore
	logger *logging.ChanneledLogger
}

// NewDeletionService creates a deletion service singleton
func NewDeletionService(store repositories.DeletionStore, logger *logging.ChanneledLogger) *DeletionService {
	return &DeletionService{
		store:  store,
		logger: logger,
	}
}

// Delete removes a single document after cleaning up inbound references.
// A missing document is reported via Success=false with no error string
// so callers can distinguish not-found from a storage failure.
func (s *DeletionService) Delete(collection, id string) (DeletionOutcome, error) {
	start := time.Now()
	s.logger.Content().Debug("Starting delete", "collection", collection, "id", id)

	outcome := DeletionOutcome{ID: id}

	name, found, err := s.store.DisplayName(collection, id)
	if err != nil {
		return outcome, fmt.Errorf("failed to load %s %s: %w", collection, id, err)
	}
	if !found {
		return outcome, nil
	}
	outcome.Name = name

	outcome.ReferencesCleaned = s.cleanupReferences(collection, id)

	deleted, err := s.store.Delete(collection, id)
	if err != nil {
		return outcome, err
	}
	outcome.Success = deleted

	s.logger.Content().Info("Delete completed",
		"collection", collection, "id", id, "name", name,
		"referencesCleaned", outcome.ReferencesCleaned, "duration", time.Since(start))

	return outcome, nil
}

// DeleteBulk removes a batch of documents. Reference cleanup runs once per
// unique ID before any row is removed, so documents inside the batch that
// point at each other are both cleaned regardless of deletion order. The
// tally then walks the requested list as given: every requested entry counts
// toward Total, results keep request order, and a duplicate ID fails as
// not-found on its second pass because the first pass removed the row.
func (s *DeletionService) DeleteBulk(collection string, ids []string) BulkDeletionOutcome {
	start := time.Now()

	unique := uniqueIDs(ids)
	s.logger.Content().Debug("Starting bulk delete",
		"collection", collection, "requested", len(ids), "unique", len(unique))

	cleaned := make(map[string]int, len(unique))
	for _, id := range unique {
		cleaned[id] = s.cleanupReferences(collection, id)
	}

	outcome := BulkDeletionOutcome{Total: len(ids)}
	for _, id := range ids {
		item := DeletionOutcome{ID: id, ReferencesCleaned: cleaned[id]}
		delete(cleaned, id)

		name, found, err := s.store.DisplayName(collection, id)
		if err == nil && found {
			item.Name = name
			var deleted bool
			deleted, err = s.store.Delete(collection, id)
			item.Success = err == nil && deleted
		} else if err == nil {
			item.Error = fmt.Sprintf("Không tìm thấy tài liệu với ID: %s", id)
		}
		if err != nil {
			item.Error = err.Error()
			s.logger.Content().Error("Bulk delete item failed",
				"collection", collection, "id", id, "error", err.Error())
		}

		if item.Success {
			outcome.Successful++
			outcome.Results = append(outcome.Results, item)
		} else {
			outcome.Failed++
			outcome.Errors = append(outcome.Errors, item)
		}
	}

	s.logger.Content().Info("Bulk delete completed",
		"collection", collection, "total", outcome.Total,
		"successful", outcome.Successful, "failed", outcome.Failed,
		"duration", time.Since(start))

	return outcome
}

// cleanupReferences rewrites targetID out of every document that points at
// it. Each link and each document is handled independently; a failure on one
// is logged and the rest proceed.
func (s *DeletionService) cleanupReferences(collection, targetID string) int {
	cleaned := 0
	for _, link := range relationships.LinksInto(collection) {
		hits, err := s.store.FindReferencing(link, targetID)
		if err != nil {
			s.logger.Content().Error("Reference scan failed",
				"link", link.Collection+"."+link.Field, "target", targetID, "error", err.Error())
			continue
		}
		for _, hit := range hits {
			rewritten := relationships.RemoveReference(hit.Value, targetID)
			if err := s.store.UpdateReference(link, hit.ID, rewritten); err != nil {
				s.logger.Content().Error("Reference rewrite failed",
					"link", link.Collection+"."+link.Field, "doc", hit.ID,
					"target", targetID, "error", err.Error())
				continue
			}
			cleaned++
		}
	}
	return cleaned
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
