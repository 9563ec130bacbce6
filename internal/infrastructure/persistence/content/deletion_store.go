package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/pkg/config"
)

// collectionTable maps a public collection slug onto its SQL table and the
// column used as a human-readable label in audit logs and bulk summaries.
type collectionTable struct {
	table      string
	nameColumn string
}

var collectionTables = map[string]collectionTable{
	"products":     {table: "products", nameColumn: "name"},
	"events":       {table: "events", nameColumn: "title"},
	"posts":        {table: "posts", nameColumn: "title"},
	"projects":     {table: "projects", nameColumn: "title"},
	"services":     {table: "services", nameColumn: "title"},
	"technologies": {table: "technologies", nameColumn: "name"},
	"partners":     {table: "partners", nameColumn: "name"},
	"menus":        {table: "menus", nameColumn: "title"},
}

// relationColumns maps a relationship link onto the JSON column that stores it.
var relationColumns = map[relationships.Link]string{
	{Collection: "products", Field: "relatedProducts"}: "related_products",
	{Collection: "events", Field: "relatedEvents"}:     "related_events",
	{Collection: "posts", Field: "relatedPosts"}:       "related_posts",
	{Collection: "projects", Field: "technologies"}:    "technologies",
}

// DeletionStore gives the deletion workflow raw row-level access across every
// collection table, bypassing the typed repositories so that reference scans
// and rewrites stay a single round trip per link.
type DeletionStore struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewDeletionStore(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *DeletionStore {
	return &DeletionStore{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

var _ repositories.DeletionStore = (*DeletionStore)(nil)

func (s *DeletionStore) DisplayName(collection, id string) (string, bool, error) {
	ct, ok := collectionTables[collection]
	if !ok {
		return "", false, fmt.Errorf("unknown collection: %s", collection)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, ct.nameColumn, ct.table)
	var name sql.NullString
	err := s.db.QueryRow(query, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up %s %s: %w", collection, id, err)
	}
	return name.String, true, nil
}

func (s *DeletionStore) Delete(collection, id string) (bool, error) {
	ct, ok := collectionTables[collection]
	if !ok {
		return false, fmt.Errorf("unknown collection: %s", collection)
	}

	start := time.Now()
	result, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, ct.table), id)
	if err != nil {
		s.logger.Database().Error("Delete failed", "collection", collection, "id", id, "error", err.Error())
		return false, fmt.Errorf("failed to delete %s %s: %w", collection, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		s.logger.LogSlowQuery(fmt.Sprintf("DELETE FROM %s", ct.table), duration)
	}

	s.cache.InvalidateNode(collection, id)
	return affected > 0, nil
}

// FindReferencing locates every document on the source side of link whose
// relationship column mentions targetID. Two LIKE probes cover the stored
// shapes, the wrapper object form and the flat string form. Results are
// unioned, deduplicated by document ID, and never include targetID itself.
func (s *DeletionStore) FindReferencing(link relationships.Link, targetID string) ([]repositories.ReferenceHit, error) {
	ct, ok := collectionTables[link.Collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection: %s", link.Collection)
	}
	column, ok := relationColumns[link]
	if !ok {
		return nil, fmt.Errorf("unknown relationship field: %s.%s", link.Collection, link.Field)
	}

	patterns := []string{
		`%"value":"` + targetID + `"%`,
		`%"` + targetID + `"%`,
	}

	start := time.Now()
	seen := make(map[string]bool)
	var hits []repositories.ReferenceHit

	for _, pattern := range patterns {
		query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE %s LIKE ?`, column, ct.table, column)
		rows, err := s.db.Query(query, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s for references: %w", link.Collection, link.Field, err)
		}

		for rows.Next() {
			var id, raw string
			if err := rows.Scan(&id, &raw); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan reference row: %w", err)
			}
			if id == targetID || seen[id] {
				continue
			}
			var value any
			if raw != "" {
				if err := json.Unmarshal([]byte(raw), &value); err != nil {
					// Keep the raw string so the rewrite can still match
					// a flat single-value column.
					value = raw
				}
			}
			seen[id] = true
			hits = append(hits, repositories.ReferenceHit{ID: id, Value: value})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("reference scan failed: %w", err)
		}
		rows.Close()
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		s.logger.LogSlowQuery(fmt.Sprintf("reference scan %s.%s", link.Collection, link.Field), duration)
	}

	return hits, nil
}

func (s *DeletionStore) UpdateReference(link relationships.Link, docID string, value any) error {
	ct, ok := collectionTables[link.Collection]
	if !ok {
		return fmt.Errorf("unknown collection: %s", link.Collection)
	}
	column, ok := relationColumns[link]
	if !ok {
		return fmt.Errorf("unknown relationship field: %s.%s", link.Collection, link.Field)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s.%s for %s: %w", link.Collection, link.Field, docID, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE id = ?`, ct.table, column)
	if _, err := s.db.Exec(query, string(encoded), docID); err != nil {
		s.logger.Database().Error("Reference rewrite failed",
			"collection", link.Collection, "field", link.Field, "id", docID, "error", err.Error())
		return fmt.Errorf("failed to rewrite %s.%s on %s: %w", link.Collection, link.Field, docID, err)
	}

	s.cache.InvalidateNode(link.Collection, docID)
	return nil
}
