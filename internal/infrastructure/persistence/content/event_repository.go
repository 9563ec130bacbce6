package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/pkg/config"
)

type EventRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewEventRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *EventRepository {
	return &EventRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *EventRepository) FindByID(id string) (*content.EventNode, error) {
	if node, found := r.cache.GetNode("events", id); found {
		if event, ok := node.(*content.EventNode); ok {
			return event, nil
		}
	}

	event, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	r.cache.SetNode("events", event.ID, event)
	return event, nil
}

func (r *EventRepository) FindBySlug(slug string) (*content.EventNode, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM events WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve event slug: %w", err)
	}

	return r.FindByID(id)
}

func (r *EventRepository) FindAll() ([]*content.EventNode, error) {
	if ids, found := r.cache.GetAllIDs("events"); found {
		return r.FindByIDs(ids)
	}

	query := `SELECT id FROM events ORDER BY start_date DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan event ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.EventNode{}, nil
	}

	r.cache.SetAllIDs("events", ids)
	return r.FindByIDs(ids)
}

func (r *EventRepository) FindByIDs(ids []string) ([]*content.EventNode, error) {
	var result []*content.EventNode

	for _, id := range ids {
		event, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if event != nil {
			result = append(result, event)
		}
	}

	return result, nil
}

func (r *EventRepository) Store(event *content.EventNode) error {
	relatedJSON, _ := json.Marshal(event.RelatedEvents)

	query := `INSERT INTO events (id, title, slug, summary, location, start_date, end_date, status, related_events, created)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing event insert", "id", event.ID)

	_, err := r.db.Exec(query, event.ID, event.Title, event.Slug, event.Summary,
		event.Location, event.StartDate, event.EndDate, event.Status, string(relatedJSON), event.Created)
	if err != nil {
		r.logger.Database().Error("Event insert failed", "error", err.Error(), "id", event.ID)
		return fmt.Errorf("failed to insert event: %w", err)
	}

	r.logger.Database().Info("Event insert completed", "id", event.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("events", event.ID)
	return nil
}

func (r *EventRepository) Update(event *content.EventNode) error {
	relatedJSON, _ := json.Marshal(event.RelatedEvents)

	query := `UPDATE events SET title = ?, slug = ?, summary = ?, location = ?, start_date = ?,
              end_date = ?, status = ?, related_events = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing event update", "id", event.ID)

	now := time.Now().UTC()
	_, err := r.db.Exec(query, event.Title, event.Slug, event.Summary, event.Location,
		event.StartDate, event.EndDate, event.Status, string(relatedJSON), now, event.ID)
	if err != nil {
		r.logger.Database().Error("Event update failed", "error", err.Error(), "id", event.ID)
		return fmt.Errorf("failed to update event: %w", err)
	}

	r.logger.Database().Info("Event update completed", "id", event.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateNode("events", event.ID)
	return nil
}

func (r *EventRepository) loadFromDB(id string) (*content.EventNode, error) {
	query := `SELECT id, title, slug, summary, location, start_date, end_date, status, related_events, created, changed
              FROM events WHERE id = ?`

	row := r.db.QueryRow(query, id)

	var event content.EventNode
	var summary, location sql.NullString
	var startDate, endDate, changed sql.NullTime
	var relatedStr string

	err := row.Scan(&event.ID, &event.Title, &event.Slug, &summary, &location,
		&startDate, &endDate, &event.Status, &relatedStr, &event.Created, &changed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan event", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.NodeType = "Event"
	if summary.Valid {
		event.Summary = &summary.String
	}
	if location.Valid {
		event.Location = &location.String
	}
	if startDate.Valid {
		event.StartDate = &startDate.Time
	}
	if endDate.Valid {
		event.EndDate = &endDate.Time
	}
	if changed.Valid {
		event.Changed = &changed.Time
	}

	var rawRelated any
	if relatedStr != "" {
		if err := json.Unmarshal([]byte(relatedStr), &rawRelated); err != nil {
			return nil, fmt.Errorf("failed to parse related events: %w", err)
		}
	}
	event.RelatedEvents = relationships.Normalize(rawRelated, "events")

	return &event, nil
}
