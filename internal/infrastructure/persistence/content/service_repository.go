package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

type ServiceRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewServiceRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *ServiceRepository {
	return &ServiceRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ServiceRepository) FindByID(id string) (*content.ServiceNode, error) {
	if node, found := r.cache.GetNode("services", id); found {
		if service, ok := node.(*content.ServiceNode); ok {
			return service, nil
		}
	}

	service, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, nil
	}

	r.cache.SetNode("services", service.ID, service)
	return service, nil
}

func (r *ServiceRepository) FindBySlug(slug string) (*content.ServiceNode, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM services WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service slug: %w", err)
	}

	return r.FindByID(id)
}

func (r *ServiceRepository) FindAll() ([]*content.ServiceNode, error) {
	if ids, found := r.cache.GetAllIDs("services"); found {
		return r.findByIDs(ids)
	}

	rows, err := r.db.Query(`SELECT id FROM services ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan service ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.SetAllIDs("services", ids)
	return r.findByIDs(ids)
}

func (r *ServiceRepository) findByIDs(ids []string) ([]*content.ServiceNode, error) {
	result := make([]*content.ServiceNode, 0, len(ids))
	for _, id := range ids {
		service, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if service != nil {
			result = append(result, service)
		}
	}
	return result, nil
}

func (r *ServiceRepository) Store(service *content.ServiceNode) error {
	bodyJSON, _ := json.Marshal(service.Body)

	start := time.Now()
	_, err := r.db.Exec(
		`INSERT INTO services (id, title, slug, summary, body, featured, status, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		service.ID, service.Title, service.Slug, service.Summary, string(bodyJSON),
		service.Featured, service.Status, service.Created)
	if err != nil {
		r.logger.Database().Error("Service insert failed", "error", err.Error(), "id", service.ID)
		return fmt.Errorf("failed to insert service: %w", err)
	}

	r.logger.Database().Info("Service insert completed", "id", service.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("services", service.ID)
	return nil
}

func (r *ServiceRepository) Update(service *content.ServiceNode) error {
	bodyJSON, _ := json.Marshal(service.Body)

	start := time.Now()
	_, err := r.db.Exec(
		`UPDATE services SET title = ?, slug = ?, summary = ?, body = ?, featured = ?, status = ?, changed = ? WHERE id = ?`,
		service.Title, service.Slug, service.Summary, string(bodyJSON),
		service.Featured, service.Status, time.Now().UTC(), service.ID)
	if err != nil {
		r.logger.Database().Error("Service update failed", "error", err.Error(), "id", service.ID)
		return fmt.Errorf("failed to update service: %w", err)
	}

	r.logger.Database().Info("Service update completed", "id", service.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("services", service.ID)
	return nil
}

func (r *ServiceRepository) loadFromDB(id string) (*content.ServiceNode, error) {
	row := r.db.QueryRow(
		`SELECT id, title, slug, summary, body, featured, status, created, changed FROM services WHERE id = ?`, id)

	var service content.ServiceNode
	var summary, body sql.NullString
	var changed sql.NullTime

	err := row.Scan(&service.ID, &service.Title, &service.Slug, &summary, &body,
		&service.Featured, &service.Status, &service.Created, &changed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}

	service.NodeType = "Service"
	if summary.Valid {
		service.Summary = &summary.String
	}
	if body.Valid && body.String != "" && body.String != "null" {
		if err := json.Unmarshal([]byte(body.String), &service.Body); err != nil {
			return nil, fmt.Errorf("failed to parse service body: %w", err)
		}
	}
	if changed.Valid {
		service.Changed = &changed.Time
	}

	return &service, nil
}
