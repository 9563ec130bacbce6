package content

import (
	"database/sql"
	"fmt"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

type TechnologyRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewTechnologyRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *TechnologyRepository {
	return &TechnologyRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *TechnologyRepository) FindByID(id string) (*content.TechnologyNode, error) {
	if node, found := r.cache.GetNode("technologies", id); found {
		if technology, ok := node.(*content.TechnologyNode); ok {
			return technology, nil
		}
	}

	row := r.db.QueryRow(`SELECT id, name, slug, website FROM technologies WHERE id = ?`, id)

	var technology content.TechnologyNode
	var website sql.NullString

	err := row.Scan(&technology.ID, &technology.Name, &technology.Slug, &website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan technology: %w", err)
	}

	technology.NodeType = "Technology"
	if website.Valid {
		technology.Website = &website.String
	}

	r.cache.SetNode("technologies", technology.ID, &technology)
	return &technology, nil
}

func (r *TechnologyRepository) FindBySlug(slug string) (*content.TechnologyNode, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM technologies WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve technology slug: %w", err)
	}

	return r.FindByID(id)
}

func (r *TechnologyRepository) FindAll() ([]*content.TechnologyNode, error) {
	if ids, found := r.cache.GetAllIDs("technologies"); found {
		result := make([]*content.TechnologyNode, 0, len(ids))
		for _, id := range ids {
			technology, err := r.FindByID(id)
			if err != nil {
				return nil, err
			}
			if technology != nil {
				result = append(result, technology)
			}
		}
		return result, nil
	}

	rows, err := r.db.Query(`SELECT id, name, slug, website FROM technologies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query technologies: %w", err)
	}
	defer rows.Close()

	var result []*content.TechnologyNode
	var ids []string
	for rows.Next() {
		var technology content.TechnologyNode
		var website sql.NullString
		if err := rows.Scan(&technology.ID, &technology.Name, &technology.Slug, &website); err != nil {
			return nil, fmt.Errorf("failed to scan technology: %w", err)
		}
		technology.NodeType = "Technology"
		if website.Valid {
			technology.Website = &website.String
		}
		r.cache.SetNode("technologies", technology.ID, &technology)
		result = append(result, &technology)
		ids = append(ids, technology.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.SetAllIDs("technologies", ids)
	return result, nil
}

func (r *TechnologyRepository) Store(technology *content.TechnologyNode) error {
	_, err := r.db.Exec(`INSERT INTO technologies (id, name, slug, website) VALUES (?, ?, ?, ?)`,
		technology.ID, technology.Name, technology.Slug, technology.Website)
	if err != nil {
		r.logger.Database().Error("Technology insert failed", "error", err.Error(), "id", technology.ID)
		return fmt.Errorf("failed to insert technology: %w", err)
	}

	r.cache.InvalidateNode("technologies", technology.ID)
	return nil
}

func (r *TechnologyRepository) Update(technology *content.TechnologyNode) error {
	_, err := r.db.Exec(`UPDATE technologies SET name = ?, slug = ?, website = ? WHERE id = ?`,
		technology.Name, technology.Slug, technology.Website, technology.ID)
	if err != nil {
		r.logger.Database().Error("Technology update failed", "error", err.Error(), "id", technology.ID)
		return fmt.Errorf("failed to update technology: %w", err)
	}

	r.cache.InvalidateNode("technologies", technology.ID)
	return nil
}
