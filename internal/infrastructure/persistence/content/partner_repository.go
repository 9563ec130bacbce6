package content

import (
	"database/sql"
	"fmt"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

type PartnerRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewPartnerRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *PartnerRepository {
	return &PartnerRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *PartnerRepository) FindByID(id string) (*content.PartnerNode, error) {
	if node, found := r.cache.GetNode("partners", id); found {
		if partner, ok := node.(*content.PartnerNode); ok {
			return partner, nil
		}
	}

	row := r.db.QueryRow(`SELECT id, name, slug, website, logo_url FROM partners WHERE id = ?`, id)

	var partner content.PartnerNode
	var website, logoURL sql.NullString

	err := row.Scan(&partner.ID, &partner.Name, &partner.Slug, &website, &logoURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan partner: %w", err)
	}

	partner.NodeType = "Partner"
	if website.Valid {
		partner.Website = &website.String
	}
	if logoURL.Valid {
		partner.LogoURL = &logoURL.String
	}

	r.cache.SetNode("partners", partner.ID, &partner)
	return &partner, nil
}

func (r *PartnerRepository) FindAll() ([]*content.PartnerNode, error) {
	rows, err := r.db.Query(`SELECT id, name, slug, website, logo_url FROM partners ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var result []*content.PartnerNode
	for rows.Next() {
		var partner content.PartnerNode
		var website, logoURL sql.NullString
		if err := rows.Scan(&partner.ID, &partner.Name, &partner.Slug, &website, &logoURL); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partner.NodeType = "Partner"
		if website.Valid {
			partner.Website = &website.String
		}
		if logoURL.Valid {
			partner.LogoURL = &logoURL.String
		}
		result = append(result, &partner)
	}
	return result, rows.Err()
}

func (r *PartnerRepository) Store(partner *content.PartnerNode) error {
	_, err := r.db.Exec(`INSERT INTO partners (id, name, slug, website, logo_url) VALUES (?, ?, ?, ?, ?)`,
		partner.ID, partner.Name, partner.Slug, partner.Website, partner.LogoURL)
	if err != nil {
		r.logger.Database().Error("Partner insert failed", "error", err.Error(), "id", partner.ID)
		return fmt.Errorf("failed to insert partner: %w", err)
	}

	r.cache.InvalidateNode("partners", partner.ID)
	return nil
}

func (r *PartnerRepository) Update(partner *content.PartnerNode) error {
	_, err := r.db.Exec(`UPDATE partners SET name = ?, slug = ?, website = ?, logo_url = ? WHERE id = ?`,
		partner.Name, partner.Slug, partner.Website, partner.LogoURL, partner.ID)
	if err != nil {
		r.logger.Database().Error("Partner update failed", "error", err.Error(), "id", partner.ID)
		return fmt.Errorf("failed to update partner: %w", err)
	}

	r.cache.InvalidateNode("partners", partner.ID)
	return nil
}
