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

// companyInfoID is the fixed row ID for the company_info global.
const companyInfoID = "company-info"

type CompanyInfoRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewCompanyInfoRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *CompanyInfoRepository {
	return &CompanyInfoRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *CompanyInfoRepository) Get() (*content.CompanyInfoNode, error) {
	if node, found := r.cache.GetNode("company_info", companyInfoID); found {
		if info, ok := node.(*content.CompanyInfoNode); ok {
			return info, nil
		}
	}

	row := r.db.QueryRow(
		`SELECT id, name, tagline, address, phone, email, social_links, changed FROM company_info WHERE id = ?`,
		companyInfoID)

	var info content.CompanyInfoNode
	var tagline, address, phone, email sql.NullString
	var changed sql.NullTime
	var socialStr string

	err := row.Scan(&info.ID, &info.Name, &tagline, &address, &phone, &email, &socialStr, &changed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan company info: %w", err)
	}

	info.NodeType = "CompanyInfo"
	if tagline.Valid {
		info.Tagline = &tagline.String
	}
	if address.Valid {
		info.Address = &address.String
	}
	if phone.Valid {
		info.Phone = &phone.String
	}
	if email.Valid {
		info.Email = &email.String
	}
	if changed.Valid {
		info.Changed = &changed.Time
	}
	if socialStr != "" {
		if err := json.Unmarshal([]byte(socialStr), &info.SocialLinks); err != nil {
			return nil, fmt.Errorf("failed to parse social links: %w", err)
		}
	}

	r.cache.SetNode("company_info", companyInfoID, &info)
	return &info, nil
}

func (r *CompanyInfoRepository) Put(info *content.CompanyInfoNode) error {
	socialJSON, _ := json.Marshal(info.SocialLinks)
	now := time.Now().UTC()
	info.Changed = &now

	_, err := r.db.Exec(
		`INSERT INTO company_info (id, name, tagline, address, phone, email, social_links, changed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   tagline = excluded.tagline,
		   address = excluded.address,
		   phone = excluded.phone,
		   email = excluded.email,
		   social_links = excluded.social_links,
		   changed = excluded.changed`,
		companyInfoID, info.Name, info.Tagline, info.Address, info.Phone, info.Email, string(socialJSON), info.Changed)
	if err != nil {
		r.logger.Database().Error("Company info upsert failed", "error", err.Error())
		return fmt.Errorf("failed to upsert company info: %w", err)
	}

	r.cache.InvalidateNode("company_info", companyInfoID)
	return nil
}
