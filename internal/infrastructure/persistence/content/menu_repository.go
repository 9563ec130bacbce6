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

type MenuRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewMenuRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *MenuRepository {
	return &MenuRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *MenuRepository) FindByID(id string) (*content.MenuNode, error) {
	if node, found := r.cache.GetNode("menus", id); found {
		if menu, ok := node.(*content.MenuNode); ok {
			return menu, nil
		}
	}

	row := r.db.QueryRow(`SELECT id, title, links FROM menus WHERE id = ?`, id)

	var menu content.MenuNode
	var linksStr string

	err := row.Scan(&menu.ID, &menu.Title, &linksStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan menu: %w", err)
	}

	menu.NodeType = "Menu"
	if linksStr != "" {
		if err := json.Unmarshal([]byte(linksStr), &menu.Links); err != nil {
			return nil, fmt.Errorf("failed to parse menu links: %w", err)
		}
	}

	r.cache.SetNode("menus", menu.ID, &menu)
	return &menu, nil
}

func (r *MenuRepository) FindAll() ([]*content.MenuNode, error) {
	rows, err := r.db.Query(`SELECT id FROM menus ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var result []*content.MenuNode
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan menu ID: %w", err)
		}
		menu, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if menu != nil {
			result = append(result, menu)
		}
	}
	return result, rows.Err()
}

func (r *MenuRepository) Store(menu *content.MenuNode) error {
	linksJSON, _ := json.Marshal(menu.Links)

	start := time.Now()
	_, err := r.db.Exec(`INSERT INTO menus (id, title, links) VALUES (?, ?, ?)`,
		menu.ID, menu.Title, string(linksJSON))
	if err != nil {
		r.logger.Database().Error("Menu insert failed", "error", err.Error(), "id", menu.ID)
		return fmt.Errorf("failed to insert menu: %w", err)
	}

	r.logger.Database().Info("Menu insert completed", "id", menu.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("menus", menu.ID)
	return nil
}

func (r *MenuRepository) Update(menu *content.MenuNode) error {
	linksJSON, _ := json.Marshal(menu.Links)

	_, err := r.db.Exec(`UPDATE menus SET title = ?, links = ? WHERE id = ?`,
		menu.Title, string(linksJSON), menu.ID)
	if err != nil {
		r.logger.Database().Error("Menu update failed", "error", err.Error(), "id", menu.ID)
		return fmt.Errorf("failed to update menu: %w", err)
	}

	r.cache.InvalidateNode("menus", menu.ID)
	return nil
}
