// Package content provides SQL-backed repositories for the site's content collections.
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

type ProductRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewProductRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(id string) (*content.ProductNode, error) {
	if node, found := r.cache.GetNode("products", id); found {
		if product, ok := node.(*content.ProductNode); ok {
			return product, nil
		}
	}

	product, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	r.cache.SetNode("products", product.ID, product)
	return product, nil
}

func (r *ProductRepository) FindBySlug(slug string) (*content.ProductNode, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM products WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product slug: %w", err)
	}

	return r.FindByID(id)
}

// FindAll retrieves all products, employing a cache-first strategy.
func (r *ProductRepository) FindAll() ([]*content.ProductNode, error) {
	if ids, found := r.cache.GetAllIDs("products"); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.ProductNode{}, nil
	}

	r.cache.SetAllIDs("products", ids)
	return r.FindByIDs(ids)
}

func (r *ProductRepository) FindByIDs(ids []string) ([]*content.ProductNode, error) {
	var result []*content.ProductNode

	for _, id := range ids {
		product, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			result = append(result, product)
		}
	}

	return result, nil
}

func (r *ProductRepository) Store(product *content.ProductNode) error {
	descriptionJSON, _ := json.Marshal(product.Description)
	relatedJSON, _ := json.Marshal(product.RelatedProducts)

	query := `INSERT INTO products (id, name, slug, excerpt, description, category, featured, status, related_products, created)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing product insert", "id", product.ID)

	_, err := r.db.Exec(query, product.ID, product.Name, product.Slug, product.Excerpt,
		string(descriptionJSON), product.Category, product.Featured, product.Status,
		string(relatedJSON), product.Created)
	if err != nil {
		r.logger.Database().Error("Product insert failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Database().Info("Product insert completed", "id", product.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateNode("products", product.ID)
	return nil
}

func (r *ProductRepository) Update(product *content.ProductNode) error {
	descriptionJSON, _ := json.Marshal(product.Description)
	relatedJSON, _ := json.Marshal(product.RelatedProducts)

	query := `UPDATE products SET name = ?, slug = ?, excerpt = ?, description = ?, category = ?,
              featured = ?, status = ?, related_products = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing product update", "id", product.ID)

	now := time.Now().UTC()
	_, err := r.db.Exec(query, product.Name, product.Slug, product.Excerpt,
		string(descriptionJSON), product.Category, product.Featured, product.Status,
		string(relatedJSON), now, product.ID)
	if err != nil {
		r.logger.Database().Error("Product update failed", "error", err.Error(), "id", product.ID)
		return fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.Database().Info("Product update completed", "id", product.ID, "duration", time.Since(start))
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateNode("products", product.ID)
	return nil
}

func (r *ProductRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM products ORDER BY created DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading all product IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query product IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product ID: %w", err)
		}
		ids = append(ids, id)
	}

	r.logger.Database().Info("Loaded product IDs from database", "count", len(ids), "duration", time.Since(start))
	return ids, rows.Err()
}

func (r *ProductRepository) loadFromDB(id string) (*content.ProductNode, error) {
	query := `SELECT id, name, slug, excerpt, description, category, featured, status, related_products, created, changed
              FROM products WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading product from database", "id", id)

	row := r.db.QueryRow(query, id)

	var product content.ProductNode
	var excerpt, description, category sql.NullString
	var relatedStr string
	var changed sql.NullTime

	err := row.Scan(&product.ID, &product.Name, &product.Slug, &excerpt, &description,
		&category, &product.Featured, &product.Status, &relatedStr, &product.Created, &changed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan product", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	product.NodeType = "Product"
	if excerpt.Valid {
		product.Excerpt = &excerpt.String
	}
	if description.Valid && description.String != "" && description.String != "null" {
		if err := json.Unmarshal([]byte(description.String), &product.Description); err != nil {
			return nil, fmt.Errorf("failed to parse product description: %w", err)
		}
	}
	if category.Valid {
		product.Category = &category.String
	}
	if changed.Valid {
		product.Changed = &changed.Time
	}

	// Relationship values may still carry legacy shapes; normalize on read.
	var rawRelated any
	if relatedStr != "" {
		if err := json.Unmarshal([]byte(relatedStr), &rawRelated); err != nil {
			return nil, fmt.Errorf("failed to parse related products: %w", err)
		}
	}
	product.RelatedProducts = relationships.Normalize(rawRelated, "products")

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &product, nil
}
