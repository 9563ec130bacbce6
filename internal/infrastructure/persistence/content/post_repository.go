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
)

type PostRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewPostRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *PostRepository {
	return &PostRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *PostRepository) FindByID(id string) (*content.PostNode, error) {
	if node, found := r.cache.GetNode("posts", id); found {
		if post, ok := node.(*content.PostNode); ok {
			return post, nil
		}
	}

	post, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	r.cache.SetNode("posts", post.ID, post)
	return post, nil
}

func (r *PostRepository) FindBySlug(slug string) (*content.PostNode, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM posts WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve post slug: %w", err)
	}

	return r.FindByID(id)
}

func (r *PostRepository) FindAll() ([]*content.PostNode, error) {
	if ids, found := r.cache.GetAllIDs("posts"); found {
		return r.FindByIDs(ids)
	}

	rows, err := r.db.Query(`SELECT id FROM posts ORDER BY created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.PostNode{}, nil
	}

	r.cache.SetAllIDs("posts", ids)
	return r.FindByIDs(ids)
}

func (r *PostRepository) FindByIDs(ids []string) ([]*content.PostNode, error) {
	var result []*content.PostNode

	for _, id := range ids {
		post, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if post != nil {
			result = append(result, post)
		}
	}

	return result, nil
}

func (r *PostRepository) Store(post *content.PostNode) error {
	bodyJSON, _ := json.Marshal(post.Body)
	relatedJSON, _ := json.Marshal(post.RelatedPosts)

	query := `INSERT INTO posts (id, title, slug, excerpt, body, status, related_posts, published_at, created)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing post insert", "id", post.ID)

	_, err := r.db.Exec(query, post.ID, post.Title, post.Slug, post.Excerpt,
		string(bodyJSON), post.Status, string(relatedJSON), post.PublishedAt, post.Created)
	if err != nil {
		r.logger.Database().Error("Post insert failed", "error", err.Error(), "id", post.ID)
		return fmt.Errorf("failed to insert post: %w", err)
	}

	r.logger.Database().Info("Post insert completed", "id", post.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("posts", post.ID)
	return nil
}

func (r *PostRepository) Update(post *content.PostNode) error {
	bodyJSON, _ := json.Marshal(post.Body)
	relatedJSON, _ := json.Marshal(post.RelatedPosts)

	query := `UPDATE posts SET title = ?, slug = ?, excerpt = ?, body = ?, status = ?,
              related_posts = ?, published_at = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing post update", "id", post.ID)

	now := time.Now().UTC()
	_, err := r.db.Exec(query, post.Title, post.Slug, post.Excerpt, string(bodyJSON),
		post.Status, string(relatedJSON), post.PublishedAt, now, post.ID)
	if err != nil {
		r.logger.Database().Error("Post update failed", "error", err.Error(), "id", post.ID)
		return fmt.Errorf("failed to update post: %w", err)
	}

	r.logger.Database().Info("Post update completed", "id", post.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("posts", post.ID)
	return nil
}

// SetStatus flips a post between published and draft without touching its
// body. This backs the unpublish (soft delete) operation.
func (r *PostRepository) SetStatus(id, status string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing post status change", "id", id, "status", status)

	result, err := r.db.Exec(`UPDATE posts SET status = ?, changed = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		r.logger.Database().Error("Post status change failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to change post status: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("post %s not found", id)
	}

	r.logger.Database().Info("Post status change completed", "id", id, "status", status, "duration", time.Since(start))
	r.cache.InvalidateNode("posts", id)
	return nil
}

func (r *PostRepository) loadFromDB(id string) (*content.PostNode, error) {
	query := `SELECT id, title, slug, excerpt, body, status, related_posts, published_at, created, changed
              FROM posts WHERE id = ?`

	row := r.db.QueryRow(query, id)

	var post content.PostNode
	var excerpt, body sql.NullString
	var publishedAt, changed sql.NullTime
	var relatedStr string

	err := row.Scan(&post.ID, &post.Title, &post.Slug, &excerpt, &body,
		&post.Status, &relatedStr, &publishedAt, &post.Created, &changed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan post", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	post.NodeType = "Post"
	if excerpt.Valid {
		post.Excerpt = &excerpt.String
	}
	if body.Valid && body.String != "" && body.String != "null" {
		if err := json.Unmarshal([]byte(body.String), &post.Body); err != nil {
			return nil, fmt.Errorf("failed to parse post body: %w", err)
		}
	}
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}
	if changed.Valid {
		post.Changed = &changed.Time
	}

	var rawRelated any
	if relatedStr != "" {
		if err := json.Unmarshal([]byte(relatedStr), &rawRelated); err != nil {
			return nil, fmt.Errorf("failed to parse related posts: %w", err)
		}
	}
	post.RelatedPosts = relationships.Normalize(rawRelated, "posts")

	return &post, nil
}
