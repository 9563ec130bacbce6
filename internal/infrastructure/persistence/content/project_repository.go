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

type ProjectRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewProjectRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ProjectRepository) FindByID(id string) (*content.ProjectNode, error) {
	if node, found := r.cache.GetNode("projects", id); found {
		if project, ok := node.(*content.ProjectNode); ok {
			return project, nil
		}
	}

	project, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	r.cache.SetNode("projects", project.ID, project)
	return project, nil
}

func (r *ProjectRepository) FindBySlug(slug string) (*content.ProjectNode, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM projects WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project slug: %w", err)
	}

	return r.FindByID(id)
}

func (r *ProjectRepository) FindAll() ([]*content.ProjectNode, error) {
	if ids, found := r.cache.GetAllIDs("projects"); found {
		result := make([]*content.ProjectNode, 0, len(ids))
		for _, id := range ids {
			project, err := r.FindByID(id)
			if err != nil {
				return nil, err
			}
			if project != nil {
				result = append(result, project)
			}
		}
		return result, nil
	}

	rows, err := r.db.Query(`SELECT id FROM projects ORDER BY year DESC, created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.SetAllIDs("projects", ids)

	result := make([]*content.ProjectNode, 0, len(ids))
	for _, id := range ids {
		project, err := r.FindByID(id)
		if err != nil {
			return nil, err
		}
		if project != nil {
			result = append(result, project)
		}
	}
	return result, nil
}

func (r *ProjectRepository) Store(project *content.ProjectNode) error {
	technologiesJSON, _ := json.Marshal(project.Technologies)

	query := `INSERT INTO projects (id, title, slug, summary, client, year, status, technologies, created)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing project insert", "id", project.ID)

	_, err := r.db.Exec(query, project.ID, project.Title, project.Slug, project.Summary,
		project.Client, project.Year, project.Status, string(technologiesJSON), project.Created)
	if err != nil {
		r.logger.Database().Error("Project insert failed", "error", err.Error(), "id", project.ID)
		return fmt.Errorf("failed to insert project: %w", err)
	}

	r.logger.Database().Info("Project insert completed", "id", project.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("projects", project.ID)
	return nil
}

func (r *ProjectRepository) Update(project *content.ProjectNode) error {
	technologiesJSON, _ := json.Marshal(project.Technologies)

	query := `UPDATE projects SET title = ?, slug = ?, summary = ?, client = ?, year = ?,
              status = ?, technologies = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing project update", "id", project.ID)

	now := time.Now().UTC()
	_, err := r.db.Exec(query, project.Title, project.Slug, project.Summary, project.Client,
		project.Year, project.Status, string(technologiesJSON), now, project.ID)
	if err != nil {
		r.logger.Database().Error("Project update failed", "error", err.Error(), "id", project.ID)
		return fmt.Errorf("failed to update project: %w", err)
	}

	r.logger.Database().Info("Project update completed", "id", project.ID, "duration", time.Since(start))
	r.cache.InvalidateNode("projects", project.ID)
	return nil
}

func (r *ProjectRepository) loadFromDB(id string) (*content.ProjectNode, error) {
	query := `SELECT id, title, slug, summary, client, year, status, technologies, created, changed
              FROM projects WHERE id = ?`

	row := r.db.QueryRow(query, id)

	var project content.ProjectNode
	var summary, client sql.NullString
	var year sql.NullInt64
	var changed sql.NullTime
	var technologiesStr string

	err := row.Scan(&project.ID, &project.Title, &project.Slug, &summary, &client,
		&year, &project.Status, &technologiesStr, &project.Created, &changed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan project", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	project.NodeType = "Project"
	if summary.Valid {
		project.Summary = &summary.String
	}
	if client.Valid {
		project.Client = &client.String
	}
	if year.Valid {
		y := int(year.Int64)
		project.Year = &y
	}
	if changed.Valid {
		project.Changed = &changed.Time
	}

	var rawTechnologies any
	if technologiesStr != "" {
		if err := json.Unmarshal([]byte(technologiesStr), &rawTechnologies); err != nil {
			return nil, fmt.Errorf("failed to parse project technologies: %w", err)
		}
	}
	project.Technologies = relationships.Normalize(rawTechnologies, "technologies")

	return &project, nil
}
