package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/folio-hub/folio-server/internal/models"
)

type sqliteProjectRepo struct {
	db *sql.DB
}

// encodeList marshals a string list to its JSON column representation.
// nil encodes as an empty array so scans round-trip cleanly.
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (r *sqliteProjectRepo) Create(ctx context.Context, project *models.Project) error {
	technologies, err := encodeList(project.Technologies)
	if err != nil {
		return err
	}
	images, err := encodeList(project.Images)
	if err != nil {
		return err
	}
	tags, err := encodeList(project.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, title, description, technologies, images,
			github_url, live_url, featured, category, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		project.ID, project.Title, project.Description, technologies, images,
		project.GithubURL, project.LiveURL, project.Featured, project.Category,
		tags, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *sqliteProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT id, title, description, technologies, images, github_url, live_url,
			featured, category, tags, created_at, updated_at
		FROM projects WHERE id = ?
	`
	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return project, nil
}

func (r *sqliteProjectRepo) Update(ctx context.Context, project *models.Project) error {
	technologies, err := encodeList(project.Technologies)
	if err != nil {
		return err
	}
	images, err := encodeList(project.Images)
	if err != nil {
		return err
	}
	tags, err := encodeList(project.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects SET title = ?, description = ?, technologies = ?, images = ?,
			github_url = ?, live_url = ?, featured = ?, category = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Title, project.Description, technologies, images,
		project.GithubURL, project.LiveURL, project.Featured, project.Category,
		tags, project.UpdatedAt, project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project not found: %s", project.ID)
	}
	return nil
}

func (r *sqliteProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project not found: %s", id)
	}
	return nil
}

func (r *sqliteProjectRepo) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, title, description, technologies, images, github_url, live_url,
			featured, category, tags, created_at, updated_at
		FROM projects ORDER BY created_at DESC
	`
	return r.queryProjects(ctx, query)
}

func (r *sqliteProjectRepo) ListFeatured(ctx context.Context, limit int) ([]*models.Project, error) {
	query := `
		SELECT id, title, description, technologies, images, github_url, live_url,
			featured, category, tags, created_at, updated_at
		FROM projects WHERE featured = 1 ORDER BY created_at DESC LIMIT ?
	`
	return r.queryProjects(ctx, query, limit)
}

func (r *sqliteProjectRepo) queryProjects(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var description, githubURL, liveURL sql.NullString
	var technologies, images, tags string

	err := row.Scan(
		&project.ID, &project.Title, &description, &technologies, &images,
		&githubURL, &liveURL, &project.Featured, &project.Category, &tags,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Description = description.String
	project.GithubURL = githubURL.String
	project.LiveURL = liveURL.String

	if project.Technologies, err = decodeList(technologies); err != nil {
		return nil, err
	}
	if project.Images, err = decodeList(images); err != nil {
		return nil, err
	}
	if project.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	return project, nil
}
