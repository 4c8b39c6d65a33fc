package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"paperplanner/internal/models"
)

type ProjectRepo struct {
	db *DB
}

func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) UpsertProject(ctx context.Context, p models.Project) error {
	draftJSON, err := json.Marshal(p.Draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
INSERT INTO projects (project_id, filename, status, stage, fail_reason, draft)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), $6)
ON CONFLICT (project_id)
DO UPDATE SET
  filename = EXCLUDED.filename,
  status = EXCLUDED.status,
  stage = COALESCE(EXCLUDED.stage, projects.stage),
  fail_reason = EXCLUDED.fail_reason,
  draft = EXCLUDED.draft,
  updated_at = NOW()`,
		p.ProjectID, p.Filename, p.Status, p.Stage, p.FailReason, draftJSON,
	)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) UpdateProjectStatus(ctx context.Context, projectID, status, failReason string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE projects SET status=$2, fail_reason=NULLIF($3,''), updated_at=NOW() WHERE project_id=$1`,
		projectID, status, failReason)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetProjectByID(ctx context.Context, projectID string) (models.Project, error) {
	var (
		p         models.Project
		draftJSON []byte
	)
	err := r.db.Pool.QueryRow(ctx, `
SELECT project_id, filename, status, COALESCE(stage,''), COALESCE(fail_reason,''), draft, created_at, updated_at
FROM projects
WHERE project_id=$1`, projectID).
		Scan(&p.ProjectID, &p.Filename, &p.Status, &p.Stage, &p.FailReason, &draftJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("get project by id: %w", err)
	}
	if len(draftJSON) > 0 {
		if err := json.Unmarshal(draftJSON, &p.Draft); err != nil {
			return models.Project{}, fmt.Errorf("unmarshal draft: %w", err)
		}
	}
	return p, nil
}

func (r *ProjectRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT project_id, filename, status, COALESCE(stage,''), COALESCE(fail_reason,''), draft, created_at, updated_at
FROM projects
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]models.Project, 0)
	for rows.Next() {
		var (
			p         models.Project
			draftJSON []byte
		)
		if err := rows.Scan(&p.ProjectID, &p.Filename, &p.Status, &p.Stage, &p.FailReason, &draftJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if len(draftJSON) > 0 {
			if err := json.Unmarshal(draftJSON, &p.Draft); err != nil {
				return nil, fmt.Errorf("unmarshal draft: %w", err)
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}
