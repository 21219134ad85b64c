package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/apicus/roi-engine/common/db"
	"github.com/apicus/roi-engine/common/models"
)

// ErrTemplateNotFound is returned when a template id has no row
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRepository handles database operations for imported templates
type TemplateRepository struct {
	db *db.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *db.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template
func (r *TemplateRepository) Create(ctx context.Context, tpl *models.Template) error {
	nodes, err := json.Marshal(tpl.Nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edges, err := json.Marshal(tpl.Edges)
	if err != nil {
		return fmt.Errorf("failed to marshal edges: %w", err)
	}

	query := `
		INSERT INTO templates (template_id, title, platform, nodes, edges,
		                       app_ids, app_names, step_count, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.Exec(ctx, query,
		tpl.TemplateID,
		tpl.Title,
		tpl.Platform,
		nodes,
		edges,
		tpl.AppIDs,
		tpl.AppNames,
		tpl.StepCount,
		tpl.CreatedBy,
		tpl.CreatedAt,
		tpl.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetByID retrieves a template by id
func (r *TemplateRepository) GetByID(ctx context.Context, templateID uuid.UUID) (*models.Template, error) {
	query := `
		SELECT template_id, title, platform, nodes, edges,
		       app_ids, app_names, step_count, pricing_summary, created_by, created_at, updated_at
		FROM templates
		WHERE template_id = $1
	`

	tpl := &models.Template{}
	var nodes, edges, summary []byte

	err := r.db.QueryRow(ctx, query, templateID).Scan(
		&tpl.TemplateID,
		&tpl.Title,
		&tpl.Platform,
		&nodes,
		&edges,
		&tpl.AppIDs,
		&tpl.AppNames,
		&tpl.StepCount,
		&summary,
		&tpl.CreatedBy,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := unmarshalTemplateDocs(tpl, nodes, edges, summary); err != nil {
		return nil, err
	}

	return tpl, nil
}

// List retrieves templates, newest first
func (r *TemplateRepository) List(ctx context.Context, limit, offset int) ([]*models.Template, error) {
	query := `
		SELECT template_id, title, platform, nodes, edges,
		       app_ids, app_names, step_count, pricing_summary, created_by, created_at, updated_at
		FROM templates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		tpl := &models.Template{}
		var nodes, edges, summary []byte

		err := rows.Scan(
			&tpl.TemplateID,
			&tpl.Title,
			&tpl.Platform,
			&nodes,
			&edges,
			&tpl.AppIDs,
			&tpl.AppNames,
			&tpl.StepCount,
			&summary,
			&tpl.CreatedBy,
			&tpl.CreatedAt,
			&tpl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}

		if err := unmarshalTemplateDocs(tpl, nodes, edges, summary); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// Update rewrites a patched template document
func (r *TemplateRepository) Update(ctx context.Context, tpl *models.Template) error {
	nodes, err := json.Marshal(tpl.Nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edges, err := json.Marshal(tpl.Edges)
	if err != nil {
		return fmt.Errorf("failed to marshal edges: %w", err)
	}

	query := `
		UPDATE templates
		SET title = $2, platform = $3, nodes = $4, edges = $5,
		    app_ids = $6, app_names = $7, step_count = $8, updated_at = NOW()
		WHERE template_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tpl.TemplateID,
		tpl.Title,
		tpl.Platform,
		nodes,
		edges,
		tpl.AppIDs,
		tpl.AppNames,
		tpl.StepCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// UpdatePricingSummary persists the enrichment result for a template
func (r *TemplateRepository) UpdatePricingSummary(ctx context.Context, templateID uuid.UUID, summary map[string]models.AppPricingSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal pricing summary: %w", err)
	}

	query := `
		UPDATE templates
		SET pricing_summary = $2, updated_at = NOW()
		WHERE template_id = $1
	`

	result, err := r.db.Exec(ctx, query, templateID, payload)
	if err != nil {
		return fmt.Errorf("failed to update pricing summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Delete removes a template
func (r *TemplateRepository) Delete(ctx context.Context, templateID uuid.UUID) error {
	query := `DELETE FROM templates WHERE template_id = $1`

	result, err := r.db.Exec(ctx, query, templateID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func unmarshalTemplateDocs(tpl *models.Template, nodes, edges, summary []byte) error {
	if len(nodes) > 0 {
		if err := json.Unmarshal(nodes, &tpl.Nodes); err != nil {
			return fmt.Errorf("failed to unmarshal nodes: %w", err)
		}
	}
	if len(edges) > 0 {
		if err := json.Unmarshal(edges, &tpl.Edges); err != nil {
			return fmt.Errorf("failed to unmarshal edges: %w", err)
		}
	}
	if len(summary) > 0 {
		if err := json.Unmarshal(summary, &tpl.PricingSummary); err != nil {
			return fmt.Errorf("failed to unmarshal pricing summary: %w", err)
		}
	}
	return nil
}
