package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is the canonical export schema produced by the importer and
// stored by the persistence layer. AppIDs are slugified AppNames,
// deduplicated, in first-seen order.
type Template struct {
	TemplateID uuid.UUID   `json:"template_id"`
	Title      string      `json:"title"`
	Platform   Platform    `json:"platform"`
	Nodes      []GraphNode `json:"nodes"`
	Edges      []GraphEdge `json:"edges"`
	AppIDs     []string    `json:"app_ids"`
	AppNames   []string    `json:"app_names"`
	StepCount  int         `json:"step_count"`

	// PricingSummary is filled in by enrichment after import, keyed by
	// catalog record id. Empty until the enrichment job completes.
	PricingSummary map[string]AppPricingSummary `json:"pricing_summary,omitempty"`

	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Graph returns the template's node/edge set as a WorkflowGraph.
func (t *Template) Graph() WorkflowGraph {
	return WorkflowGraph{Nodes: t.Nodes, Edges: t.Edges}
}
