package models

import (
	"encoding/json"

	"github.com/google/uuid"

	common "github.com/apicus/roi-engine/common/models"
)

// ImportRequest wraps a raw platform blueprint for import.
// Title, when set, overrides the blueprint's own name.
type ImportRequest struct {
	Title     string          `json:"title,omitempty"`
	Blueprint json.RawMessage `json:"blueprint"`
}

// PatchRequest carries RFC 6902 operations for a stored template
type PatchRequest struct {
	Operations []map[string]interface{} `json:"operations"`
}

// ROIPreviewRequest computes ROI for either an inline graph or a
// stored template. Graph wins when both are present.
type ROIPreviewRequest struct {
	TemplateID *uuid.UUID            `json:"template_id,omitempty"`
	Graph      *common.WorkflowGraph `json:"graph,omitempty"`
	Settings   common.ROISettings    `json:"settings"`
}

// GroupRequest computes rollup metrics for a subset of nodes
type GroupRequest struct {
	ROIPreviewRequest
	NodeIDs []string `json:"node_ids"`
}

// AlertEvalRequest evaluates a boolean formula over a computed ROI result
type AlertEvalRequest struct {
	ROIPreviewRequest
	Formula string `json:"formula"`
}
