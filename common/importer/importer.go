package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/apicus/roi-engine/common/enrich"
	"github.com/apicus/roi-engine/common/models"
)

// Import parses a raw Make.com blueprint and produces the canonical
// template export. Node and edge ids are deterministic functions of the
// source document; only the template's own id is freshly generated per
// import batch.
func Import(raw []byte) (*models.Template, error) {
	bp, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	graph, err := BuildGraph(bp)
	if err != nil {
		return nil, err
	}

	appNames, appIDs := collectApps(graph)

	now := time.Now().UTC()
	return &models.Template{
		TemplateID: uuid.New(),
		Title:      bp.Name,
		Platform:   models.PlatformMake,
		Nodes:      graph.Nodes,
		Edges:      graph.Edges,
		AppIDs:     appIDs,
		AppNames:   appNames,
		StepCount:  graph.StepCount(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// collectApps gathers distinct app names across the graph's nodes in
// first-seen order, plus their slugified ids (deduplicated by slug,
// since distinct display names may canonicalize identically).
func collectApps(graph models.WorkflowGraph) (names, ids []string) {
	seenName := make(map[string]bool)
	seenSlug := make(map[string]bool)

	for _, n := range graph.Nodes {
		if n.AppName == "" || seenName[n.AppName] {
			continue
		}
		seenName[n.AppName] = true
		names = append(names, n.AppName)

		slug := enrich.Slugify(n.AppName)
		if slug == "" || seenSlug[slug] {
			continue
		}
		seenSlug[slug] = true
		ids = append(ids, slug)
	}

	return names, ids
}
