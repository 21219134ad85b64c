package importer

import (
	"fmt"

	"github.com/apicus/roi-engine/common/models"
)

// graphBuilder accumulates the flat node/edge arena during the recursive
// walk of a blueprint. Edges are only ever constructed between nodes the
// builder has already created, so a produced graph can never dangle, and
// self-loops and duplicate (source, target, branch) triples are rejected
// at construction time rather than filtered afterwards.
type graphBuilder struct {
	nodes    []models.GraphNode
	edges    []models.GraphEdge
	nodeSeen map[string]bool
	edgeSeen map[string]bool
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		nodeSeen: make(map[string]bool),
		edgeSeen: make(map[string]bool),
	}
}

// nodeID derives a deterministic, path-qualified canonical id from the
// module's native id. Top-level modules map to "module-<id>"; modules
// nested in routes are qualified by their router's id and route index
// ("module-5-r0-7"), so identical native ids in different branches never
// collapse. Re-importing the same document always reproduces the same
// ids.
func nodeID(pathPrefix string, id ModuleID) string {
	if pathPrefix == "" {
		return fmt.Sprintf("module-%s", id)
	}
	return fmt.Sprintf("%s-%s", pathPrefix, id)
}

// edgeID derives the edge id from endpoints and branch index, avoiding
// collisions when multiple branches reconnect the same node pair.
func edgeID(source, target string, branch *int) string {
	if branch != nil {
		return fmt.Sprintf("edge-%s-%s-b%d", source, target, *branch)
	}
	return fmt.Sprintf("edge-%s-%s", source, target)
}

func (b *graphBuilder) addNode(n models.GraphNode) {
	if b.nodeSeen[n.ID] {
		return
	}
	b.nodeSeen[n.ID] = true
	b.nodes = append(b.nodes, n)
}

func (b *graphBuilder) addEdge(source, target string, branch *int) {
	if source == target {
		return
	}
	if !b.nodeSeen[source] || !b.nodeSeen[target] {
		return
	}

	id := edgeID(source, target, branch)
	if b.edgeSeen[id] {
		return
	}
	b.edgeSeen[id] = true

	b.edges = append(b.edges, models.GraphEdge{
		ID:        id,
		Source:    source,
		Target:    target,
		BranchTag: branch,
	})
}

// BuildGraph walks the blueprint's recursive module structure and emits
// the canonical flat graph. The first module of the top-level sequence
// is tagged as the trigger; router/filter signatures become decisions;
// everything else, including modules with unrecognized type strings, is
// imported as an action with a best-effort label rather than dropped.
func BuildGraph(bp *Blueprint) (models.WorkflowGraph, error) {
	if bp == nil {
		return models.WorkflowGraph{}, fmt.Errorf("nil blueprint")
	}

	b := newGraphBuilder()
	b.importFlow(bp.Flow, "", nil, true)

	graph := models.WorkflowGraph{Nodes: b.nodes, Edges: b.edges}
	if err := graph.Validate(); err != nil {
		return models.WorkflowGraph{}, fmt.Errorf("imported graph invalid: %w", err)
	}

	return graph, nil
}

// importFlow imports one module sequence. Adjacent modules are linked by
// sequential edges; a module's routes are expanded recursively, each
// route linked from the router to its first node and tagged with the
// route index (as are the route's internal sequential edges). Branches
// never implicitly reconverge: reconvergence must be explicit in the
// source data.
func (b *graphBuilder) importFlow(flow []Module, pathPrefix string, branch *int, topLevel bool) []string {
	ids := make([]string, 0, len(flow))

	var prevID string
	for i, m := range flow {
		id := nodeID(pathPrefix, m.ID)
		b.addNode(b.buildNode(id, m, topLevel && i == 0))
		ids = append(ids, id)

		if i > 0 {
			b.addEdge(prevID, id, branch)
		}
		prevID = id

		b.expandRoutes(id, m)
	}

	return ids
}

// expandRoutes imports each non-empty route of a router module and wires
// the router to the route's first node with a branch-tagged edge.
func (b *graphBuilder) expandRoutes(routerID string, m Module) {
	for ri, route := range m.Routes {
		if len(route.Flow) == 0 {
			continue
		}

		branch := ri
		prefix := fmt.Sprintf("%s-r%d", routerID, ri)
		routeIDs := b.importFlow(route.Flow, prefix, &branch, false)
		if len(routeIDs) > 0 {
			b.addEdge(routerID, routeIDs[0], &branch)
		}
	}
}

func (b *graphBuilder) buildNode(id string, m Module, isEntry bool) models.GraphNode {
	appCode, actionCode := splitModuleType(m.Module)

	role := models.RoleAction
	switch {
	case isEntry:
		role = models.RoleTrigger
	case isRouterModule(m.Module):
		role = models.RoleDecision
	}

	var pos models.Position
	if m.Metadata != nil && m.Metadata.Designer != nil {
		pos = models.Position{X: m.Metadata.Designer.X, Y: m.Metadata.Designer.Y}
	}

	return models.GraphNode{
		ID:            id,
		Role:          role,
		Position:      pos,
		AppName:       appDisplayName(appCode),
		ActionLabel:   humanizeAction(actionCode),
		OperationType: inferOperationType(actionCode),
	}
}
