package models

import "fmt"

// NodeRole classifies a workflow step. Exactly one node in a graph
// structurally represents the entry point and carries RoleTrigger.
type NodeRole string

const (
	RoleTrigger  NodeRole = "trigger"
	RoleAction   NodeRole = "action"
	RoleDecision NodeRole = "decision"
	RoleGroup    NodeRole = "group"
)

// Position is the node's canvas coordinate, inherited from the source
// format's designer metadata when present.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphNode is one step in a workflow. Nodes are created once during
// import and never mutated by the import pipeline afterwards.
type GraphNode struct {
	ID          string   `json:"id"`
	Role        NodeRole `json:"role"`
	Position    Position `json:"position"`
	AppName     string   `json:"app_name"`
	ActionLabel string   `json:"action_label"`

	// OperationType tags transform/filter vs read/fetch style steps and
	// adjusts time attribution. Empty means no adjustment.
	OperationType string `json:"operation_type,omitempty"`
}

// GraphEdge is a directed connection between two nodes. BranchTag is set
// on decision fan-out edges and records which route the edge belongs to.
type GraphEdge struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	BranchTag *int   `json:"branch_tag,omitempty"`
}

// WorkflowGraph is the canonical flat node/edge representation.
// Node order is insertion (creation) order, not topological order.
type WorkflowGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Node returns the node with the given id.
func (g *WorkflowGraph) Node(id string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// StepCount returns the number of executable steps in the workflow.
func (g *WorkflowGraph) StepCount() int {
	return len(g.Nodes)
}

// Validate checks the structural invariants every graph must hold:
// unique node and edge ids, no self-loops, and no dangling edges.
func (g *WorkflowGraph) Validate() error {
	nodeIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if nodeIDs[n.ID] {
			return fmt.Errorf("duplicate node id: %s", n.ID)
		}
		nodeIDs[n.ID] = true
	}

	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("duplicate edge id: %s", e.ID)
		}
		edgeIDs[e.ID] = true

		if e.Source == e.Target {
			return fmt.Errorf("edge %s is a self-loop on node %s", e.ID, e.Source)
		}
		if !nodeIDs[e.Source] {
			return fmt.Errorf("edge %s references missing source node %s", e.ID, e.Source)
		}
		if !nodeIDs[e.Target] {
			return fmt.Errorf("edge %s references missing target node %s", e.ID, e.Target)
		}
	}

	return nil
}
