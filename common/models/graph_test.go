package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowGraphValidate(t *testing.T) {
	valid := WorkflowGraph{
		Nodes: []GraphNode{
			{ID: "a", Role: RoleTrigger},
			{ID: "b", Role: RoleAction},
		},
		Edges: []GraphEdge{
			{ID: "edge-a-b", Source: "a", Target: "b"},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		graph   WorkflowGraph
		wantErr string
	}{
		{
			"duplicate node id",
			WorkflowGraph{Nodes: []GraphNode{{ID: "a"}, {ID: "a"}}},
			"duplicate node id",
		},
		{
			"duplicate edge id",
			WorkflowGraph{
				Nodes: []GraphNode{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []GraphEdge{
					{ID: "e", Source: "a", Target: "b"},
					{ID: "e", Source: "b", Target: "c"},
				},
			},
			"duplicate edge id",
		},
		{
			"self loop",
			WorkflowGraph{
				Nodes: []GraphNode{{ID: "a"}},
				Edges: []GraphEdge{{ID: "e", Source: "a", Target: "a"}},
			},
			"self-loop",
		},
		{
			"dangling target",
			WorkflowGraph{
				Nodes: []GraphNode{{ID: "a"}},
				Edges: []GraphEdge{{ID: "e", Source: "a", Target: "ghost"}},
			},
			"missing target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWorkflowGraphNodeLookup(t *testing.T) {
	g := WorkflowGraph{Nodes: []GraphNode{{ID: "a", AppName: "Slack"}}}

	n, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, "Slack", n.AppName)

	_, ok = g.Node("zzz")
	assert.False(t, ok)
}
