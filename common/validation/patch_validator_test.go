package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOperations(t *testing.T) {
	v := NewPatchValidator()

	tests := []struct {
		name    string
		ops     []map[string]interface{}
		wantErr string
	}{
		{
			"valid replace",
			[]map[string]interface{}{{"op": "replace", "path": "/title", "value": "New name"}},
			"",
		},
		{
			"valid add to nodes",
			[]map[string]interface{}{{"op": "add", "path": "/nodes/-", "value": map[string]interface{}{"id": "n1"}}},
			"",
		},
		{
			"valid remove",
			[]map[string]interface{}{{"op": "remove", "path": "/edges/0"}},
			"",
		},
		{
			"valid move",
			[]map[string]interface{}{{"op": "move", "path": "/nodes/0", "from": "/nodes/1"}},
			"",
		},
		{
			"empty list",
			nil,
			"empty operation list",
		},
		{
			"missing op",
			[]map[string]interface{}{{"path": "/title"}},
			"missing or invalid 'op'",
		},
		{
			"missing path",
			[]map[string]interface{}{{"op": "replace", "value": 1}},
			"missing or invalid 'path'",
		},
		{
			"replace without value",
			[]map[string]interface{}{{"op": "replace", "path": "/title"}},
			"'value' required",
		},
		{
			"move without from",
			[]map[string]interface{}{{"op": "move", "path": "/nodes/0"}},
			"'from' required",
		},
		{
			"unknown op",
			[]map[string]interface{}{{"op": "merge", "path": "/title"}},
			"unknown op",
		},
		{
			"protected template_id",
			[]map[string]interface{}{{"op": "replace", "path": "/template_id", "value": "x"}},
			"not patchable",
		},
		{
			"protected created_at",
			[]map[string]interface{}{{"op": "remove", "path": "/created_at"}},
			"not patchable",
		},
		{
			"protected subtree",
			[]map[string]interface{}{{"op": "replace", "path": "/pricing_summary/rec-1", "value": 1}},
			"not patchable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateOperations(tt.ops)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateOperationsReportsIndex(t *testing.T) {
	v := NewPatchValidator()

	err := v.ValidateOperations([]map[string]interface{}{
		{"op": "replace", "path": "/title", "value": "ok"},
		{"op": "replace", "path": "/template_id", "value": "bad"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 1")
}
