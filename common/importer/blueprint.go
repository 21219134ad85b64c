// Package importer parses foreign workflow definitions (Make.com
// blueprints) into the canonical flat node/edge graph. Parsing is
// synchronous and pure over the input document; it performs no I/O.
package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ModuleID is the source format's native module identifier, which
// arrives as either a JSON number or a string. Canonical node ids are
// derived from it, so it normalizes to a string early.
type ModuleID string

// UnmarshalJSON accepts both numeric and string ids.
func (id *ModuleID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*id = ModuleID(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("module id must be a number or string: %w", err)
	}
	*id = ModuleID(num.String())
	return nil
}

// Blueprint is the foreign document's top-level shape: a named,
// possibly-nested module sequence.
type Blueprint struct {
	Name string   `json:"name"`
	Flow []Module `json:"flow"`
}

// Module is one step of a blueprint. Modules carrying Routes are
// branching constructs whose routes each hold a nested module sequence.
type Module struct {
	ID       ModuleID        `json:"id"`
	Module   string          `json:"module"`
	Metadata *ModuleMetadata `json:"metadata,omitempty"`
	Routes   []Route         `json:"routes,omitempty"`
}

// Route is one branch of a router module.
type Route struct {
	Flow []Module `json:"flow"`
}

// ModuleMetadata carries source-side designer metadata.
type ModuleMetadata struct {
	Designer *DesignerMeta `json:"designer,omitempty"`
}

// DesignerMeta is the module's canvas coordinate in the source editor.
type DesignerMeta struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Parse validates and decodes a raw blueprint document. Malformed input
// is a hard rejection naming the missing piece; no partial result is
// ever returned.
//
// The shape check runs over the raw bytes first so the error can name
// the offending field precisely instead of surfacing a generic decode
// failure from deep inside the nested structure.
func Parse(raw []byte) (*Blueprint, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("blueprint is not valid JSON")
	}

	flow := gjson.GetBytes(raw, "flow")
	if !flow.Exists() {
		return nil, fmt.Errorf("blueprint missing required field %q", "flow")
	}
	if !flow.IsArray() {
		return nil, fmt.Errorf("blueprint field %q must be an array", "flow")
	}

	var bp Blueprint
	if err := json.Unmarshal(raw, &bp); err != nil {
		return nil, fmt.Errorf("decode blueprint: %w", err)
	}

	return &bp, nil
}
