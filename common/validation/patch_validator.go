package validation

import (
	"fmt"
	"strings"
)

// PatchValidator validates JSON Patch operations against templates
// before they are applied, so a bad UI mutation is rejected with a
// precise message instead of corrupting a stored document.
type PatchValidator struct{}

// NewPatchValidator creates a new patch validator
func NewPatchValidator() *PatchValidator {
	return &PatchValidator{}
}

// Paths callers may never rewrite: identity and provenance fields are
// set by the importer and the service, not by patches.
var protectedPaths = []string{
	"/template_id",
	"/created_at",
	"/created_by",
	"/pricing_summary",
}

// ValidateOperations validates all patch operations
func (v *PatchValidator) ValidateOperations(operations []map[string]interface{}) error {
	if len(operations) == 0 {
		return fmt.Errorf("patch validation failed: empty operation list")
	}

	for i, op := range operations {
		if err := v.validateOperation(op, i); err != nil {
			return err
		}
	}

	return nil
}

// validateOperation validates a single operation
func (v *PatchValidator) validateOperation(op map[string]interface{}, index int) error {
	// Check required fields
	opType, ok := op["op"].(string)
	if !ok {
		return fmt.Errorf("operation %d: missing or invalid 'op' field", index)
	}

	path, ok := op["path"].(string)
	if !ok {
		return fmt.Errorf("operation %d: missing or invalid 'path' field", index)
	}

	for _, protected := range protectedPaths {
		if path == protected || strings.HasPrefix(path, protected+"/") {
			return fmt.Errorf("operation %d: path %s is not patchable", index, path)
		}
	}

	// Validate based on operation type
	switch opType {
	case "add", "replace":
		if _, ok := op["value"]; !ok {
			return fmt.Errorf("operation %d: 'value' required for %s operation", index, opType)
		}
	case "remove":
		// Path is enough
	case "move", "copy":
		if _, ok := op["from"].(string); !ok {
			return fmt.Errorf("operation %d: 'from' required for %s operation", index, opType)
		}
	case "test":
		if _, ok := op["value"]; !ok {
			return fmt.Errorf("operation %d: 'value' required for test operation", index)
		}
	default:
		return fmt.Errorf("operation %d: unknown op %q", index, opType)
	}

	return nil
}
