package nodepath

import (
	"fmt"

	"github.com/keelworks/treeline/internal/types"
)

// Registry resolves rule type identifiers to their node path schemas.
//
// The registry is an explicit value injected into the tuple engine rather
// than a process-wide singleton, so tests can wire fixture schemas. It is
// populated once at startup and treated as read-only thereafter; lookups
// need no locking.
type Registry struct {
	schemas map[string]*RuleNodePath
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*RuleNodePath)}
}

// Register adds a schema under its rule type identifier.
// Re-registering a rule type replaces the previous schema.
func (r *Registry) Register(schema *RuleNodePath) {
	r.schemas[schema.Root().RuleType()] = schema
}

// Lookup returns the schema for ruleType.
// An unknown rule type is a wiring defect and reports ErrSchemaNotRegistered.
func (r *Registry) Lookup(ruleType string) (*RuleNodePath, error) {
	schema, ok := r.schemas[ruleType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrSchemaNotRegistered, ruleType)
	}
	return schema, nil
}
