// Package tuple implements the bidirectional transformer between rule
// configuration objects and path-addressed tuples.
package tuple

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/types"
)

/*
 * Tuple swapper engine.
 *
 * Encode and Decode are independent, symmetric operations sharing the same
 * node path schemas and field descriptor tables; neither calls the other.
 * The schema registry is the single source of truth for path shape, so the
 * two directions cannot disagree about where a field lives.
 *
 * Key types:
 *   - Engine: holds the injected schema registry and the type entries
 *   - TypeEntry: one configuration type's shape, descriptors and factory
 *
 * Concurrency: registration happens once at startup; afterwards the engine
 * is read-only and safe for concurrent Encode/Decode calls. Neither
 * operation blocks or performs I/O.
 */

// TypeEntry declares how one configuration type participates in tuple
// conversion. Exactly one shape applies:
//
//   - field-mapped: RuleType set, TupleType empty, Fields non-empty
//   - namespaced whole-object: RuleType and TupleType set
//   - cluster-wide whole-object: Global true, TupleType set
type TypeEntry struct {
	// RuleType resolves the node path schema for types whose tuples live
	// under a rule root.
	RuleType string

	// TupleType is the whole-object singleton tag. When set, the entire
	// object serializes as one tuple and no field walk occurs.
	TupleType string

	// Global marks a cluster-wide versioned singleton addressed by the
	// fixed tag path instead of a rule root.
	Global bool

	// Fields are the tuple-converted fields of a field-mapped type.
	Fields []Field

	// New allocates a default-initialized instance for decoding.
	New func() any
}

// entry is a validated TypeEntry with fields sorted by declared order.
type entry struct {
	TypeEntry
}

// Engine converts configuration objects to tuples and back.
type Engine struct {
	schemas *nodepath.Registry
	entries map[reflect.Type]*entry
}

// NewEngine creates an engine bound to the given schema registry.
func NewEngine(schemas *nodepath.Registry) *Engine {
	return &Engine{
		schemas: schemas,
		entries: make(map[reflect.Type]*entry),
	}
}

// Register adds a configuration type to the engine. The prototype fixes the
// Go type the entry applies to; decoded objects come from e.New, never from
// the prototype itself.
//
// All descriptor validation happens here, once, so Encode and Decode can
// dispatch without re-checking shapes per call.
func (e *Engine) Register(prototype any, te TypeEntry) error {
	if prototype == nil {
		return fmt.Errorf("%w: nil prototype", types.ErrBadDescriptor)
	}
	if te.New == nil {
		return fmt.Errorf("%w: %T has no factory", types.ErrBadDescriptor, prototype)
	}
	if err := e.validateShape(prototype, te); err != nil {
		return err
	}

	// Stable sort keeps declaration order for equal Order values,
	// preserving deterministic emission.
	fields := make([]Field, len(te.Fields))
	copy(fields, te.Fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })
	te.Fields = fields

	e.entries[reflect.TypeOf(prototype)] = &entry{TypeEntry: te}
	return nil
}

// validateShape checks the entry's shape and its descriptors against the
// rule type's node path schema.
func (e *Engine) validateShape(prototype any, te TypeEntry) error {
	switch {
	case te.Global:
		if te.TupleType == "" {
			return fmt.Errorf("%w: global %T has no tuple type tag", types.ErrBadDescriptor, prototype)
		}
		if te.RuleType != "" || len(te.Fields) > 0 {
			return fmt.Errorf("%w: global %T cannot carry a rule type or fields", types.ErrBadDescriptor, prototype)
		}
		return nil
	case te.TupleType != "":
		// Namespaced whole-object: the tag must be a declared unique item
		// under the rule root.
		if len(te.Fields) > 0 {
			return fmt.Errorf("%w: whole-object %T cannot carry fields", types.ErrBadDescriptor, prototype)
		}
		schema, err := e.schemas.Lookup(te.RuleType)
		if err != nil {
			return err
		}
		if _, ok := schema.UniqueItem(te.TupleType); !ok {
			return fmt.Errorf("%w: %T tag %q is not a unique item of rule type %q",
				types.ErrBadDescriptor, prototype, te.TupleType, te.RuleType)
		}
		return nil
	default:
		if te.RuleType == "" {
			return fmt.Errorf("%w: %T has neither rule type nor tuple type", types.ErrBadDescriptor, prototype)
		}
		if len(te.Fields) == 0 {
			return fmt.Errorf("%w: field-mapped %T has no fields", types.ErrBadDescriptor, prototype)
		}
		schema, err := e.schemas.Lookup(te.RuleType)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(te.Fields))
		for _, f := range te.Fields {
			if err := f.validate(); err != nil {
				return err
			}
			if seen[f.Name] {
				return fmt.Errorf("%w: duplicate field %q on %T", types.ErrBadDescriptor, f.Name, prototype)
			}
			seen[f.Name] = true
			if f.named() {
				if _, ok := schema.NamedItem(f.Name); !ok {
					return fmt.Errorf("%w: field %q of %T is not a named item of rule type %q",
						types.ErrBadDescriptor, f.Name, prototype, te.RuleType)
				}
			} else {
				if _, ok := schema.UniqueItem(f.Name); !ok {
					return fmt.Errorf("%w: field %q of %T is not a unique item of rule type %q",
						types.ErrBadDescriptor, f.Name, prototype, te.RuleType)
				}
			}
		}
		return nil
	}
}

// Registered reports whether v's dynamic type participates in tuple
// conversion.
func (e *Engine) Registered(v any) bool {
	return e.lookup(v) != nil
}

// lookup returns the entry for v's dynamic type, or nil when v's type is not
// registered for tuple conversion.
func (e *Engine) lookup(v any) *entry {
	if v == nil {
		return nil
	}
	return e.entries[reflect.TypeOf(v)]
}
