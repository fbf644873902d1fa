package tuple

import (
	"fmt"
	"strconv"

	"github.com/keelworks/treeline/internal/codec"
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/types"
)

/*
 * Decoder: tuples -> configuration object.
 *
 * Single-pass construction: a fresh object is allocated, populated from the
 * given tuple snapshot, and only then returned. Callers never observe a
 * partially populated object.
 *
 * Presence semantics: a rule type with no tuples under its root decodes to
 * "not present" (ok=false), never to a default-constructed object. This
 * keeps "rule type absent" distinguishable from "present but all-default".
 *
 * Routing: every non-empty tuple under the root goes to the one field whose
 * path predicate accepts it. Tuples matching no field are dropped silently
 * so newer writers can emit fields unknown to older readers.
 *
 * Scalar policy: STRICT. "notabool" for a bool field or non-numeric text for
 * an int field fails the whole decode with ErrValueFormat; a corrupted field
 * likely means a corrupted snapshot, so nothing is skip-and-continued.
 */

// Decode reconstructs a configuration object of prototype's type from the
// tuple snapshot.
//
// ok=false means "this rule type is not configured" (or the type is not
// registered at all) and must not be conflated with a format error. Input
// tuple order never affects the result.
func (e *Engine) Decode(tuples []types.Tuple, prototype any) (cfg any, ok bool, err error) {
	ent := e.lookup(prototype)
	if ent == nil {
		return nil, false, nil
	}
	if ent.TupleType != "" {
		return e.decodeWhole(tuples, ent)
	}
	return e.decodeFields(tuples, ent)
}

// decodeWhole scans for the singleton's node and deserializes its value as
// the entire object.
func (e *Engine) decodeWhole(tuples []types.Tuple, ent *entry) (any, bool, error) {
	if ent.Global {
		for _, t := range tuples {
			if nodepath.IsGlobalPath(ent.TupleType, t.Path) {
				return unmarshalWhole(t.Value, ent)
			}
		}
		return nil, false, nil
	}

	schema, err := e.schemas.Lookup(ent.RuleType)
	if err != nil {
		return nil, false, err
	}
	item, _ := schema.UniqueItem(ent.TupleType)
	for _, t := range tuples {
		if !schema.Root().Contains(t.Path) {
			continue
		}
		if item.Matches(t.Path) {
			return unmarshalWhole(t.Value, ent)
		}
	}
	return nil, false, nil
}

func unmarshalWhole(value string, ent *entry) (any, bool, error) {
	cfg := ent.New()
	if err := codec.UnmarshalString(value, cfg); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// decodeFields reconstructs a field-mapped configuration.
func (e *Engine) decodeFields(tuples []types.Tuple, ent *entry) (any, bool, error) {
	schema, err := e.schemas.Lookup(ent.RuleType)
	if err != nil {
		return nil, false, err
	}

	var scoped []types.Tuple
	for _, t := range tuples {
		if schema.Root().Contains(t.Path) {
			scoped = append(scoped, t)
		}
	}
	if len(scoped) == 0 {
		return nil, false, nil
	}

	cfg := ent.New()
	for _, t := range scoped {
		if t.Value == "" {
			continue
		}
		if err := routeTuple(cfg, t, ent.Fields, schema); err != nil {
			return nil, false, err
		}
	}
	return cfg, true, nil
}

// routeTuple assigns one tuple to the first field whose predicate accepts
// its path. Field path templates within a rule type do not overlap, so
// first-match is the only match. An unmatched tuple is ignored.
func routeTuple(cfg any, t types.Tuple, fields []Field, schema *nodepath.RuleNodePath) error {
	for _, f := range fields {
		matched, err := applyField(cfg, f, t, schema)
		if err != nil {
			return err
		}
		if matched {
			return nil
		}
	}
	return nil
}

// applyField checks the field's path predicate and assigns the tuple value
// on a match. Returns whether the tuple was consumed.
func applyField(cfg any, f Field, t types.Tuple, schema *nodepath.RuleNodePath) (bool, error) {
	switch f.Kind {
	case KindNamedList:
		item, _ := schema.NamedItem(f.Name)
		if _, ok := item.Name(t.Path); !ok {
			return false, nil
		}
		// Elements decode to the raw stored string. Encoding may have
		// stringified a richer value; this asymmetry is intentional and
		// load-bearing for existing snapshots.
		f.Append(cfg, t.Value)
		return true, nil

	case KindMap:
		item, _ := schema.NamedItem(f.Name)
		name, ok := item.Name(t.Path)
		if !ok {
			return false, nil
		}
		v := f.NewValue()
		if err := codec.UnmarshalString(t.Value, v); err != nil {
			return false, err
		}
		f.Put(cfg, name, v)
		return true, nil

	case KindList, KindObject:
		item, _ := schema.UniqueItem(f.Name)
		if !item.Matches(t.Path) {
			return false, nil
		}
		v := f.NewValue()
		if err := codec.UnmarshalString(t.Value, v); err != nil {
			return false, err
		}
		f.Set(cfg, v)
		return true, nil

	case KindString:
		item, _ := schema.UniqueItem(f.Name)
		if !item.Matches(t.Path) {
			return false, nil
		}
		f.Set(cfg, t.Value)
		return true, nil

	case KindBool:
		item, _ := schema.UniqueItem(f.Name)
		if !item.Matches(t.Path) {
			return false, nil
		}
		v, err := strconv.ParseBool(t.Value)
		if err != nil {
			return false, formatErr(f.Name, t)
		}
		f.Set(cfg, v)
		return true, nil

	case KindInt:
		item, _ := schema.UniqueItem(f.Name)
		if !item.Matches(t.Path) {
			return false, nil
		}
		v, err := strconv.Atoi(t.Value)
		if err != nil {
			return false, formatErr(f.Name, t)
		}
		f.Set(cfg, v)
		return true, nil

	case KindInt64:
		item, _ := schema.UniqueItem(f.Name)
		if !item.Matches(t.Path) {
			return false, nil
		}
		v, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return false, formatErr(f.Name, t)
		}
		f.Set(cfg, v)
		return true, nil

	default:
		return false, nil
	}
}

func formatErr(field string, t types.Tuple) error {
	return fmt.Errorf("%w: field %q at %s: cannot parse %q", types.ErrValueFormat, field, t.Path, t.Value)
}
