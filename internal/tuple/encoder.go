package tuple

import (
	"sort"
	"strconv"

	"github.com/keelworks/treeline/internal/codec"
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/types"
)

/*
 * Encoder: configuration object -> tuples.
 *
 * Pure function over its arguments: the input configuration is never
 * mutated, output is deterministic for identical input, and the engine
 * retains no state between calls.
 *
 * Emission rules:
 *   - unregistered type: empty result, not an error
 *   - whole-object singleton: exactly one tuple at the fixed tag path
 *   - field-mapped: fields walk in declared order; a field at its default
 *     (nil Get, empty string/collection, zero scalar) emits nothing, so
 *     absence of a tuple means "field at default"
 *   - map entries emit in sorted key order for deterministic output;
 *     decoding never depends on that order
 */

// Encode converts cfg into its tuple representation.
// An unregistered type yields an empty collection. The caller decides write
// order to the coordination tree.
func (e *Engine) Encode(cfg any) ([]types.Tuple, error) {
	ent := e.lookup(cfg)
	if ent == nil {
		return nil, nil
	}
	if ent.TupleType != "" {
		return e.encodeWhole(cfg, ent)
	}

	schema, err := e.schemas.Lookup(ent.RuleType)
	if err != nil {
		return nil, err
	}
	var result []types.Tuple
	for _, f := range ent.Fields {
		fieldTuples, err := encodeField(cfg, f, schema)
		if err != nil {
			return nil, err
		}
		result = append(result, fieldTuples...)
	}
	return result, nil
}

// encodeWhole emits the single tuple of a whole-object singleton.
// No field walk occurs; the tag path is terminal.
func (e *Engine) encodeWhole(cfg any, ent *entry) ([]types.Tuple, error) {
	var path string
	if ent.Global {
		path = nodepath.GlobalPath(ent.TupleType)
	} else {
		schema, err := e.schemas.Lookup(ent.RuleType)
		if err != nil {
			return nil, err
		}
		item, _ := schema.UniqueItem(ent.TupleType)
		path = item.Path()
	}
	value, err := codec.MarshalString(cfg)
	if err != nil {
		return nil, err
	}
	return []types.Tuple{{Path: path, Value: value}}, nil
}

// encodeField dispatches on the field's kind. The switch is exhaustive over
// FieldKind; registration already rejected unknown kinds.
func encodeField(cfg any, f Field, schema *nodepath.RuleNodePath) ([]types.Tuple, error) {
	switch f.Kind {
	case KindNamedList:
		item, _ := schema.NamedItem(f.Name)
		elements := f.Strings(cfg)
		result := make([]types.Tuple, 0, len(elements))
		for _, element := range elements {
			result = append(result, types.Tuple{
				Path:  item.Path(f.ElementName(element)),
				Value: element,
			})
		}
		return result, nil

	case KindMap:
		item, _ := schema.NamedItem(f.Name)
		entries := f.Entries(cfg)
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		result := make([]types.Tuple, 0, len(names))
		for _, name := range names {
			value, err := codec.MarshalString(entries[name])
			if err != nil {
				return nil, err
			}
			result = append(result, types.Tuple{Path: item.Path(name), Value: value})
		}
		return result, nil

	case KindList, KindObject:
		v := f.Get(cfg)
		if v == nil {
			return nil, nil
		}
		item, _ := schema.UniqueItem(f.Name)
		value, err := codec.MarshalString(v)
		if err != nil {
			return nil, err
		}
		return []types.Tuple{{Path: item.Path(), Value: value}}, nil

	case KindString:
		v := f.Get(cfg)
		if v == nil {
			return nil, nil
		}
		item, _ := schema.UniqueItem(f.Name)
		// Strings pass through verbatim, no re-encoding.
		return []types.Tuple{{Path: item.Path(), Value: v.(string)}}, nil

	case KindBool:
		v := f.Get(cfg)
		if v == nil {
			return nil, nil
		}
		item, _ := schema.UniqueItem(f.Name)
		return []types.Tuple{{Path: item.Path(), Value: strconv.FormatBool(v.(bool))}}, nil

	case KindInt:
		v := f.Get(cfg)
		if v == nil {
			return nil, nil
		}
		item, _ := schema.UniqueItem(f.Name)
		return []types.Tuple{{Path: item.Path(), Value: strconv.Itoa(v.(int))}}, nil

	case KindInt64:
		v := f.Get(cfg)
		if v == nil {
			return nil, nil
		}
		item, _ := schema.UniqueItem(f.Name)
		return []types.Tuple{{Path: item.Path(), Value: strconv.FormatInt(v.(int64), 10)}}, nil

	default:
		// Unreachable: registration validates kinds.
		return nil, nil
	}
}
