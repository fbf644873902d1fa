package tuple

import (
	"fmt"

	"github.com/keelworks/treeline/internal/types"
)

/*
 * Static field descriptors.
 *
 * Each configuration type registers an explicit descriptor table at startup
 * instead of being introspected per call. A descriptor carries the field's
 * logical name (its path template segment), an emission order, a closed
 * FieldKind, and typed accessor closures. Which closures a descriptor needs
 * depends on its kind; validate() checks the combination once at
 * registration time.
 *
 * Accessor contract: Get returns nil when the field is at its default
 * (empty string, zero scalar, nil/empty collection). A nil Get result emits
 * no tuple, giving the sparse representation where absence means "default".
 */

// Field describes one tuple-converted field of a configuration type.
type Field struct {
	// Name is the logical field name used in its path template.
	Name string

	// Order determines emission order within the type. Lower emits first.
	Order int

	// Kind selects the conversion shape.
	Kind FieldKind

	// Get returns the field's current value, or nil when at default.
	// Required for every kind except KindNamedList and KindMap.
	Get func(cfg any) any

	// Set assigns a decoded value. The engine passes string, bool, int or
	// int64 for scalar kinds, and the pointer produced by NewValue for
	// KindList and KindObject.
	Set func(cfg any, v any)

	// Strings returns the elements of a name-keyed collection field.
	Strings func(cfg any) []string

	// Append adds one raw element to a name-keyed collection field.
	Append func(cfg any, raw string)

	// ElementName derives the stable name segment for an element of a
	// name-keyed collection field.
	ElementName func(element string) string

	// Entries returns a map field's entries for emission.
	Entries func(cfg any) map[string]any

	// Put inserts or overwrites one decoded map entry.
	Put func(cfg any, name string, v any)

	// NewValue allocates a pointer to the field's declared value type for
	// decoding. Required for KindList, KindMap and KindObject; this replaces
	// runtime discovery of the declared generic/element type.
	NewValue func() any
}

// validate checks that the descriptor carries the closures its kind needs.
func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: field name is empty", types.ErrBadDescriptor)
	}
	switch f.Kind {
	case KindString, KindBool, KindInt, KindInt64:
		if f.Get == nil || f.Set == nil {
			return fmt.Errorf("%w: %s field %q needs Get and Set", types.ErrBadDescriptor, f.Kind, f.Name)
		}
	case KindList, KindObject:
		if f.Get == nil || f.Set == nil || f.NewValue == nil {
			return fmt.Errorf("%w: %s field %q needs Get, Set and NewValue", types.ErrBadDescriptor, f.Kind, f.Name)
		}
	case KindNamedList:
		if f.Strings == nil || f.Append == nil || f.ElementName == nil {
			return fmt.Errorf("%w: named-list field %q needs Strings, Append and ElementName", types.ErrBadDescriptor, f.Name)
		}
	case KindMap:
		if f.Entries == nil || f.Put == nil || f.NewValue == nil {
			return fmt.Errorf("%w: map field %q needs Entries, Put and NewValue", types.ErrBadDescriptor, f.Name)
		}
	default:
		return fmt.Errorf("%w: field %q has unknown kind %d", types.ErrBadDescriptor, f.Name, int(f.Kind))
	}
	return nil
}

// named reports whether the field uses a named-item path template.
func (f Field) named() bool {
	return f.Kind == KindNamedList || f.Kind == KindMap
}
