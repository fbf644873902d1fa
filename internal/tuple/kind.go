package tuple

// FieldKind is the closed set of field shapes the engine can swap.
// The kind is chosen once per field at descriptor construction time and
// dispatched exhaustively, so an unhandled shape is a registration error
// rather than a silent fallback at encode time.
type FieldKind int

const (
	// KindString is a scalar string field. Values pass through verbatim in
	// both directions, no re-encoding.
	KindString FieldKind = iota

	// KindBool is a scalar boolean field, stored as "true"/"false".
	KindBool

	// KindInt is a scalar int field, stored as decimal text.
	KindInt

	// KindInt64 is a scalar int64 field, stored as decimal text.
	KindInt64

	// KindList is a plain collection field. The whole collection serializes
	// as one tuple at the field's unique path.
	KindList

	// KindNamedList is a name-keyed collection field: one tuple per element,
	// addressed by a name derived from the element value. Elements are raw
	// strings on the wire and stay raw strings after decoding.
	KindNamedList

	// KindMap is a key/value map field: one tuple per entry, addressed by
	// the entry key, value serialized as a YAML blob.
	KindMap

	// KindObject is a nested object field serialized whole at the field's
	// unique path.
	KindObject
)

// String returns the kind's name for error messages.
func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindList:
		return "list"
	case KindNamedList:
		return "named-list"
	case KindMap:
		return "map"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}
