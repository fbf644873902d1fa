// Package types provides domain models shared across Treeline components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the tuple engine can be embedded without pulling in storage or
// CLI dependencies. ID utilities in ids.go import uuid but are isolated for
// selective inclusion.
package types

// Tuple is the wire unit of configuration persistence: one leaf of
// configuration state in the coordination tree.
//
// Path is a '/'-delimited ASCII string identifying a unique position in the
// tree. Value is UTF-8 text, either a raw scalar or a YAML blob. Tuples are
// ephemeral transformation artifacts; they own no resources and are treated
// as immutable once constructed.
type Tuple struct {
	Path  string
	Value string
}

// RuleConfig is implemented by rule configurations whose tuple paths live
// under a per-rule-type root. The returned identifier resolves the rule
// type's node path schema.
//
// Cluster-wide whole-object configurations (transaction, sql_parser) do not
// implement RuleConfig; they are addressed by a fixed tag path instead.
type RuleConfig interface {
	RuleType() string
}
