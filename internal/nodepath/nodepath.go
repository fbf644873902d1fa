// Package nodepath describes where each rule type's tuples live in the
// coordination tree.
package nodepath

import (
	"regexp"
	"strings"
)

/*
 * Node path schemas for rule configuration tuples.
 *
 * A RuleNodePath is the single source of truth for path shape: the encoder
 * uses it to build tuple paths and the decoder interrogates the exact same
 * templates, so the two directions cannot drift apart.
 *
 * Key types:
 *   - RootPath: rule type's base path plus containment predicate
 *   - UniqueItemPath: fixed path for a field whose whole value is one tuple
 *   - NamedItemPath: template with one variable name segment per element
 *   - RuleNodePath: per-rule-type bundle of root, unique and named items
 *
 * Path layout: /rules/<type> for roots, /rules/<type>/<field> for unique
 * items, /rules/<type>/<field>/<name> for named items. Namespacing (which
 * proxy database a snapshot belongs to) is a storage concern handled by the
 * snapshot store, not encoded in tuple paths.
 *
 * Schemas are immutable after construction and safe for concurrent use.
 */

// RulesRoot is the base segment all rule configuration paths share.
const RulesRoot = "/rules"

// namePattern restricts named-item name segments to table/algorithm style
// identifiers. One segment only; '/' is the tree separator.
const namePattern = `([\w.\-]+)`

// RootPath is a rule type's base path in the coordination tree.
type RootPath struct {
	ruleType string
	path     string
}

// NewRootPath builds the root path for a rule type identifier.
func NewRootPath(ruleType string) RootPath {
	return RootPath{ruleType: ruleType, path: RulesRoot + "/" + ruleType}
}

// RuleType returns the rule type identifier this root belongs to.
func (p RootPath) RuleType() string {
	return p.ruleType
}

// Path returns the base path, e.g. "/rules/sharding".
func (p RootPath) Path() string {
	return p.path
}

// Contains reports whether candidate lies at or under this root.
func (p RootPath) Contains(candidate string) bool {
	return candidate == p.path || strings.HasPrefix(candidate, p.path+"/")
}

// UniqueItemPath addresses a field whose entire value occupies one fixed path.
type UniqueItemPath struct {
	path string
}

// Path returns the fixed path, e.g. "/rules/sharding/default_sharding_column".
func (p UniqueItemPath) Path() string {
	return p.path
}

// Matches reports whether candidate is exactly this item's path.
func (p UniqueItemPath) Matches(candidate string) bool {
	return candidate == p.path
}

// NamedItemPath addresses a field decomposed into multiple entries, each at a
// path containing a variable name segment.
type NamedItemPath struct {
	prefix  string
	pattern *regexp.Regexp
}

// Path returns the entry path for the given name,
// e.g. "/rules/sharding/tables/t_order".
func (p NamedItemPath) Path(name string) string {
	return p.prefix + "/" + name
}

// Name matches candidate against the template and extracts the name segment.
// The boolean result doubles as the match predicate.
func (p NamedItemPath) Name(candidate string) (string, bool) {
	m := p.pattern.FindStringSubmatch(candidate)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// RuleNodePath bundles one rule type's root and field path templates.
// Within one rule type no two item templates overlap; that invariant is a
// schema-author responsibility and is not re-checked at match time.
type RuleNodePath struct {
	root    RootPath
	uniques map[string]UniqueItemPath
	named   map[string]NamedItemPath
}

// New constructs an immutable schema for ruleType with the given unique and
// named item field names.
func New(ruleType string, uniqueNames, namedNames []string) *RuleNodePath {
	root := NewRootPath(ruleType)
	uniques := make(map[string]UniqueItemPath, len(uniqueNames))
	for _, name := range uniqueNames {
		uniques[name] = UniqueItemPath{path: root.Path() + "/" + name}
	}
	named := make(map[string]NamedItemPath, len(namedNames))
	for _, name := range namedNames {
		prefix := root.Path() + "/" + name
		named[name] = NamedItemPath{
			prefix:  prefix,
			pattern: regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + "/" + namePattern + "$"),
		}
	}
	return &RuleNodePath{root: root, uniques: uniques, named: named}
}

// Root returns the rule type's base path.
func (p *RuleNodePath) Root() RootPath {
	return p.root
}

// UniqueItem returns the fixed path for the given field name.
// The boolean reports whether the field was declared on this schema.
func (p *RuleNodePath) UniqueItem(name string) (UniqueItemPath, bool) {
	item, ok := p.uniques[name]
	return item, ok
}

// NamedItem returns the path template for the given field name.
// The boolean reports whether the field was declared on this schema.
func (p *RuleNodePath) NamedItem(name string) (NamedItemPath, bool) {
	item, ok := p.named[name]
	return item, ok
}
