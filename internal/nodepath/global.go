package nodepath

import "regexp"

/*
 * Cluster-wide node paths.
 *
 * Whole-object configurations that apply to the whole cluster (transaction,
 * sql_parser) bypass per-field decomposition: the entire object serializes as
 * one tuple at a fixed tag path. The coordination tree additionally keeps
 * numbered versions of those nodes, so readers must accept both the bare tag
 * path and any versioned form of it.
 */

var globalVersionPattern = regexp.MustCompile(`^/versions/(\d+)$`)

// GlobalPath returns the fixed tag path for a cluster-wide tuple type,
// e.g. "/rules/transaction".
func GlobalPath(tupleType string) string {
	return RulesRoot + "/" + tupleType
}

// IsGlobalPath reports whether candidate designates the cluster-wide node for
// tupleType, either the bare tag path or one of its versioned nodes.
func IsGlobalPath(tupleType, candidate string) bool {
	base := GlobalPath(tupleType)
	if candidate == base {
		return true
	}
	rest, ok := trimPrefix(candidate, base)
	return ok && globalVersionPattern.MatchString(rest)
}

// GlobalVersion extracts the version segment from a versioned cluster-wide
// path. The bare tag path reports version "" with ok=true.
func GlobalVersion(tupleType, candidate string) (version string, ok bool) {
	base := GlobalPath(tupleType)
	if candidate == base {
		return "", true
	}
	rest, hasPrefix := trimPrefix(candidate, base)
	if !hasPrefix {
		return "", false
	}
	m := globalVersionPattern.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func trimPrefix(candidate, base string) (string, bool) {
	if len(candidate) <= len(base) || candidate[:len(base)] != base {
		return "", false
	}
	return candidate[len(base):], true
}
