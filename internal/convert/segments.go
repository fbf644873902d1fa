// Package convert builds sharding rule configurations from parsed
// CREATE/ALTER SHARDING TABLE RULE statement segments.
package convert

/*
 * Statement segments.
 *
 * These are the parser's output for sharding DDL statements, already
 * tokenized but not yet shaped into a rule configuration. The converter in
 * converter.go is ordinary data-shaping logic: it never touches node paths
 * or tuples.
 */

// AlgorithmSegment names an algorithm and its properties as written in the
// statement.
type AlgorithmSegment struct {
	Name  string
	Props map[string]string
}

// StrategySegment describes one sharding strategy clause.
// Type is one of standard, complex, hint, none (case-insensitive).
type StrategySegment struct {
	Type           string
	ShardingColumn string
	Algorithm      *AlgorithmSegment
}

// KeyGenerateSegment describes a KEY GENERATE STRATEGY clause.
type KeyGenerateSegment struct {
	Column    string
	Algorithm *AlgorithmSegment
}

// AuditorSegment names one auditor and its algorithm.
type AuditorSegment struct {
	Name      string
	Algorithm *AlgorithmSegment
}

// AuditSegment describes an AUDIT STRATEGY clause.
type AuditSegment struct {
	Auditors         []AuditorSegment
	AllowHintDisable bool
}

// TableRuleSegment is a sharding table rule with explicit data nodes and
// per-level strategies.
type TableRuleSegment struct {
	LogicTable       string
	DataSourceNodes  []string
	DatabaseStrategy *StrategySegment
	TableStrategy    *StrategySegment
	KeyGenerate      *KeyGenerateSegment
	Audit            *AuditSegment
}

// AutoTableRuleSegment is a sharding auto table rule: the algorithm derives
// actual nodes from the listed data sources.
type AutoTableRuleSegment struct {
	LogicTable     string
	DataSources    []string
	ShardingColumn string
	Algorithm      *AlgorithmSegment
	KeyGenerate    *KeyGenerateSegment
	Audit          *AuditSegment
}
