// Package ruleconfig defines the proxy rule configuration types Treeline
// persists, together with their node path schemas and field descriptor
// tables.
package ruleconfig

/*
 * Shared configuration fragments.
 *
 * These structs appear as map values or nested objects inside several rule
 * types. They carry yaml tags because their serialized form is the tuple
 * value payload; field names follow the wire format, not Go conventions.
 */

// AlgorithmConfig names an algorithm implementation and its properties.
// Used for sharding algorithms, key generators, auditors, encryptors and
// load balancers alike.
type AlgorithmConfig struct {
	Type  string            `yaml:"type"`
	Props map[string]string `yaml:"props,omitempty"`
}

// StrategyConfig selects how a table or database level routes rows.
// Type is one of standard, complex, hint, none.
type StrategyConfig struct {
	Type                  string `yaml:"type"`
	ShardingColumn        string `yaml:"shardingColumn,omitempty"`
	ShardingColumns       string `yaml:"shardingColumns,omitempty"`
	ShardingAlgorithmName string `yaml:"shardingAlgorithmName,omitempty"`
}

// KeyGenerateStrategyConfig binds a column to a key generator algorithm.
type KeyGenerateStrategyConfig struct {
	Column           string `yaml:"column"`
	KeyGeneratorName string `yaml:"keyGeneratorName"`
}

// AuditStrategyConfig lists the auditors consulted before routing and
// whether a hint may disable them.
type AuditStrategyConfig struct {
	AuditorNames     []string `yaml:"auditorNames"`
	AllowHintDisable bool     `yaml:"allowHintDisable,omitempty"`
}

// CacheOptionConfig sizes an in-proxy cache.
type CacheOptionConfig struct {
	InitialCapacity int   `yaml:"initialCapacity,omitempty"`
	MaximumSize     int64 `yaml:"maximumSize,omitempty"`
}

// anyMap widens a typed map for descriptor Entries closures.
func anyMap[V any](m map[string]V) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
