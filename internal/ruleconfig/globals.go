package ruleconfig

import "github.com/keelworks/treeline/internal/tuple"

/*
 * Cluster-wide whole-object configurations.
 *
 * These apply to the whole cluster rather than one proxy database and need
 * no sub-structure in the tree: the entire object serializes as one tuple at
 * a fixed tag path, with versioned nodes maintained by the coordination
 * tree. They do not implement types.RuleConfig and have no node path schema.
 */

// TransactionRuleConfig selects the distributed transaction manager.
type TransactionRuleConfig struct {
	DefaultType  string            `yaml:"defaultType"`
	ProviderType string            `yaml:"providerType,omitempty"`
	Props        map[string]string `yaml:"props,omitempty"`
}

// SQLParserRuleConfig tunes the shared SQL parser.
type SQLParserRuleConfig struct {
	SQLCommentParseEnabled bool               `yaml:"sqlCommentParseEnabled,omitempty"`
	ParseTreeCache         *CacheOptionConfig `yaml:"parseTreeCache,omitempty"`
	SQLStatementCache      *CacheOptionConfig `yaml:"sqlStatementCache,omitempty"`
}

func transactionEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		TupleType: "transaction",
		Global:    true,
		New:       func() any { return &TransactionRuleConfig{} },
	}
}

func sqlParserEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		TupleType: "sql_parser",
		Global:    true,
		New:       func() any { return &SQLParserRuleConfig{} },
	}
}
