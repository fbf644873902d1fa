package ruleconfig

import (
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/tuple"
)

/*
 * Startup wiring.
 *
 * Schemas and descriptor tables are registered once here and treated as
 * read-only afterwards. Registration failures are packaging defects, not
 * runtime conditions, so Builtin panics the way regexp.MustCompile does.
 */

// Schemas returns a registry holding the node path schema of every
// field-addressed rule type Treeline ships.
func Schemas() *nodepath.Registry {
	r := nodepath.NewRegistry()
	r.Register(shardingNodePath())
	r.Register(encryptNodePath())
	r.Register(readwriteNodePath())
	r.Register(singleNodePath())
	r.Register(quotaNodePath())
	return r
}

// Builtin returns a tuple engine wired with every built-in rule type.
func Builtin() *tuple.Engine {
	e := tuple.NewEngine(Schemas())
	must(e.Register(&ShardingRuleConfig{}, shardingEntry()))
	must(e.Register(&EncryptRuleConfig{}, encryptEntry()))
	must(e.Register(&ReadwriteSplittingRuleConfig{}, readwriteEntry()))
	must(e.Register(&SingleRuleConfig{}, singleEntry()))
	must(e.Register(&ConnectionQuotaRuleConfig{}, quotaEntry()))
	must(e.Register(&ShardingCacheConfig{}, shardingCacheEntry()))
	must(e.Register(&TransactionRuleConfig{}, transactionEntry()))
	must(e.Register(&SQLParserRuleConfig{}, sqlParserEntry()))
	return e
}

// Prototypes returns one prototype per registered configuration type, in a
// stable order. Callers that decode a full snapshot iterate this list.
func Prototypes() []any {
	return []any{
		&ShardingRuleConfig{},
		&EncryptRuleConfig{},
		&ReadwriteSplittingRuleConfig{},
		&SingleRuleConfig{},
		&ConnectionQuotaRuleConfig{},
		&ShardingCacheConfig{},
		&TransactionRuleConfig{},
		&SQLParserRuleConfig{},
	}
}

// Names returns the document keys rule configurations appear under in YAML
// rule documents, in the same order as Prototypes.
func Names() []string {
	return []string{
		"sharding",
		"encrypt",
		"readwrite_splitting",
		"single",
		"connection_quota",
		"sharding_cache",
		"transaction",
		"sql_parser",
	}
}

// New returns a fresh configuration value for a document key, or false when
// the key names no built-in rule type.
func New(name string) (any, bool) {
	switch name {
	case "sharding":
		return &ShardingRuleConfig{}, true
	case "encrypt":
		return &EncryptRuleConfig{}, true
	case "readwrite_splitting":
		return &ReadwriteSplittingRuleConfig{}, true
	case "single":
		return &SingleRuleConfig{}, true
	case "connection_quota":
		return &ConnectionQuotaRuleConfig{}, true
	case "sharding_cache":
		return &ShardingCacheConfig{}, true
	case "transaction":
		return &TransactionRuleConfig{}, true
	case "sql_parser":
		return &SQLParserRuleConfig{}, true
	default:
		return nil, false
	}
}

// NameOf returns the document key for a configuration value, or false for
// types that are not built in.
func NameOf(cfg any) (string, bool) {
	switch cfg.(type) {
	case *ShardingRuleConfig:
		return "sharding", true
	case *EncryptRuleConfig:
		return "encrypt", true
	case *ReadwriteSplittingRuleConfig:
		return "readwrite_splitting", true
	case *SingleRuleConfig:
		return "single", true
	case *ConnectionQuotaRuleConfig:
		return "connection_quota", true
	case *ShardingCacheConfig:
		return "sharding_cache", true
	case *TransactionRuleConfig:
		return "transaction", true
	case *SQLParserRuleConfig:
		return "sql_parser", true
	default:
		return "", false
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
