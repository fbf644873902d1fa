package ruleconfig

import (
	"strings"

	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/tuple"
)

/*
 * Sharding rule configuration.
 *
 * The richest rule type: exercises maps (tables, algorithms), a name-keyed
 * list (binding table groups), nested objects (default strategies) and a
 * scalar (default sharding column). Binding table groups are raw strings on
 * the wire, e.g. "order_group:t_order,t_order_item"; the group name segment
 * is derived from the element value, so elements decode back to the same raw
 * string form they were stored as.
 */

// ShardingRuleConfig configures horizontal sharding for one proxy database.
type ShardingRuleConfig struct {
	Tables                     map[string]*TableRuleConfig     `yaml:"tables,omitempty"`
	AutoTables                 map[string]*AutoTableRuleConfig `yaml:"autoTables,omitempty"`
	BindingTables              []string                        `yaml:"bindingTables,omitempty"`
	DefaultDatabaseStrategy    *StrategyConfig                 `yaml:"defaultDatabaseStrategy,omitempty"`
	DefaultTableStrategy       *StrategyConfig                 `yaml:"defaultTableStrategy,omitempty"`
	DefaultKeyGenerateStrategy *KeyGenerateStrategyConfig      `yaml:"defaultKeyGenerateStrategy,omitempty"`
	ShardingAlgorithms         map[string]*AlgorithmConfig     `yaml:"shardingAlgorithms,omitempty"`
	KeyGenerators              map[string]*AlgorithmConfig     `yaml:"keyGenerators,omitempty"`
	Auditors                   map[string]*AlgorithmConfig     `yaml:"auditors,omitempty"`
	DefaultShardingColumn      string                          `yaml:"defaultShardingColumn,omitempty"`
}

// RuleType implements types.RuleConfig.
func (*ShardingRuleConfig) RuleType() string { return "sharding" }

// TableRuleConfig shards one logic table over explicit data nodes.
type TableRuleConfig struct {
	ActualDataNodes     string                     `yaml:"actualDataNodes"`
	DatabaseStrategy    *StrategyConfig            `yaml:"databaseStrategy,omitempty"`
	TableStrategy       *StrategyConfig            `yaml:"tableStrategy,omitempty"`
	KeyGenerateStrategy *KeyGenerateStrategyConfig `yaml:"keyGenerateStrategy,omitempty"`
	AuditStrategy       *AuditStrategyConfig       `yaml:"auditStrategy,omitempty"`
}

// AutoTableRuleConfig shards one logic table over data sources, letting the
// algorithm derive the actual nodes.
type AutoTableRuleConfig struct {
	ActualDataSources   string                     `yaml:"actualDataSources"`
	ShardingStrategy    *StrategyConfig            `yaml:"shardingStrategy,omitempty"`
	KeyGenerateStrategy *KeyGenerateStrategyConfig `yaml:"keyGenerateStrategy,omitempty"`
	AuditStrategy       *AuditStrategyConfig       `yaml:"auditStrategy,omitempty"`
}

// BindingGroupName derives the stable name segment for a binding table group
// element: the explicit "name:" prefix when present, otherwise the first
// table in the group.
func BindingGroupName(element string) string {
	if idx := strings.IndexByte(element, ':'); idx >= 0 {
		return strings.TrimSpace(element[:idx])
	}
	first, _, _ := strings.Cut(element, ",")
	return strings.TrimSpace(first)
}

func shardingNodePath() *nodepath.RuleNodePath {
	return nodepath.New("sharding",
		[]string{
			"default_database_strategy",
			"default_table_strategy",
			"default_key_generate_strategy",
			"default_sharding_column",
			"sharding_cache",
		},
		[]string{
			"tables",
			"auto_tables",
			"binding_tables",
			"sharding_algorithms",
			"key_generators",
			"auditors",
		})
}

func shardingEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		RuleType: "sharding",
		New:      func() any { return &ShardingRuleConfig{} },
		Fields: []tuple.Field{
			{
				Name: "tables", Order: 0, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*ShardingRuleConfig).Tables) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ShardingRuleConfig)
					if c.Tables == nil {
						c.Tables = make(map[string]*TableRuleConfig)
					}
					c.Tables[name] = v.(*TableRuleConfig)
				},
				NewValue: func() any { return new(TableRuleConfig) },
			},
			{
				Name: "auto_tables", Order: 1, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*ShardingRuleConfig).AutoTables) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ShardingRuleConfig)
					if c.AutoTables == nil {
						c.AutoTables = make(map[string]*AutoTableRuleConfig)
					}
					c.AutoTables[name] = v.(*AutoTableRuleConfig)
				},
				NewValue: func() any { return new(AutoTableRuleConfig) },
			},
			{
				Name: "binding_tables", Order: 2, Kind: tuple.KindNamedList,
				Strings:     func(cfg any) []string { return cfg.(*ShardingRuleConfig).BindingTables },
				Append:      func(cfg any, raw string) { appendBindingTable(cfg.(*ShardingRuleConfig), raw) },
				ElementName: BindingGroupName,
			},
			{
				Name: "default_database_strategy", Order: 3, Kind: tuple.KindObject,
				Get: func(cfg any) any {
					if c := cfg.(*ShardingRuleConfig); c.DefaultDatabaseStrategy != nil {
						return c.DefaultDatabaseStrategy
					}
					return nil
				},
				Set:      func(cfg any, v any) { cfg.(*ShardingRuleConfig).DefaultDatabaseStrategy = v.(*StrategyConfig) },
				NewValue: func() any { return new(StrategyConfig) },
			},
			{
				Name: "default_table_strategy", Order: 4, Kind: tuple.KindObject,
				Get: func(cfg any) any {
					if c := cfg.(*ShardingRuleConfig); c.DefaultTableStrategy != nil {
						return c.DefaultTableStrategy
					}
					return nil
				},
				Set:      func(cfg any, v any) { cfg.(*ShardingRuleConfig).DefaultTableStrategy = v.(*StrategyConfig) },
				NewValue: func() any { return new(StrategyConfig) },
			},
			{
				Name: "default_key_generate_strategy", Order: 5, Kind: tuple.KindObject,
				Get: func(cfg any) any {
					if c := cfg.(*ShardingRuleConfig); c.DefaultKeyGenerateStrategy != nil {
						return c.DefaultKeyGenerateStrategy
					}
					return nil
				},
				Set: func(cfg any, v any) {
					cfg.(*ShardingRuleConfig).DefaultKeyGenerateStrategy = v.(*KeyGenerateStrategyConfig)
				},
				NewValue: func() any { return new(KeyGenerateStrategyConfig) },
			},
			{
				Name: "sharding_algorithms", Order: 6, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*ShardingRuleConfig).ShardingAlgorithms) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ShardingRuleConfig)
					if c.ShardingAlgorithms == nil {
						c.ShardingAlgorithms = make(map[string]*AlgorithmConfig)
					}
					c.ShardingAlgorithms[name] = v.(*AlgorithmConfig)
				},
				NewValue: func() any { return new(AlgorithmConfig) },
			},
			{
				Name: "key_generators", Order: 7, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*ShardingRuleConfig).KeyGenerators) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ShardingRuleConfig)
					if c.KeyGenerators == nil {
						c.KeyGenerators = make(map[string]*AlgorithmConfig)
					}
					c.KeyGenerators[name] = v.(*AlgorithmConfig)
				},
				NewValue: func() any { return new(AlgorithmConfig) },
			},
			{
				Name: "auditors", Order: 8, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*ShardingRuleConfig).Auditors) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ShardingRuleConfig)
					if c.Auditors == nil {
						c.Auditors = make(map[string]*AlgorithmConfig)
					}
					c.Auditors[name] = v.(*AlgorithmConfig)
				},
				NewValue: func() any { return new(AlgorithmConfig) },
			},
			{
				Name: "default_sharding_column", Order: 9, Kind: tuple.KindString,
				Get: func(cfg any) any {
					if c := cfg.(*ShardingRuleConfig); c.DefaultShardingColumn != "" {
						return c.DefaultShardingColumn
					}
					return nil
				},
				Set: func(cfg any, v any) { cfg.(*ShardingRuleConfig).DefaultShardingColumn = v.(string) },
			},
		},
	}
}

func appendBindingTable(c *ShardingRuleConfig, raw string) {
	c.BindingTables = append(c.BindingTables, raw)
}
