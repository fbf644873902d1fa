package ruleconfig

import (
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/tuple"
)

// SingleRuleConfig tracks un-sharded tables. The table list is a plain
// collection: the whole list serializes as one tuple, unlike the name-keyed
// collections of the sharding rule.
type SingleRuleConfig struct {
	Tables            []string `yaml:"tables,omitempty"`
	DefaultDataSource string   `yaml:"defaultDataSource,omitempty"`
}

// RuleType implements types.RuleConfig.
func (*SingleRuleConfig) RuleType() string { return "single" }

func singleNodePath() *nodepath.RuleNodePath {
	return nodepath.New("single", []string{"tables", "default_data_source"}, nil)
}

func singleEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		RuleType: "single",
		New:      func() any { return &SingleRuleConfig{} },
		Fields: []tuple.Field{
			{
				Name: "tables", Order: 0, Kind: tuple.KindList,
				Get: func(cfg any) any {
					if c := cfg.(*SingleRuleConfig); len(c.Tables) > 0 {
						return c.Tables
					}
					return nil
				},
				Set:      func(cfg any, v any) { cfg.(*SingleRuleConfig).Tables = *v.(*[]string) },
				NewValue: func() any { return new([]string) },
			},
			{
				Name: "default_data_source", Order: 1, Kind: tuple.KindString,
				Get: func(cfg any) any {
					if c := cfg.(*SingleRuleConfig); c.DefaultDataSource != "" {
						return c.DefaultDataSource
					}
					return nil
				},
				Set: func(cfg any, v any) { cfg.(*SingleRuleConfig).DefaultDataSource = v.(string) },
			},
		},
	}
}
