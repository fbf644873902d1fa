package ruleconfig

import (
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/tuple"
)

// ReadwriteSplittingRuleConfig routes reads and writes of one proxy database
// to different physical data sources.
type ReadwriteSplittingRuleConfig struct {
	DataSourceGroups map[string]*DataSourceGroupConfig `yaml:"dataSourceGroups,omitempty"`
	LoadBalancers    map[string]*AlgorithmConfig       `yaml:"loadBalancers,omitempty"`
}

// RuleType implements types.RuleConfig.
func (*ReadwriteSplittingRuleConfig) RuleType() string { return "readwrite_splitting" }

// DataSourceGroupConfig names one write source and its read replicas.
type DataSourceGroupConfig struct {
	WriteDataSourceName            string   `yaml:"writeDataSourceName"`
	ReadDataSourceNames            []string `yaml:"readDataSourceNames"`
	TransactionalReadQueryStrategy string   `yaml:"transactionalReadQueryStrategy,omitempty"`
	LoadBalancerName               string   `yaml:"loadBalancerName,omitempty"`
}

func readwriteNodePath() *nodepath.RuleNodePath {
	return nodepath.New("readwrite_splitting", nil, []string{"data_source_groups", "load_balancers"})
}

func readwriteEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		RuleType: "readwrite_splitting",
		New:      func() any { return &ReadwriteSplittingRuleConfig{} },
		Fields: []tuple.Field{
			{
				Name: "data_source_groups", Order: 0, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any {
					return anyMap(cfg.(*ReadwriteSplittingRuleConfig).DataSourceGroups)
				},
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ReadwriteSplittingRuleConfig)
					if c.DataSourceGroups == nil {
						c.DataSourceGroups = make(map[string]*DataSourceGroupConfig)
					}
					c.DataSourceGroups[name] = v.(*DataSourceGroupConfig)
				},
				NewValue: func() any { return new(DataSourceGroupConfig) },
			},
			{
				Name: "load_balancers", Order: 1, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any {
					return anyMap(cfg.(*ReadwriteSplittingRuleConfig).LoadBalancers)
				},
				Put: func(cfg any, name string, v any) {
					c := cfg.(*ReadwriteSplittingRuleConfig)
					if c.LoadBalancers == nil {
						c.LoadBalancers = make(map[string]*AlgorithmConfig)
					}
					c.LoadBalancers[name] = v.(*AlgorithmConfig)
				},
				NewValue: func() any { return new(AlgorithmConfig) },
			},
		},
	}
}
