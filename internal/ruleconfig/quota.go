package ruleconfig

import (
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/tuple"
)

// ConnectionQuotaRuleConfig caps client connections per proxy node.
// Zero scalars are defaults and emit no tuple; decoding an absent scalar
// leaves the zero value in place, so the sparse representation round-trips.
type ConnectionQuotaRuleConfig struct {
	Enabled               bool     `yaml:"enabled,omitempty"`
	MaxConnectionsPerNode int      `yaml:"maxConnectionsPerNode,omitempty"`
	QueueTimeoutMillis    int64    `yaml:"queueTimeoutMillis,omitempty"`
	ExemptUsers           []string `yaml:"exemptUsers,omitempty"`
}

// RuleType implements types.RuleConfig.
func (*ConnectionQuotaRuleConfig) RuleType() string { return "connection_quota" }

func quotaNodePath() *nodepath.RuleNodePath {
	return nodepath.New("connection_quota",
		[]string{"enabled", "max_connections_per_node", "queue_timeout_millis", "exempt_users"}, nil)
}

func quotaEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		RuleType: "connection_quota",
		New:      func() any { return &ConnectionQuotaRuleConfig{} },
		Fields: []tuple.Field{
			{
				Name: "enabled", Order: 0, Kind: tuple.KindBool,
				Get: func(cfg any) any {
					if c := cfg.(*ConnectionQuotaRuleConfig); c.Enabled {
						return c.Enabled
					}
					return nil
				},
				Set: func(cfg any, v any) { cfg.(*ConnectionQuotaRuleConfig).Enabled = v.(bool) },
			},
			{
				Name: "max_connections_per_node", Order: 1, Kind: tuple.KindInt,
				Get: func(cfg any) any {
					if c := cfg.(*ConnectionQuotaRuleConfig); c.MaxConnectionsPerNode != 0 {
						return c.MaxConnectionsPerNode
					}
					return nil
				},
				Set: func(cfg any, v any) { cfg.(*ConnectionQuotaRuleConfig).MaxConnectionsPerNode = v.(int) },
			},
			{
				Name: "queue_timeout_millis", Order: 2, Kind: tuple.KindInt64,
				Get: func(cfg any) any {
					if c := cfg.(*ConnectionQuotaRuleConfig); c.QueueTimeoutMillis != 0 {
						return c.QueueTimeoutMillis
					}
					return nil
				},
				Set: func(cfg any, v any) { cfg.(*ConnectionQuotaRuleConfig).QueueTimeoutMillis = v.(int64) },
			},
			{
				Name: "exempt_users", Order: 3, Kind: tuple.KindList,
				Get: func(cfg any) any {
					if c := cfg.(*ConnectionQuotaRuleConfig); len(c.ExemptUsers) > 0 {
						return c.ExemptUsers
					}
					return nil
				},
				Set:      func(cfg any, v any) { cfg.(*ConnectionQuotaRuleConfig).ExemptUsers = *v.(*[]string) },
				NewValue: func() any { return new([]string) },
			},
		},
	}
}
