package ruleconfig

import "github.com/keelworks/treeline/internal/tuple"

// ShardingCacheConfig tunes the sharding route cache. It is a whole-object
// singleton namespaced under the sharding rule root: the entire object lives
// at /rules/sharding/sharding_cache as one tuple.
type ShardingCacheConfig struct {
	AllowedMaxSQLLength int                `yaml:"allowedMaxSqlLength,omitempty"`
	RouteCache          *CacheOptionConfig `yaml:"routeCache,omitempty"`
}

// RuleType implements types.RuleConfig; the cache shares the sharding rule's
// node path schema.
func (*ShardingCacheConfig) RuleType() string { return "sharding" }

func shardingCacheEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		RuleType:  "sharding",
		TupleType: "sharding_cache",
		New:       func() any { return &ShardingCacheConfig{} },
	}
}
