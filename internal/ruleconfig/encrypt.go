package ruleconfig

import (
	"github.com/keelworks/treeline/internal/nodepath"
	"github.com/keelworks/treeline/internal/tuple"
)

// EncryptRuleConfig configures column-level encryption for one proxy
// database. Both fields are name-keyed maps: one tuple per table and one
// per encryptor.
type EncryptRuleConfig struct {
	Tables     map[string]*EncryptTableConfig `yaml:"tables,omitempty"`
	Encryptors map[string]*AlgorithmConfig    `yaml:"encryptors,omitempty"`
}

// RuleType implements types.RuleConfig.
func (*EncryptRuleConfig) RuleType() string { return "encrypt" }

// EncryptTableConfig lists the encrypted columns of one table.
type EncryptTableConfig struct {
	Columns map[string]*EncryptColumnConfig `yaml:"columns,omitempty"`
}

// EncryptColumnConfig maps one logical column onto its cipher storage.
type EncryptColumnConfig struct {
	CipherColumn        string `yaml:"cipherColumn"`
	EncryptorName       string `yaml:"encryptorName"`
	AssistedQueryColumn string `yaml:"assistedQueryColumn,omitempty"`
	LikeQueryColumn     string `yaml:"likeQueryColumn,omitempty"`
}

func encryptNodePath() *nodepath.RuleNodePath {
	return nodepath.New("encrypt", nil, []string{"tables", "encryptors"})
}

func encryptEntry() tuple.TypeEntry {
	return tuple.TypeEntry{
		RuleType: "encrypt",
		New:      func() any { return &EncryptRuleConfig{} },
		Fields: []tuple.Field{
			{
				Name: "tables", Order: 0, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*EncryptRuleConfig).Tables) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*EncryptRuleConfig)
					if c.Tables == nil {
						c.Tables = make(map[string]*EncryptTableConfig)
					}
					c.Tables[name] = v.(*EncryptTableConfig)
				},
				NewValue: func() any { return new(EncryptTableConfig) },
			},
			{
				Name: "encryptors", Order: 1, Kind: tuple.KindMap,
				Entries: func(cfg any) map[string]any { return anyMap(cfg.(*EncryptRuleConfig).Encryptors) },
				Put: func(cfg any, name string, v any) {
					c := cfg.(*EncryptRuleConfig)
					if c.Encryptors == nil {
						c.Encryptors = make(map[string]*AlgorithmConfig)
					}
					c.Encryptors[name] = v.(*AlgorithmConfig)
				},
				NewValue: func() any { return new(AlgorithmConfig) },
			},
		},
	}
}
