package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_TableRule(t *testing.T) {
	segment := TableRuleSegment{
		LogicTable:      "t_order",
		DataSourceNodes: []string{"ds_0.t_order_0", "ds_1.t_order_1"},
		DatabaseStrategy: &StrategySegment{
			Type:           "STANDARD",
			ShardingColumn: "user_id",
			Algorithm:      &AlgorithmSegment{Name: "MOD", Props: map[string]string{"sharding-count": "2"}},
		},
		TableStrategy: &StrategySegment{
			Type:           "standard",
			ShardingColumn: "order_id",
			Algorithm:      &AlgorithmSegment{Name: "HASH_MOD", Props: map[string]string{"sharding-count": "2"}},
		},
		KeyGenerate: &KeyGenerateSegment{
			Column:    "order_id",
			Algorithm: &AlgorithmSegment{Name: "SNOWFLAKE"},
		},
		Audit: &AuditSegment{
			Auditors: []AuditorSegment{
				{Name: "sharding_key_required_auditor", Algorithm: &AlgorithmSegment{Name: "DML_SHARDING_CONDITIONS"}},
			},
			AllowHintDisable: true,
		},
	}

	cfg, err := Convert([]TableRuleSegment{segment}, nil)
	require.NoError(t, err)

	table := cfg.Tables["t_order"]
	require.NotNil(t, table)
	assert.Equal(t, "ds_0.t_order_0,ds_1.t_order_1", table.ActualDataNodes)

	require.NotNil(t, table.DatabaseStrategy)
	assert.Equal(t, "standard", table.DatabaseStrategy.Type)
	assert.Equal(t, "user_id", table.DatabaseStrategy.ShardingColumn)
	assert.Equal(t, "t_order_database_mod", table.DatabaseStrategy.ShardingAlgorithmName)

	require.NotNil(t, table.TableStrategy)
	assert.Equal(t, "t_order_table_hash_mod", table.TableStrategy.ShardingAlgorithmName)

	require.NotNil(t, table.KeyGenerateStrategy)
	assert.Equal(t, "order_id", table.KeyGenerateStrategy.Column)
	assert.Equal(t, "t_order_snowflake", table.KeyGenerateStrategy.KeyGeneratorName)

	require.NotNil(t, table.AuditStrategy)
	assert.Equal(t, []string{"sharding_key_required_auditor"}, table.AuditStrategy.AuditorNames)
	assert.True(t, table.AuditStrategy.AllowHintDisable)

	// Derived names register the actual algorithm instances.
	assert.Contains(t, cfg.ShardingAlgorithms, "t_order_database_mod")
	assert.Contains(t, cfg.ShardingAlgorithms, "t_order_table_hash_mod")
	assert.Equal(t, "mod", cfg.ShardingAlgorithms["t_order_database_mod"].Type)
	assert.Contains(t, cfg.KeyGenerators, "t_order_snowflake")
	assert.Equal(t, "snowflake", cfg.KeyGenerators["t_order_snowflake"].Type)
	assert.Contains(t, cfg.Auditors, "sharding_key_required_auditor")
}

func TestConvert_AutoTableRule(t *testing.T) {
	segment := AutoTableRuleSegment{
		LogicTable:     "t_order_item",
		DataSources:    []string{"ds_0", "ds_1"},
		ShardingColumn: "order_item_id",
		Algorithm:      &AlgorithmSegment{Name: "MOD", Props: map[string]string{"sharding-count": "4"}},
	}

	cfg, err := Convert(nil, []AutoTableRuleSegment{segment})
	require.NoError(t, err)

	autoTable := cfg.AutoTables["t_order_item"]
	require.NotNil(t, autoTable)
	assert.Equal(t, "ds_0,ds_1", autoTable.ActualDataSources)

	require.NotNil(t, autoTable.ShardingStrategy)
	assert.Equal(t, "standard", autoTable.ShardingStrategy.Type)
	assert.Equal(t, "order_item_id", autoTable.ShardingStrategy.ShardingColumn)
	assert.Equal(t, "t_order_item_mod", autoTable.ShardingStrategy.ShardingAlgorithmName)

	assert.Contains(t, cfg.ShardingAlgorithms, "t_order_item_mod")
}

func TestConvert_StrategyTypes(t *testing.T) {
	tests := []struct {
		name         string
		strategy     StrategySegment
		wantType     string
		wantColumn   string
		wantColumns  string
		wantErr      bool
		wantAlgoName string
	}{
		{
			name: "complex strategy uses plural column field",
			strategy: StrategySegment{
				Type:           "COMPLEX",
				ShardingColumn: "user_id,order_id",
				Algorithm:      &AlgorithmSegment{Name: "COMPLEX_INLINE"},
			},
			wantType:     "complex",
			wantColumns:  "user_id,order_id",
			wantAlgoName: "t_x_database_complex_inline",
		},
		{
			name: "hint strategy",
			strategy: StrategySegment{
				Type:      "HINT",
				Algorithm: &AlgorithmSegment{Name: "HINT_INLINE"},
			},
			wantType:     "hint",
			wantAlgoName: "t_x_database_hint_inline",
		},
		{
			name:     "none strategy needs no algorithm",
			strategy: StrategySegment{Type: "NONE"},
			wantType: "none",
		},
		{
			name: "unknown strategy type",
			strategy: StrategySegment{
				Type:      "RANGE",
				Algorithm: &AlgorithmSegment{Name: "MOD"},
			},
			wantErr: true,
		},
		{
			name:     "missing algorithm",
			strategy: StrategySegment{Type: "STANDARD", ShardingColumn: "id"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segment := TableRuleSegment{
				LogicTable:       "t_x",
				DataSourceNodes:  []string{"ds_0.t_x"},
				DatabaseStrategy: &tt.strategy,
			}
			cfg, err := Convert([]TableRuleSegment{segment}, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			strategy := cfg.Tables["t_x"].DatabaseStrategy
			require.NotNil(t, strategy)
			assert.Equal(t, tt.wantType, strategy.Type)
			assert.Equal(t, tt.wantColumn, strategy.ShardingColumn)
			assert.Equal(t, tt.wantColumns, strategy.ShardingColumns)
			assert.Equal(t, tt.wantAlgoName, strategy.ShardingAlgorithmName)
		})
	}
}

func TestConvert_AutoTableRequiresAlgorithm(t *testing.T) {
	_, err := Convert(nil, []AutoTableRuleSegment{{LogicTable: "t_broken", DataSources: []string{"ds_0"}}})
	require.Error(t, err)
}

func TestConvert_EmptyInput(t *testing.T) {
	cfg, err := Convert(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Tables)
	assert.Empty(t, cfg.AutoTables)
	assert.Empty(t, cfg.ShardingAlgorithms)
}
