package convert

import (
	"fmt"
	"strings"

	"github.com/keelworks/treeline/internal/ruleconfig"
)

/*
 * Segment-to-configuration conversion.
 *
 * Algorithm instances referenced by strategies get derived names so that
 * rules created from separate statements cannot collide:
 *   - auto table algorithms:  <table>_<algorithm>
 *   - table-level strategies: <table>_<level>_<algorithm>
 *   - key generators:         <table>_<algorithm>
 * All derived names are lowercased. Auditors keep their declared names.
 */

// Strategy levels used in derived algorithm names.
const (
	levelDatabase = "database"
	levelTable    = "table"
)

// Convert shapes parsed statement segments into a sharding rule
// configuration. Returns an error for unknown strategy types; everything
// else is pure assembly.
func Convert(tables []TableRuleSegment, autoTables []AutoTableRuleSegment) (*ruleconfig.ShardingRuleConfig, error) {
	result := &ruleconfig.ShardingRuleConfig{
		Tables:             make(map[string]*ruleconfig.TableRuleConfig),
		AutoTables:         make(map[string]*ruleconfig.AutoTableRuleConfig),
		ShardingAlgorithms: make(map[string]*ruleconfig.AlgorithmConfig),
		KeyGenerators:      make(map[string]*ruleconfig.AlgorithmConfig),
		Auditors:           make(map[string]*ruleconfig.AlgorithmConfig),
	}
	for i := range tables {
		if err := convertTable(result, &tables[i]); err != nil {
			return nil, err
		}
	}
	for i := range autoTables {
		if err := convertAutoTable(result, &autoTables[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func convertTable(out *ruleconfig.ShardingRuleConfig, seg *TableRuleSegment) error {
	table := &ruleconfig.TableRuleConfig{
		ActualDataNodes: strings.Join(seg.DataSourceNodes, ","),
	}
	if seg.DatabaseStrategy != nil {
		strategy, err := convertStrategy(out, seg.LogicTable, levelDatabase, seg.DatabaseStrategy)
		if err != nil {
			return err
		}
		table.DatabaseStrategy = strategy
	}
	if seg.TableStrategy != nil {
		strategy, err := convertStrategy(out, seg.LogicTable, levelTable, seg.TableStrategy)
		if err != nil {
			return err
		}
		table.TableStrategy = strategy
	}
	if seg.KeyGenerate != nil {
		table.KeyGenerateStrategy = convertKeyGenerate(out, seg.LogicTable, seg.KeyGenerate)
	}
	if seg.Audit != nil {
		table.AuditStrategy = convertAudit(out, seg.Audit)
	}
	out.Tables[seg.LogicTable] = table
	return nil
}

func convertAutoTable(out *ruleconfig.ShardingRuleConfig, seg *AutoTableRuleSegment) error {
	if seg.Algorithm == nil {
		return fmt.Errorf("auto table rule %q has no sharding algorithm", seg.LogicTable)
	}
	algorithmName := deriveName(seg.LogicTable, seg.Algorithm.Name)
	out.ShardingAlgorithms[algorithmName] = algorithmConfig(seg.Algorithm)

	autoTable := &ruleconfig.AutoTableRuleConfig{
		ActualDataSources: strings.Join(seg.DataSources, ","),
		ShardingStrategy: &ruleconfig.StrategyConfig{
			Type:                  "standard",
			ShardingColumn:        seg.ShardingColumn,
			ShardingAlgorithmName: algorithmName,
		},
	}
	if seg.KeyGenerate != nil {
		autoTable.KeyGenerateStrategy = convertKeyGenerate(out, seg.LogicTable, seg.KeyGenerate)
	}
	if seg.Audit != nil {
		autoTable.AuditStrategy = convertAudit(out, seg.Audit)
	}
	out.AutoTables[seg.LogicTable] = autoTable
	return nil
}

// convertStrategy shapes one strategy clause and registers its algorithm
// under the derived name.
func convertStrategy(out *ruleconfig.ShardingRuleConfig, logicTable, level string, seg *StrategySegment) (*ruleconfig.StrategyConfig, error) {
	strategyType := strings.ToLower(seg.Type)
	if strategyType == "none" {
		return &ruleconfig.StrategyConfig{Type: "none"}, nil
	}
	if seg.Algorithm == nil {
		return nil, fmt.Errorf("%s strategy of %q has no algorithm", level, logicTable)
	}
	algorithmName := deriveLevelName(logicTable, level, seg.Algorithm.Name)
	out.ShardingAlgorithms[algorithmName] = algorithmConfig(seg.Algorithm)

	switch strategyType {
	case "standard", "hint":
		return &ruleconfig.StrategyConfig{
			Type:                  strategyType,
			ShardingColumn:        seg.ShardingColumn,
			ShardingAlgorithmName: algorithmName,
		}, nil
	case "complex":
		return &ruleconfig.StrategyConfig{
			Type:                  strategyType,
			ShardingColumns:       seg.ShardingColumn,
			ShardingAlgorithmName: algorithmName,
		}, nil
	default:
		return nil, fmt.Errorf("unknown sharding strategy type %q for %q", seg.Type, logicTable)
	}
}

func convertKeyGenerate(out *ruleconfig.ShardingRuleConfig, logicTable string, seg *KeyGenerateSegment) *ruleconfig.KeyGenerateStrategyConfig {
	generatorName := deriveName(logicTable, seg.Algorithm.Name)
	out.KeyGenerators[generatorName] = algorithmConfig(seg.Algorithm)
	return &ruleconfig.KeyGenerateStrategyConfig{
		Column:           seg.Column,
		KeyGeneratorName: generatorName,
	}
}

func convertAudit(out *ruleconfig.ShardingRuleConfig, seg *AuditSegment) *ruleconfig.AuditStrategyConfig {
	names := make([]string, 0, len(seg.Auditors))
	for _, auditor := range seg.Auditors {
		out.Auditors[auditor.Name] = algorithmConfig(auditor.Algorithm)
		names = append(names, auditor.Name)
	}
	return &ruleconfig.AuditStrategyConfig{
		AuditorNames:     names,
		AllowHintDisable: seg.AllowHintDisable,
	}
}

func algorithmConfig(seg *AlgorithmSegment) *ruleconfig.AlgorithmConfig {
	return &ruleconfig.AlgorithmConfig{
		Type:  strings.ToLower(seg.Name),
		Props: seg.Props,
	}
}

func deriveName(logicTable, algorithm string) string {
	return strings.ToLower(fmt.Sprintf("%s_%s", logicTable, algorithm))
}

func deriveLevelName(logicTable, level, algorithm string) string {
	return strings.ToLower(fmt.Sprintf("%s_%s_%s", logicTable, level, algorithm))
}
