package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/keelworks/treeline/internal/ruleconfig"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Convert a rule document to tuples and save it as a snapshot",
	RunE:  runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().String("rules", "", "rule document to apply (YAML, keyed by rule type)")
	applyCmd.Flags().String("namespace", "", "target namespace (defaults to configured default_namespace)")
	applyCmd.Flags().Bool("dry-run", false, "print the tuples instead of saving a snapshot")
	applyCmd.MarkFlagRequired("rules")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rulesPath, _ := cmd.Flags().GetString("rules")
	configs, err := readRuleDocument(rulesPath)
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		return fmt.Errorf("%s contains no rule configurations", rulesPath)
	}

	namespace, _ := cmd.Flags().GetString("namespace")
	if namespace == "" {
		namespace = cfg.DefaultNamespace
	}

	conn, service, err := openService(cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		engine := ruleconfig.Builtin()
		for _, c := range configs {
			tuples, err := engine.Encode(c)
			if err != nil {
				return fmt.Errorf("encode %T: %w", c, err)
			}
			for _, t := range tuples {
				fmt.Printf("%s = %s\n", t.Path, t.Value)
			}
		}
		return nil
	}

	revision, err := service.Persist(context.Background(), namespace, configs...)
	if err != nil {
		return err
	}
	logger.Info("snapshot applied",
		zap.String("namespace", namespace),
		zap.String("revision", string(revision)))
	return nil
}

// readRuleDocument parses a YAML document keyed by rule type into built-in
// configuration values. Unknown top-level keys are rejected rather than
// silently dropped, since a typo here would otherwise erase a rule.
func readRuleDocument(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule document: %w", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule document: %w", err)
	}

	var unknown []string
	for key := range doc {
		if _, ok := ruleconfig.New(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown rule types in document: %v", unknown)
	}

	var configs []any
	for _, name := range ruleconfig.Names() {
		node, ok := doc[name]
		if !ok {
			continue
		}
		target, _ := ruleconfig.New(name)
		if err := node.Decode(target); err != nil {
			return nil, fmt.Errorf("failed to parse %s configuration: %w", name, err)
		}
		configs = append(configs, target)
	}
	return configs, nil
}
