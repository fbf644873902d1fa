package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/keelworks/treeline/internal/ruleconfig"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Reconstruct a namespace's snapshot as a rule document",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("namespace", "", "namespace to export (defaults to configured default_namespace)")
	exportCmd.Flags().String("out", "", "output file (defaults to stdout)")
	exportCmd.Flags().Bool("tuples", false, "print raw tuples instead of a rule document")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	namespace, _ := cmd.Flags().GetString("namespace")
	if namespace == "" {
		namespace = cfg.DefaultNamespace
	}

	conn, service, err := openService(cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := context.Background()

	rawTuples, _ := cmd.Flags().GetBool("tuples")
	if rawTuples {
		tuples, err := service.Store().LoadSnapshot(ctx, namespace)
		if err != nil {
			return err
		}
		for _, t := range tuples {
			fmt.Printf("%s = %s\n", t.Path, t.Value)
		}
		return nil
	}

	configs, err := service.Load(ctx, namespace)
	if err != nil {
		return err
	}
	data, err := renderRuleDocument(configs)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rule document: %w", err)
	}
	return nil
}

// renderRuleDocument marshals decoded configurations into a YAML document
// keyed by rule type, mirroring the format apply reads.
func renderRuleDocument(configs []any) ([]byte, error) {
	doc := make(map[string]any, len(configs))
	for _, c := range configs {
		name, ok := ruleconfig.NameOf(c)
		if !ok {
			return nil, fmt.Errorf("no document key for %T", c)
		}
		doc[name] = c
	}
	return yaml.Marshal(doc)
}
