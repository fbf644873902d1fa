package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "List saved snapshot revisions for a namespace",
	RunE:  runRevisions,
}

var namespacesCmd = &cobra.Command{
	Use:   "namespaces",
	Short: "List namespaces with a saved snapshot",
	RunE:  runNamespaces,
}

func init() {
	rootCmd.AddCommand(revisionsCmd)
	rootCmd.AddCommand(namespacesCmd)
	revisionsCmd.Flags().String("namespace", "", "namespace to inspect (defaults to configured default_namespace)")
}

func runRevisions(cmd *cobra.Command, args []string) error {
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

	revisions, err := service.Store().Revisions(context.Background(), namespace)
	if err != nil {
		return err
	}
	for _, r := range revisions {
		fmt.Printf("%s  %s  %d tuples\n", r.ID, r.CreatedAt, r.TupleCount)
	}
	return nil
}

func runNamespaces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	conn, service, err := openService(cfg, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	namespaces, err := service.Store().ListNamespaces(context.Background())
	if err != nil {
		return err
	}
	for _, ns := range namespaces {
		fmt.Println(ns)
	}
	return nil
}
