package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keelworks/treeline/internal/ruleconfig"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestReadRuleDocument(t *testing.T) {
	path := writeRuleFile(t, `single:
  tables:
    - ds_0.t_single
  defaultDataSource: ds_0
connection_quota:
  enabled: true
  maxConnectionsPerNode: 256
transaction:
  defaultType: XA
`)

	configs, err := readRuleDocument(path)
	if err != nil {
		t.Fatalf("readRuleDocument() error = %v, want nil", err)
	}
	if len(configs) != 3 {
		t.Fatalf("len(configs) = %d, want 3", len(configs))
	}

	single, ok := configs[0].(*ruleconfig.SingleRuleConfig)
	if !ok {
		t.Fatalf("configs[0] = %T, want *SingleRuleConfig", configs[0])
	}
	if single.DefaultDataSource != "ds_0" {
		t.Errorf("DefaultDataSource = %q, want %q", single.DefaultDataSource, "ds_0")
	}

	quota, ok := configs[1].(*ruleconfig.ConnectionQuotaRuleConfig)
	if !ok {
		t.Fatalf("configs[1] = %T, want *ConnectionQuotaRuleConfig", configs[1])
	}
	if !quota.Enabled || quota.MaxConnectionsPerNode != 256 {
		t.Errorf("quota = %+v, want enabled with 256 connections", quota)
	}

	if _, ok := configs[2].(*ruleconfig.TransactionRuleConfig); !ok {
		t.Fatalf("configs[2] = %T, want *TransactionRuleConfig", configs[2])
	}
}

func TestReadRuleDocument_RejectsUnknownKeys(t *testing.T) {
	path := writeRuleFile(t, `single:
  defaultDataSource: ds_0
shadow_rule:
  enabled: true
`)

	_, err := readRuleDocument(path)
	if err == nil {
		t.Fatal("readRuleDocument() error = nil, want unknown rule type error")
	}
	if !strings.Contains(err.Error(), "shadow_rule") {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

func TestReadRuleDocument_MissingFile(t *testing.T) {
	if _, err := readRuleDocument("/nonexistent/rules.yaml"); err == nil {
		t.Error("readRuleDocument(missing) error = nil, want error")
	}
}

func TestRenderRuleDocument_RoundTrip(t *testing.T) {
	original := []any{
		&ruleconfig.SingleRuleConfig{
			Tables:            []string{"ds_0.t_single"},
			DefaultDataSource: "ds_0",
		},
		&ruleconfig.TransactionRuleConfig{DefaultType: "LOCAL"},
	}

	data, err := renderRuleDocument(original)
	if err != nil {
		t.Fatalf("renderRuleDocument() error = %v, want nil", err)
	}

	path := writeRuleFile(t, string(data))
	parsed, err := readRuleDocument(path)
	if err != nil {
		t.Fatalf("readRuleDocument() error = %v, want nil", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("len(parsed) = %d, want 2", len(parsed))
	}

	single := parsed[0].(*ruleconfig.SingleRuleConfig)
	if single.DefaultDataSource != "ds_0" || len(single.Tables) != 1 {
		t.Errorf("single = %+v, want original values", single)
	}
	transaction := parsed[1].(*ruleconfig.TransactionRuleConfig)
	if transaction.DefaultType != "LOCAL" {
		t.Errorf("DefaultType = %q, want %q", transaction.DefaultType, "LOCAL")
	}
}
