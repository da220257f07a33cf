package agents

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostraca/conclave/internal/governance"
)

func TestGenericWithRulePack(t *testing.T) {
	dir := t.TempDir()
	rule := `rule_id: CUSTOM_001
rule_name: Tagging policy
severity: medium
status: warning
message: resources are missing mandatory tags
recommendations:
  - adopt the shared tagging module
risk_score: 30
compliance_score: 60
`
	other := `rule_id: CUSTOM_002
status: passed
risk_score: 10
compliance_score: 90
`
	if err := os.WriteFile(filepath.Join(dir, "tagging.yaml"), []byte(rule), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "baseline.yaml"), []byte(other), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report := runTask(t, NewGeneric(dir), nil)
	if len(report.ValidationResults) != 2 {
		t.Fatalf("expected one finding per rule, got %d", len(report.ValidationResults))
	}
	if report.RiskScore != 20 || report.ComplianceScore != 75 {
		t.Fatalf("expected averaged scores 20/75, got %f/%f", report.RiskScore, report.ComplianceScore)
	}
	var statuses []governance.ValidationStatus
	for _, r := range report.ValidationResults {
		statuses = append(statuses, r.Status)
		if r.Domain != governance.DomainGeneric {
			t.Fatalf("finding tagged %s", r.Domain)
		}
	}
	foundWarning := false
	for _, s := range statuses {
		if s == governance.ValidationWarning {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatalf("expected warning finding, got %v", statuses)
	}
}

func TestGenericFailsInitializationOnBrokenPack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("rule_id: X\nrisk_score: 500\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	core := NewGeneric(dir)
	if err := core.Initialize(context.Background()); err == nil {
		t.Fatal("expected initialization to surface the broken rule pack")
	}
}
