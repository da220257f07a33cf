package orchestrator

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/ostraca/conclave/internal/governance"
)

func finding(id string, status governance.ValidationStatus) governance.ValidationResult {
	return governance.ValidationResult{
		RuleID:   id,
		RuleName: "Rule " + id,
		Severity: governance.SeverityMedium,
		Status:   status,
		Message:  "message for " + id,
	}
}

func TestSynthesizeAveragesCompletedReportsOnly(t *testing.T) {
	req := governance.NewRequest(governance.ScopeComprehensive)
	reports := []governance.Report{
		{
			Status:            governance.ReportCompleted,
			AgentID:           "sec-1",
			Domain:            governance.DomainSecurity,
			ValidationResults: []governance.ValidationResult{finding("SEC_001", governance.ValidationPassed)},
			RiskScore:         25,
			ComplianceScore:   90,
		},
		{
			Status:            governance.ReportCompleted,
			AgentID:           "cost-1",
			Domain:            governance.DomainCosting,
			ValidationResults: []governance.ValidationResult{finding("COST_001", governance.ValidationFailed)},
			RiskScore:         15,
			ComplianceScore:   92,
		},
		governance.FailedReport("data-1", governance.DomainData, errors.New("backend down")),
	}

	resp := synthesize(req, reports)

	if resp.RiskScore != 20 {
		t.Fatalf("expected risk 20, got %f", resp.RiskScore)
	}
	if resp.ComplianceScore != 91 {
		t.Fatalf("expected compliance 91, got %f", resp.ComplianceScore)
	}
	if resp.Status != "failed" {
		t.Fatalf("expected failed verdict, got %s", resp.Status)
	}
	if len(resp.ValidationResults) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(resp.ValidationResults))
	}
	if !reflect.DeepEqual(resp.AgentsUsed, []string{"sec-1", "cost-1"}) {
		t.Fatalf("failed evaluator leaked into agents used: %v", resp.AgentsUsed)
	}
	if len(resp.NextSteps) == 0 || !strings.HasPrefix(resp.NextSteps[0], "Address Rule COST_001") {
		t.Fatalf("expected failed rule as first next step, got %v", resp.NextSteps)
	}
}

func TestSynthesizeEmptyOutcomes(t *testing.T) {
	req := governance.NewRequest(governance.ScopeData)
	resp := synthesize(req, nil)
	if resp.Status != "unknown" {
		t.Fatalf("expected unknown status, got %s", resp.Status)
	}
	if resp.RiskScore != 0 || resp.ComplianceScore != 0 {
		t.Fatalf("expected zero scores, got %f / %f", resp.RiskScore, resp.ComplianceScore)
	}
	if !reflect.DeepEqual(resp.NextSteps, defaultNextSteps) {
		t.Fatalf("expected default next steps, got %v", resp.NextSteps)
	}
	if resp.RequestID != req.ID {
		t.Fatalf("response lost request identity: %s", resp.RequestID)
	}
}

func TestOverallStatusPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		statuses []governance.ValidationStatus
		want     string
	}{
		{"failure dominates", []governance.ValidationStatus{governance.ValidationPassed, governance.ValidationWarning, governance.ValidationFailed}, "failed"},
		{"warning beats passed", []governance.ValidationStatus{governance.ValidationPassed, governance.ValidationWarning}, "warning"},
		{"all passed", []governance.ValidationStatus{governance.ValidationPassed, governance.ValidationPassed}, "passed"},
		{"nothing counted", []governance.ValidationStatus{governance.ValidationPending, governance.ValidationError}, "unknown"},
		{"empty", nil, "unknown"},
	}
	for _, tt := range tests {
		var results []governance.ValidationResult
		for i, status := range tt.statuses {
			results = append(results, finding(string(rune('A'+i)), status))
		}
		if got := overallStatus(results); got != tt.want {
			t.Fatalf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSynthesizeIsCommutative(t *testing.T) {
	req := governance.NewRequest(governance.ScopeComprehensive)
	reports := []governance.Report{
		{Status: governance.ReportCompleted, AgentID: "a", RiskScore: 10, ComplianceScore: 80,
			ValidationResults: []governance.ValidationResult{finding("A_001", governance.ValidationPassed)}},
		{Status: governance.ReportCompleted, AgentID: "b", RiskScore: 30, ComplianceScore: 70,
			ValidationResults: []governance.ValidationResult{finding("B_001", governance.ValidationWarning)}},
		{Status: governance.ReportCompleted, AgentID: "c", RiskScore: 20, ComplianceScore: 90,
			ValidationResults: []governance.ValidationResult{finding("C_001", governance.ValidationFailed)}},
		governance.FailedReport("d", governance.DomainData, errors.New("down")),
	}

	base := synthesize(req, reports)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]governance.Report(nil), reports...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := synthesize(req, shuffled)
		if got.Status != base.Status {
			t.Fatalf("status changed with completion order: %s vs %s", got.Status, base.Status)
		}
		if got.RiskScore != base.RiskScore || got.ComplianceScore != base.ComplianceScore {
			t.Fatalf("scores changed with completion order: %f/%f vs %f/%f",
				got.RiskScore, got.ComplianceScore, base.RiskScore, base.ComplianceScore)
		}
		if len(got.ValidationResults) != len(base.ValidationResults) {
			t.Fatalf("finding count changed with completion order")
		}
	}
}

func TestNextStepsOrderingAndCap(t *testing.T) {
	results := []governance.ValidationResult{
		finding("F_001", governance.ValidationFailed),
		finding("F_002", governance.ValidationFailed),
		finding("F_003", governance.ValidationFailed),
	}
	recommendations := []string{
		"Adopt a tagging policy",
		"Fix the critical injection flaw",
		"Urgent: rotate credentials",
		"Apply security headers immediately",
		"Review critical dependencies",
	}
	steps := nextSteps(results, recommendations)
	if len(steps) != maxNextSteps {
		t.Fatalf("expected cap at %d, got %d: %v", maxNextSteps, len(steps), steps)
	}
	for i := 0; i < 3; i++ {
		if !strings.HasPrefix(steps[i], "Address ") {
			t.Fatalf("step %d should address a failed rule: %v", i, steps)
		}
	}
	// Non-urgent recommendations never make the list; urgent ones follow in
	// encounter order.
	if steps[3] != "Fix the critical injection flaw" || steps[4] != "Urgent: rotate credentials" {
		t.Fatalf("unexpected urgent ordering: %v", steps)
	}
}

func TestNextStepsUrgentLimit(t *testing.T) {
	recommendations := []string{
		"critical issue one",
		"critical issue two",
		"critical issue three",
		"critical issue four",
	}
	steps := nextSteps(nil, recommendations)
	if len(steps) != maxUrgentNextSteps {
		t.Fatalf("expected %d urgent steps, got %v", maxUrgentNextSteps, steps)
	}
}

func TestExecutiveSummaryContent(t *testing.T) {
	req := governance.NewRequest(governance.ScopeSecurity)
	results := []governance.ValidationResult{
		finding("SEC_001", governance.ValidationPassed),
		finding("SEC_002", governance.ValidationFailed),
	}
	summary := executiveSummary(req, results, 25.5, 87.25, "failed")
	for _, want := range []string{
		"scope: security",
		"Total validations: 2",
		"Passed: 1",
		"Failed: 1",
		"Risk Score: 25.5/100",
		"Compliance Score: 87.2/100",
		"Status: FAILED",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestMean(t *testing.T) {
	if got := mean(nil); got != 0 {
		t.Fatalf("mean of nothing should be 0, got %f", got)
	}
	if got := mean([]float64{10, 20, 30}); got != 20 {
		t.Fatalf("expected 20, got %f", got)
	}
}
