package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/ostraca/conclave/internal/governance"
)

const (
	maxNextSteps       = 5
	maxUrgentNextSteps = 3
)

// urgencyKeywords promote a recommendation into the next-step list.
var urgencyKeywords = []string{"critical", "urgent", "immediate", "security"}

// defaultNextSteps fill the next-step list when nothing actionable surfaced.
var defaultNextSteps = []string{
	"Review all validation results and recommendations",
	"Implement recommended improvements",
	"Schedule follow-up validation",
}

// synthesize reduces the collected evaluator outcomes into one response. Only
// reports whose status is completed contribute findings and scores; synthetic
// failures are dropped without partial numeric credit. The reduction is
// commutative, so the executor's completion order never changes the verdict.
func synthesize(req governance.Request, reports []governance.Report) governance.Response {
	var (
		results          []governance.ValidationResult
		riskScores       []float64
		complianceScores []float64
		recommendations  []string
		agentsUsed       []string
	)
	for _, report := range reports {
		if report.Status != governance.ReportCompleted {
			continue
		}
		results = append(results, report.ValidationResults...)
		riskScores = append(riskScores, report.RiskScore)
		complianceScores = append(complianceScores, report.ComplianceScore)
		recommendations = append(recommendations, report.Recommendations...)
		if report.AgentID != "" {
			agentsUsed = append(agentsUsed, report.AgentID)
		}
	}

	risk := mean(riskScores)
	compliance := mean(complianceScores)
	status := overallStatus(results)

	return governance.Response{
		RequestID:         req.ID,
		Status:            status,
		Summary:           executiveSummary(req, results, risk, compliance, status),
		ValidationResults: results,
		RiskScore:         risk,
		ComplianceScore:   compliance,
		Recommendations:   recommendations,
		NextSteps:         nextSteps(results, recommendations),
		GeneratedAt:       time.Now().UTC(),
		AgentsUsed:        agentsUsed,
	}
}

// mean returns the arithmetic mean, or 0.0 for an empty collection — never
// NaN.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// overallStatus reduces the merged findings by severity precedence:
// failed > warning > passed > unknown.
func overallStatus(results []governance.ValidationResult) string {
	var warnings, passed int
	for _, r := range results {
		switch r.Status {
		case governance.ValidationFailed:
			return "failed"
		case governance.ValidationWarning:
			warnings++
		case governance.ValidationPassed:
			passed++
		}
	}
	switch {
	case warnings > 0:
		return "warning"
	case passed > 0:
		return "passed"
	default:
		return "unknown"
	}
}

// executiveSummary reports the validation counts, the two aggregate scores,
// and the overall status in upper case.
func executiveSummary(req governance.Request, results []governance.ValidationResult, risk, compliance float64, status string) string {
	var passed, failed, warnings int
	for _, r := range results {
		switch r.Status {
		case governance.ValidationPassed:
			passed++
		case governance.ValidationFailed:
			failed++
		case governance.ValidationWarning:
			warnings++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Governance validation completed for scope: %s\n\n", req.Scope)
	b.WriteString("Overall Results:\n")
	fmt.Fprintf(&b, "- Total validations: %d\n", len(results))
	fmt.Fprintf(&b, "- Passed: %d\n", passed)
	fmt.Fprintf(&b, "- Failed: %d\n", failed)
	fmt.Fprintf(&b, "- Warnings: %d\n\n", warnings)
	b.WriteString("Scores:\n")
	fmt.Fprintf(&b, "- Risk Score: %.1f/100\n", risk)
	fmt.Fprintf(&b, "- Compliance Score: %.1f/100\n\n", compliance)
	fmt.Fprintf(&b, "Status: %s", strings.ToUpper(status))
	return b.String()
}

// nextSteps lists one line per failed rule (in encounter order), then up to
// three urgency-tagged recommendations, then the generic defaults if nothing
// else surfaced. The final list is capped at five entries.
func nextSteps(results []governance.ValidationResult, recommendations []string) []string {
	var steps []string
	for _, r := range results {
		if r.Status == governance.ValidationFailed {
			steps = append(steps, fmt.Sprintf("Address %s: %s", r.RuleName, r.Message))
		}
	}
	urgent := 0
	for _, rec := range recommendations {
		if urgent >= maxUrgentNextSteps {
			break
		}
		lower := strings.ToLower(rec)
		for _, keyword := range urgencyKeywords {
			if strings.Contains(lower, keyword) {
				steps = append(steps, rec)
				urgent++
				break
			}
		}
	}
	if len(steps) == 0 {
		steps = append(steps, defaultNextSteps...)
	}
	if len(steps) > maxNextSteps {
		steps = steps[:maxNextSteps]
	}
	return steps
}
